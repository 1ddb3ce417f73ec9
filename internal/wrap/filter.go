// Package wrap runs a child program under a pseudo-terminal while the
// outer terminal reports focus changes. Focus markers are stripped from
// the input stream before it reaches the child, and the child's exit is
// announced with a notification only when the terminal is unfocused.
package wrap

import "time"

const (
	escByte = 0x1b

	// escDelay is how long a bare ESC may sit unresolved before it is
	// forwarded as-is. Distinguishes the ESC key from the start of a
	// focus marker arriving byte by byte.
	escDelay = 50 * time.Millisecond
)

// inputFilter separates focus reports from the byte stream headed to
// the child. Everything that is not a focus marker is forwarded
// unchanged, including other escape sequences.
type inputFilter struct {
	forward func(p []byte)
	onFocus func(focused bool)

	pending []byte
	timer   *time.Timer
	timerC  <-chan time.Time
}

func newInputFilter(forward func(p []byte), onFocus func(focused bool)) *inputFilter {
	return &inputFilter{forward: forward, onFocus: onFocus}
}

// feed pushes one read's worth of bytes through the filter. Literal
// runs are forwarded in a single call; only escape prefixes are held
// back until they resolve.
func (f *inputFilter) feed(p []byte) {
	run := -1
	for i, b := range p {
		if len(f.pending) == 0 && b != escByte {
			if run == -1 {
				run = i
			}
			continue
		}
		if run != -1 {
			f.forward(p[run:i])
			run = -1
		}
		f.step(b)
	}
	if run != -1 {
		f.forward(p[run:])
	}
}

func (f *inputFilter) step(b byte) {
	if len(f.pending) == 0 {
		// b must be ESC here; feed handles the literal fast path.
		f.pending = append(f.pending, b)
		f.resetTimer()
		return
	}

	f.stopTimer()

	if len(f.pending) == 1 {
		switch b {
		case '[':
			f.pending = append(f.pending, b)
			f.resetTimer()
		case escByte:
			f.forward([]byte{escByte})
			f.pending = f.pending[:1]
			f.resetTimer()
		default:
			f.forward([]byte{escByte, b})
			f.pending = f.pending[:0]
		}
		return
	}

	// pending is ESC [
	switch b {
	case 'I':
		f.pending = f.pending[:0]
		f.onFocus(true)
	case 'O':
		f.pending = f.pending[:0]
		f.onFocus(false)
	case escByte:
		f.forward([]byte{escByte, '['})
		f.pending = f.pending[:1]
		f.resetTimer()
	default:
		f.forward([]byte{escByte, '[', b})
		f.pending = f.pending[:0]
	}
}

// flush forwards whatever is held back; called when the ESC timer fires
// or the stream ends.
func (f *inputFilter) flush() {
	f.stopTimer()
	if len(f.pending) > 0 {
		f.forward(append([]byte(nil), f.pending...))
		f.pending = f.pending[:0]
	}
}

// timeout returns the channel that fires when a held escape prefix has
// waited long enough; nil while nothing is pending.
func (f *inputFilter) timeout() <-chan time.Time {
	return f.timerC
}

func (f *inputFilter) resetTimer() {
	f.stopTimer()
	f.timer = time.NewTimer(escDelay)
	f.timerC = f.timer.C
}

func (f *inputFilter) stopTimer() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
		f.timerC = nil
	}
}
