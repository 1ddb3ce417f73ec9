// Package terminal owns the raw-mode focus-reporting session on the
// controlling terminal.
//
// Opening a session switches the terminal to raw input and asks it to
// report focus changes (CSI ? 1004 h). The session must be closed on
// every exit path; Close restores the saved line discipline and turns
// focus reporting back off, and does so exactly once no matter how many
// paths reach it.
package terminal

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/term"
)

const (
	enableFocusReporting  = "\x1b[?1004h"
	disableFocusReporting = "\x1b[?1004l"
)

// Swapped out in tests; real terminals are not available under go test.
var (
	makeRaw     = term.MakeRaw
	restoreMode = term.Restore
)

// Session holds a terminal in raw mode with focus reporting enabled.
type Session struct {
	fd    int
	out   io.Writer
	saved *term.State

	closeOnce sync.Once
	closeErr  error
}

// Open saves the terminal state for fd, enters raw mode and enables
// focus reporting, writing control sequences to out. On any error the
// terminal is left as it was found.
func Open(fd int, out io.Writer) (*Session, error) {
	saved, err := makeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	s := &Session{fd: fd, out: out, saved: saved}
	if _, err := io.WriteString(out, enableFocusReporting); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("enable focus reporting: %w", err)
	}
	return s, nil
}

// Close disables focus reporting and restores the saved terminal state.
// Safe to call multiple times; only the first call does the work, and
// later calls return its result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		// Turn reporting off while the descriptor is still in a known
		// state, then put the saved mode back.
		if _, err := io.WriteString(s.out, disableFocusReporting); err != nil {
			s.closeErr = fmt.Errorf("disable focus reporting: %w", err)
		}
		if err := restoreMode(s.fd, s.saved); err != nil {
			s.closeErr = fmt.Errorf("restore terminal mode: %w", err)
		}
	})
	return s.closeErr
}
