// Package watch runs the focus-tracking event loop: it multiplexes
// terminal input against a fixed notification schedule, keeps the
// current focus estimate, and pings the desktop notifier only while the
// terminal is believed to be unfocused.
package watch

import "github.com/fennig/focusping/internal/parser"

// State is the current focus estimate for the terminal.
//
// Focused starts true and Supported starts false: before any evidence
// arrives we assume the user is looking at the terminal, but we also
// know nothing about whether the terminal reports focus at all. The
// scheduler notifies unless both focus and support are confirmed, so an
// unsupporting terminal always gets pinged rather than never.
type State struct {
	Focused   bool
	Supported bool
}

func NewState() State {
	return State{Focused: true}
}

// Apply folds one parsed focus transition into the estimate. Any
// transition at all proves the terminal supports focus reporting.
func (s *State) Apply(ev parser.Event) {
	s.Focused = ev.FocusIn
	s.Supported = true
}
