package watch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fennig/focusping/internal/notifier"
)

// Outcome reports what a due scheduler evaluation did.
type Outcome int

const (
	// OutcomeSkipped means the terminal was confirmed focused.
	OutcomeSkipped Outcome = iota
	// OutcomeDispatched means the notification was handed off.
	OutcomeDispatched
	// OutcomeFailed means dispatch ran and reported a non-fatal error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDispatched:
		return "dispatched"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Scheduler owns the next-trigger timestamp and the decision of whether
// a due trigger actually notifies.
type Scheduler struct {
	Interval time.Duration
	Title    string
	Body     string

	// Dispatch performs the external notification. Defaults to the
	// system notifier when constructed via the watch command.
	Dispatch func(title, body string) error

	Logger *slog.Logger

	next time.Time
}

// Start seeds the first trigger one interval from now.
func (s *Scheduler) Start(now time.Time) {
	s.next = now.Add(s.Interval)
}

// Next returns the next trigger time.
func (s *Scheduler) Next() time.Time {
	return s.next
}

// Due reports whether the trigger time has been reached.
func (s *Scheduler) Due(now time.Time) bool {
	return !now.Before(s.next)
}

// OnDue handles one due trigger. A focused terminal with confirmed
// focus reporting is skipped; anything else attempts the notification.
// A missing notification program is returned as an error and terminates
// the loop; other dispatch failures are logged and swallowed. The next
// trigger always moves to now+interval, whatever happened, so a long
// unfocused stretch never causes catch-up refires.
func (s *Scheduler) OnDue(now time.Time, state State) (Outcome, error) {
	defer func() {
		s.next = now.Add(s.Interval)
	}()

	if state.Focused && state.Supported {
		return OutcomeSkipped, nil
	}

	if err := s.Dispatch(s.Title, s.Body); err != nil {
		if notifier.IsProgramMissing(err) {
			return OutcomeFailed, fmt.Errorf("notification program unavailable: %w", err)
		}
		s.logger().Warn("watch.notify.failed", "error", err)
		return OutcomeFailed, nil
	}
	return OutcomeDispatched, nil
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
