package watch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fennig/focusping/internal/parser"
)

// readChunk bounds a single terminal read. Focus reports are tiny;
// anything larger arrives across iterations through the parser buffer.
const readChunk = 32

// Loop is the single-threaded event loop. One goroutine owns the file
// descriptor, the input buffer, the focus state and the schedule; the
// only blocking point is the readiness wait, which is bounded by the
// time until the next trigger.
type Loop struct {
	FD        int
	Scheduler *Scheduler
	Logger    *slog.Logger

	State State

	// Swapped out in tests.
	now  func() time.Time
	poll func(fd int, timeout time.Duration) (bool, error)
	read func(fd int, p []byte) (int, error)

	buf []byte
}

func NewLoop(fd int, sch *Scheduler, logger *slog.Logger) *Loop {
	return &Loop{
		FD:        fd,
		Scheduler: sch,
		Logger:    logger,
		State:     NewState(),
		now:       time.Now,
		poll:      platformPoll,
		read:      platformRead,
	}
}

// Run drives the loop until the wait is interrupted by a signal, the
// terminal reaches EOF, or a fatal condition surfaces. Each iteration
// applies any pending input to the focus state before the due check, so
// a trigger landing in the same pass as a focus report never acts on
// the stale estimate.
func (l *Loop) Run() error {
	l.Scheduler.Start(l.now())
	l.Logger.Info("watch.loop.started", "interval", l.Scheduler.Interval.String())

	for {
		timeout := l.Scheduler.Next().Sub(l.now())
		if timeout < 0 {
			timeout = 0
		}

		ready, err := l.poll(l.FD, timeout)
		if err != nil {
			if isInterrupted(err) {
				// A signal landed in the wait; that is our shutdown
				// request. No retry.
				l.Logger.Info("watch.loop.interrupted")
				return nil
			}
			return fmt.Errorf("wait for terminal input: %w", err)
		}

		if ready {
			var chunk [readChunk]byte
			n, err := l.read(l.FD, chunk[:])
			if err != nil {
				if isInterrupted(err) {
					l.Logger.Info("watch.loop.interrupted")
					return nil
				}
				return fmt.Errorf("read terminal input: %w", err)
			}
			if n == 0 {
				l.Logger.Info("watch.loop.input_closed")
				return nil
			}
			l.consume(chunk[:n])
		}

		if now := l.now(); l.Scheduler.Due(now) {
			outcome, err := l.Scheduler.OnDue(now, l.State)
			if err != nil {
				return err
			}
			l.Logger.Debug("watch.trigger.handled",
				"outcome", outcome.String(),
				"focused", l.State.Focused,
				"supported", l.State.Supported,
			)
		}
	}
}

func (l *Loop) consume(chunk []byte) {
	l.buf = append(l.buf, chunk...)
	events, rest := parser.Parse(l.buf)
	l.buf = rest

	for _, ev := range events {
		l.State.Apply(ev)
		l.Logger.Debug("watch.focus.changed", "focused", ev.FocusIn)
	}
}
