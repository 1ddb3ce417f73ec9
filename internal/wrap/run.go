//go:build unix

package wrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"github.com/fennig/focusping/internal/parser"
	"github.com/fennig/focusping/internal/terminal"
	"github.com/fennig/focusping/internal/watch"
)

// Run executes the child under a pty, keeps the outer terminal in raw
// mode with focus reporting on, and strips focus markers from the input
// before forwarding it. When the child exits and the terminal is
// unfocused (or reporting is unsupported), a completion notification is
// sent. Returns the child's exit code.
func Run(opts Options) (int, error) {
	if len(opts.Argv) == 0 {
		return 0, errors.New("no command given")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	child := exec.Command(opts.Argv[0], opts.Argv[1:]...)
	ptmx, err := pty.Start(child)
	if err != nil {
		return 0, fmt.Errorf("start %s under pty: %w", opts.Argv[0], err)
	}
	defer ptmx.Close()

	if err := pty.InheritSize(os.Stdin, ptmx); err != nil {
		logger.Warn("wrap.resize.initial_failed", "error", err)
	}
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()

	session, err := terminal.Open(int(os.Stdin.Fd()), os.Stdout)
	if err != nil {
		_ = child.Process.Kill()
		return 0, err
	}
	defer session.Close()

	// Interrupts go to the child; it decides how to die, and its exit
	// unwinds us through the session close above.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		for sig := range sigCh {
			_ = child.Process.Signal(sig)
		}
	}()

	go func() {
		_, _ = io.Copy(os.Stdout, ptmx)
	}()

	stdinCh := make(chan []byte, 16)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 1024)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				stdinCh <- data
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	done := make(chan error, 1)
	go func() {
		done <- child.Wait()
	}()

	// The loop goroutine is the sole owner of the focus state; the
	// filter callbacks run inside feed/flush calls made here.
	state := watch.NewState()
	filter := newInputFilter(
		func(p []byte) {
			_, _ = ptmx.Write(p)
		},
		func(focused bool) {
			state.Apply(parser.Event{FocusIn: focused})
			logger.Debug("wrap.focus.changed", "focused", focused)
		},
	)

	for {
		select {
		case waitErr := <-done:
			if err := session.Close(); err != nil {
				logger.Warn("wrap.session.close_failed", "error", err)
			}
			announce(opts, state, logger)
			return exitCode(waitErr)

		case data := <-stdinCh:
			filter.feed(data)

		case <-filter.timeout():
			filter.flush()

		case err := <-readErr:
			if err := session.Close(); err != nil {
				logger.Warn("wrap.session.close_failed", "error", err)
			}
			if errors.Is(err, io.EOF) {
				return 0, nil
			}
			return 0, fmt.Errorf("read terminal input: %w", err)
		}
	}
}

// announce notifies about the child finishing unless the terminal is
// confirmed focused, mirroring the watch scheduler's policy.
func announce(opts Options, state watch.State, logger *slog.Logger) {
	if state.Focused && state.Supported {
		logger.Info("wrap.exit.notification_skipped", "focused", true)
		return
	}
	if opts.Dispatch == nil {
		return
	}
	if err := opts.Dispatch(opts.Title, opts.Body); err != nil {
		logger.Warn("wrap.exit.notification_failed", "error", err)
		return
	}
	logger.Info("wrap.exit.notified")
}

func exitCode(waitErr error) (int, error) {
	if waitErr == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("wait for child: %w", waitErr)
}
