package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fennig/focusping/internal/config"
	"github.com/fennig/focusping/internal/logging"
	"github.com/fennig/focusping/internal/notifier"
	"github.com/fennig/focusping/internal/terminal"
	"github.com/fennig/focusping/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	watchInterval time.Duration
	watchTitle    string
	watchBody     string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Ping on an interval while the terminal is unfocused",
	Long: `Put the terminal into raw mode, enable focus reporting, and send a
desktop notification on every interval during which the terminal does
not have focus. Terminals without focus reporting are pinged on every
interval.

The terminal mode is restored on exit, including Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		initializeCommandLogging(cfg.Logging, logging.RoleWatch)
		logger := slog.Default()

		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return fmt.Errorf("stdin is not a terminal")
		}

		interval := watchInterval
		if interval == 0 {
			interval = time.Duration(cfg.Watch.IntervalSeconds) * time.Second
		}
		title := watchTitle
		if title == "" {
			title = cfg.Notification.Title
		}
		body := watchBody
		if body == "" {
			body = cfg.Notification.Body
		}

		fmt.Println("Focus watch running. Switch to another window to allow notifications.")
		fmt.Println("Press Ctrl+C to stop.")

		session, err := terminal.Open(fd, os.Stdout)
		if err != nil {
			return err
		}
		defer session.Close()

		// With these trapped, an interrupt surfaces as EINTR inside the
		// loop's wait and unwinds through the deferred close above.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		system := notifier.System{Program: cfg.Notification.LinuxProgram}
		loop := watch.NewLoop(fd, &watch.Scheduler{
			Interval: interval,
			Title:    title,
			Body:     body,
			Dispatch: system.Notify,
			Logger:   logger,
		}, logger)

		runErr := loop.Run()
		if closeErr := session.Close(); runErr == nil {
			runErr = closeErr
		}
		return runErr
	},
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "Time between pings (default from config)")
	watchCmd.Flags().StringVarP(&watchTitle, "title", "t", "", "Notification title (default from config)")
	watchCmd.Flags().StringVarP(&watchBody, "body", "b", "", "Notification body (default from config)")

	rootCmd.AddCommand(watchCmd)
}
