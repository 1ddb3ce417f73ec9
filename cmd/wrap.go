package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fennig/focusping/internal/config"
	"github.com/fennig/focusping/internal/logging"
	"github.com/fennig/focusping/internal/notifier"
	"github.com/fennig/focusping/internal/wrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var wrapTitle string

var wrapCmd = &cobra.Command{
	Use:   "wrap -- command [args...]",
	Short: "Run a command and notify when it finishes unseen",
	Long: `Run a command under a pseudo-terminal while tracking focus on the
outer terminal. Focus reports are consumed by focusping and never reach
the wrapped command. When the command exits and the terminal is not
focused (or focus reporting is unsupported), a desktop notification is
sent.

Example:
  focusping wrap -- make -j8 test`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		initializeCommandLogging(cfg.Logging, logging.RoleWrap)

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("stdin is not a terminal")
		}

		title := wrapTitle
		if title == "" {
			title = cfg.Notification.Title
		}
		system := notifier.System{Program: cfg.Notification.LinuxProgram}

		code, err := wrap.Run(wrap.Options{
			Argv:     args,
			Title:    title,
			Body:     fmt.Sprintf("%s finished", args[0]),
			Dispatch: system.Notify,
			Logger:   slog.Default(),
		})
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

func init() {
	wrapCmd.Flags().StringVarP(&wrapTitle, "title", "t", "", "Notification title (default from config)")

	rootCmd.AddCommand(wrapCmd)
}
