package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "focusping",
	Short:   "Notifications for unfocused terminals",
	Version: Version,
	Long: `focusping tracks whether your terminal window has focus and pings you
with a desktop notification while you are looking elsewhere.

It enables the terminal's focus-reporting mode (CSI ? 1004 h) and parses
the focus events the terminal sends back. Terminals that don't report
focus are pinged on every interval, since there is no evidence you are
watching.

Usage:
  focusping watch                    Watch this terminal and ping while unfocused
  focusping wrap -- make test        Run a command, notify when it finishes unseen
  focusping rc cache-stats           Query a running host session
  focusping config init              Create default config file`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
