package cmd

import (
	"fmt"

	"github.com/fennig/focusping/internal/config"
	"github.com/fennig/focusping/internal/logging"
	"github.com/fennig/focusping/internal/remote"
	"github.com/spf13/cobra"
)

var (
	rcSocketPath string
	rcMatch      string
)

// newRemoteSession builds the session for rc commands; swapped out in
// tests.
var newRemoteSession = func(socketPath string) remote.Session {
	return &remote.SocketSession{Path: socketPath}
}

func remoteSessionFromConfig() (remote.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	initializeCommandLogging(cfg.Logging, logging.RoleCLI)

	path := rcSocketPath
	if path == "" {
		path = cfg.Remote.SocketPath
	}
	return newRemoteSession(path), nil
}

var rcCmd = &cobra.Command{
	Use:   "rc",
	Short: "Send a command to a running host session",
}

var rcCacheStatsCmd = &cobra.Command{
	Use:   "cache-stats",
	Short: "Report the host's font cache statistics",
	Long: `Ask the running host session for its glyph cache statistics: per
font group sprite counts and approximate GPU memory usage. Prints the
host's reply as indented JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := remoteSessionFromConfig()
		if err != nil {
			return err
		}

		stats, err := remote.CacheStats(cmd.Context(), session)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), stats)
		return nil
	},
}

var rcMarkTabDoneCmd = &cobra.Command{
	Use:   "mark-tab-done",
	Short: "Mark matching tabs with a notification indicator",
	Long: `Mark the tabs matching the given expression with a notification
indicator. The host shows the indicator in its tab overlay and clears
it when a marked tab becomes active.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := remoteSessionFromConfig()
		if err != nil {
			return err
		}
		return remote.MarkTabDone(cmd.Context(), session, rcMatch)
	},
}

func init() {
	rcCmd.PersistentFlags().StringVarP(&rcSocketPath, "to", "", "", "Host session socket (default from config)")
	rcMarkTabDoneCmd.Flags().StringVarP(&rcMatch, "match", "m", "", "Expression selecting the target tabs")

	rcCmd.AddCommand(rcCacheStatsCmd)
	rcCmd.AddCommand(rcMarkTabDoneCmd)
	rootCmd.AddCommand(rcCmd)
}
