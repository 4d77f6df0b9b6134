package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	flagAPIURL   string
	flagMock     bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "apeer",
	Short: "Peer evaluation for the classroom",
	Long: `apeer is the command-line and terminal client for the APeer peer
evaluation platform. Teachers create activities and review class analytics,
students submit evaluations and track the feedback they receive, and
admins manage accounts.

Run without a subcommand to open the interactive dashboard.

Examples:
  apeer login --email teacher@school.edu
  apeer activities list
  apeer evaluate --activity a1 --student s2 --comment "clear reviews" --score Communication=4
  apeer dashboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "backend base URL (overrides APEER_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&flagMock, "mock", false, "use canned fixture data instead of the backend")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}
