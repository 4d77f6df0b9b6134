package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/apeerhq/apeer/internal/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend availability",
	Long: `Perform one availability probe against the backend and exit.

The exit code is zero when the backend answers and non-zero otherwise,
so the command is usable from scripts.

Examples:
  apeer health
  apeer health --api-url http://staging.example.edu/api`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		snapshot := app.Monitor.CheckNow(cmd.Context())
		if snapshot.Status != health.StatusReady {
			return fmt.Errorf("backend at %s is unreachable", app.Config.APIBaseURL)
		}
		pterm.Success.Printfln("Backend at %s is up", app.Config.APIBaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
