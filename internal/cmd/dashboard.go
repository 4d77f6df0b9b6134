package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/apeerhq/apeer/internal/guard"
	"github.com/apeerhq/apeer/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open the full-screen interactive dashboard.

The dashboard polls backend availability and blocks with a retry notice
while the backend is down. A persisted session is resumed; otherwise the
landing view offers sign-in and registration. Each role lands on its own
dashboard: students see their scores and feedback, teachers the class
overview, admins the user list.

Examples:
  apeer dashboard
  apeer dashboard --mock`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	logToFile = true
	app, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go app.Monitor.Run(ctx)

	model := tui.NewModel(app.Sessions, tui.Services{
		Auth:       app.Auth,
		Activity:   app.Activity,
		Evaluation: app.Evaluation,
		Dashboard:  app.Dashboard,
		Group:      app.Group,
		Admin:      app.Admin,
		Profile:    app.Profile,
		Student:    app.Student,
	}, app.Monitor, app.Logger)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard crashed: %w", err)
	}
	return nil
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Print the class overview",
	Long: `Print the class overview without opening the dashboard. Teacher only.

Examples:
  apeer overview`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		analytics, err := app.Dashboard.ClassAnalytics(cmd.Context())
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println(analytics.Name)
		if err := pterm.DefaultTable.WithData(pterm.TableData{
			{"Students", fmt.Sprint(analytics.TotalStudents)},
			{"Average score", fmt.Sprintf("%.1f", analytics.AverageScore)},
			{"Submission rate", fmt.Sprintf("%.0f%%", analytics.SubmissionRate)},
			{"Bias flags", fmt.Sprint(analytics.BiasFlags)},
		}).Render(); err != nil {
			return err
		}

		for _, f := range analytics.FlaggedStudents {
			pterm.Warning.Printfln("%s (%s): %s", f.Name, f.Severity, f.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd, overviewCmd)
}
