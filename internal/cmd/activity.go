package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/apeerhq/apeer/internal/guard"
	"github.com/apeerhq/apeer/internal/service"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Manage peer evaluation activities",
	Long: `Manage peer evaluation activities. Teacher only.

Subcommands:
  list     List your activities
  create   Create an activity from a rubric
  export   Export activity results as CSV
  rubrics  List available rubrics

Examples:
  apeer activities list
  apeer activities create --name "Sprint 2" --rubric r1 --due 2026-09-15
  apeer activities export a1 --out sprint2.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		activities, err := app.Activity.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(activities) == 0 {
			pterm.Info.Println("No activities yet.")
			return nil
		}

		data := pterm.TableData{{"ID", "Name", "Status", "Due", "Participants"}}
		for _, a := range activities {
			data = append(data, []string{a.ID, a.Name, a.Status, a.DueDate, fmt.Sprint(a.Participants)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var activitiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an activity",
	Long: `Create a peer evaluation activity backed by a rubric.

Examples:
  apeer activities create --name "Sprint 2" --rubric r1 --due 2026-09-15 --group g1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		rubric, _ := cmd.Flags().GetString("rubric")
		due, _ := cmd.Flags().GetString("due")
		groups, _ := cmd.Flags().GetStringSlice("group")

		activity, err := app.Activity.Create(cmd.Context(), name, rubric, due, groups)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Created activity %s (%s)", activity.Name, activity.ID)
		return nil
	},
}

var activitiesExportCmd = &cobra.Command{
	Use:   "export <activity-id>",
	Short: "Export activity results as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = fmt.Sprintf("activity_%s.csv", args[0])
		}

		if err := app.Activity.ExportCSV(cmd.Context(), args[0], out); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s", out)
		return nil
	},
}

var rubricsCmd = &cobra.Command{
	Use:   "rubrics",
	Short: "List available rubrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		rubrics, err := app.Activity.Rubrics(cmd.Context())
		if err != nil {
			return err
		}

		data := pterm.TableData{{"ID", "Name", "Criteria"}}
		for _, r := range rubrics {
			data = append(data, []string{r.ID, r.Name, criteriaSummary(r.Criteria)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func criteriaSummary(criteria []service.Criterion) string {
	names := make([]string, len(criteria))
	for i, c := range criteria {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func init() {
	activitiesCreateCmd.Flags().String("name", "", "activity name")
	activitiesCreateCmd.Flags().String("rubric", "", "rubric id")
	activitiesCreateCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	activitiesCreateCmd.Flags().StringSlice("group", nil, "group id (repeatable)")

	activitiesExportCmd.Flags().String("out", "", "destination file (default activity_<id>.csv)")

	activitiesCmd.AddCommand(activitiesListCmd, activitiesCreateCmd, activitiesExportCmd)
	rootCmd.AddCommand(activitiesCmd, rubricsCmd)
}
