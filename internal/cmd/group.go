package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/apeerhq/apeer/internal/guard"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage student groups",
	Long: `Manage student groups. Teacher only.

Subcommands:
  list       List groups with member counts
  create     Create a group
  assign     Assign a student to a group
  remove     Remove a student from a group
  delete     Delete a group
  ungrouped  List students with no group

Examples:
  apeer groups list
  apeer groups create --name "Team Rocket" --member s1 --member s2
  apeer groups assign g1 s3
  apeer groups remove g1 s3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		groups, err := app.Group.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			pterm.Info.Println("No groups yet.")
			return nil
		}

		data := pterm.TableData{{"ID", "Name", "Members"}}
		for _, g := range groups {
			count := g.MemberCount
			if count == 0 {
				count = len(g.Members)
			}
			data = append(data, []string{g.ID, g.Name, fmt.Sprint(count)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a group",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		members, _ := cmd.Flags().GetStringSlice("member")

		group, err := app.Group.Create(cmd.Context(), name, members)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Created group %s (%s)", group.Name, group.ID)
		return nil
	},
}

var groupsAssignCmd = &cobra.Command{
	Use:   "assign <group-id> <student-id>",
	Short: "Assign a student to a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		if _, err := app.Group.Assign(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		pterm.Success.Printfln("Assigned %s to %s", args[1], args[0])
		return nil
	},
}

var groupsRemoveCmd = &cobra.Command{
	Use:   "remove <group-id> <student-id>",
	Short: "Remove a student from a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		if err := app.Group.Remove(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		pterm.Success.Printfln("Removed %s from %s", args[1], args[0])
		return nil
	},
}

var groupsDeleteCmd = &cobra.Command{
	Use:   "delete <group-id>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		if err := app.Group.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		pterm.Success.Printfln("Deleted group %s", args[0])
		return nil
	},
}

var groupsUngroupedCmd = &cobra.Command{
	Use:   "ungrouped",
	Short: "List students with no group",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewTeacherDashboard); err != nil {
			return err
		}

		students, err := app.Dashboard.Ungrouped(cmd.Context())
		if err != nil {
			return err
		}
		if len(students) == 0 {
			pterm.Info.Println("Everyone is grouped.")
			return nil
		}

		data := pterm.TableData{{"ID", "Name", "Email"}}
		for _, s := range students {
			data = append(data, []string{s.ID, s.Name, s.Email})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	groupsCreateCmd.Flags().String("name", "", "group name")
	groupsCreateCmd.Flags().StringSlice("member", nil, "student id (repeatable)")
	groupsCreateCmd.MarkFlagRequired("name")

	groupsCmd.AddCommand(groupsListCmd, groupsCreateCmd, groupsAssignCmd,
		groupsRemoveCmd, groupsDeleteCmd, groupsUngroupedCmd)
	rootCmd.AddCommand(groupsCmd)
}
