package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/apeerhq/apeer/internal/guard"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer platform accounts",
	Long: `Administer platform accounts. Admin only.

Subcommands:
  users       List all accounts
  set-status  Activate or deactivate an account

Examples:
  apeer admin users
  apeer admin set-status u3 Inactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewAdminDashboard); err != nil {
			return err
		}

		users, err := app.Admin.Users(cmd.Context())
		if err != nil {
			return err
		}

		data := pterm.TableData{{"ID", "Name", "Email", "Role", "Status"}}
		for _, u := range users {
			data = append(data, []string{u.ID, u.Name, u.Email, u.Role, u.Status})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var adminSetStatusCmd = &cobra.Command{
	Use:   "set-status <user-id> <Active|Inactive>",
	Short: "Activate or deactivate an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewAdminDashboard); err != nil {
			return err
		}

		user, err := app.Admin.SetUserStatus(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		pterm.Success.Printfln("%s is now %s", user.Email, user.Status)
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminUsersCmd, adminSetStatusCmd)
	rootCmd.AddCommand(adminCmd)
}
