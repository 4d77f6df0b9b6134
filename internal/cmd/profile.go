package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/apeerhq/apeer/internal/guard"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and update your profile",
	Long: `View and update your profile. Any signed-in role.

Examples:
  apeer profile
  apeer profile update --name "Ada Lovelace" --avatar ./ada.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewProfile); err != nil {
			return err
		}

		profile, err := app.Profile.Get(cmd.Context())
		if err != nil {
			return err
		}

		data := pterm.TableData{
			{"Name", profile.Name},
			{"Email", profile.Email},
			{"Role", profile.Role},
		}
		if profile.Department != "" {
			data = append(data, []string{"Department", profile.Department})
		}
		if !profile.JoinedDate.IsZero() {
			data = append(data, []string{"Joined", profile.JoinedDate.Format("Jan 2, 2006")})
		}
		return pterm.DefaultTable.WithData(data).Render()
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your display name or avatar",
	Long: `Update your display name and, optionally, your avatar image.

The avatar is uploaded as a multipart form; any common image format the
backend accepts works.

Examples:
  apeer profile update --name "Ada Lovelace"
  apeer profile update --name "Ada Lovelace" --avatar ./ada.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewProfile); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		avatar, _ := cmd.Flags().GetString("avatar")

		profile, err := app.Profile.Update(cmd.Context(), name, avatar)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Profile updated: %s", profile.Name)
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().String("name", "", "display name")
	profileUpdateCmd.Flags().String("avatar", "", "path to an avatar image")
	profileUpdateCmd.MarkFlagRequired("name")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
