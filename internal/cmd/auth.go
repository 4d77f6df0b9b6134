package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/apeerhq/apeer/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to APeer",
	Long: `Sign in to the APeer backend.

With --google-token a Google ID token is exchanged for a session. With
--email alone the development sign-in path is used: the backend accepts
the email as the credential on the same endpoint.

The session is persisted under the credentials directory and reused by
every later command until 'apeer logout'.

Examples:
  apeer login --email teacher@school.edu
  apeer login --google-token "$(cat id_token.txt)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		googleToken, _ := cmd.Flags().GetString("google-token")

		if email == "" && googleToken == "" {
			return fmt.Errorf("either --email or --google-token is required")
		}

		ctx := cmd.Context()
		var identity session.Identity
		if googleToken != "" {
			identity, err = app.Sessions.LoginWithGoogle(ctx, googleToken)
		} else {
			identity, err = app.Sessions.Login(ctx, email)
		}
		if err != nil {
			if reason := app.Sessions.FailureReason(); reason != "" {
				return fmt.Errorf("%s", reason)
			}
			return err
		}

		pterm.Success.Printfln("Signed in as %s (%s)", identity.Email, identity.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an APeer account",
	Long: `Create an APeer account and sign in.

Examples:
  apeer register --email you@school.edu --name "Ada Lovelace" --role student`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")

		identity, err := app.Sessions.Register(cmd.Context(), email, name, role)
		if err != nil {
			if reason := app.Sessions.FailureReason(); reason != "" {
				return fmt.Errorf("%s", reason)
			}
			return err
		}

		pterm.Success.Printfln("Account created. Signed in as %s (%s)", identity.Email, identity.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear stored credentials",
	Long: `Sign out locally. The persisted profile and token are removed; no
request is made to the backend. Running it while already signed out is
not an error.

Examples:
  apeer logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if identity, ok := app.Sessions.Current(); ok {
			pterm.Info.Printfln("Signing out %s", identity.Email)
		}
		app.Sessions.Logout()
		pterm.Success.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		identity, ok := app.Sessions.Current()
		if !ok {
			pterm.Info.Println("Not signed in.")
			return nil
		}

		return pterm.DefaultTable.WithData(pterm.TableData{
			{"Email", identity.Email},
			{"Name", identity.Name},
			{"Role", identity.Role},
		}).Render()
	},
}

func init() {
	loginCmd.Flags().String("email", "", "email for development sign-in")
	loginCmd.Flags().String("google-token", "", "Google ID token")

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("role", "student", "account role: student or teacher")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
