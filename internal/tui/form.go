package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/apeerhq/apeer/internal/service"
)

// newLoginForm builds the landing form. The register-only fields are
// hidden while the action is "login"; huh re-evaluates the hide funcs as
// the bound action changes.
func newLoginForm(input *authInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to APeer").
				Description("Peer evaluation for the classroom").
				Options(
					huh.NewOption("Sign in", "login"),
					huh.NewOption("Create an account", "register"),
				).
				Value(&input.Action),

			huh.NewInput().
				Title("Email").
				Placeholder("you@school.edu").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errEmailRequired
					}
					return nil
				}).
				Value(&input.Email),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errNameRequired
					}
					return nil
				}).
				Value(&input.Name),

			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Student", service.RoleStudent),
					huh.NewOption("Teacher", service.RoleTeacher),
				).
				Value(&input.Role),
		).WithHideFunc(func() bool {
			return input.Action != "register"
		}),
	).WithShowHelp(true)
}

var (
	errEmailRequired = validationError("email is required")
	errNameRequired  = validationError("name is required")
)

type validationError string

func (e validationError) Error() string { return string(e) }
