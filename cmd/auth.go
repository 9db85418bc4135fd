package cmd

import (
	"fmt"

	"github.com/ZhugeBane/parnaso-v6/internal/application"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *app) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long:  "Create a local account and sign in. The first account registered becomes the admin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.service.Register(cmd.Context(), application.RegisterCommand{
				Email:       email,
				Password:    password,
				DisplayName: name,
			})
			if err != nil {
				return err
			}

			return printSignedIn(cmd, user)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCmd(app *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.service.Login(cmd.Context(), application.LoginCommand{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			return printSignedIn(cmd, user)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.controller.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return err
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.identity.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				return errNotSignedIn
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Name(), user.Email, user.Role)
			return err
		},
	}
}

func printSignedIn(cmd *cobra.Command, user domain.User) error {
	line := fmt.Sprintf("signed in as %s <%s>", user.Name(), user.Email)
	if user.IsAdmin() {
		line += " (admin)"
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), line)
	return err
}
