package cmd

import (
	"errors"
	"fmt"

	"github.com/ZhugeBane/parnaso-v6/internal/adapters/render/progress"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"status"},
		Short:   "Show progress toward your daily goal, your streak and recent sessions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			report := progress.Report{State: state, Progress: app.service.Progress(state)}
			rendered, err := progress.Render(report, progress.RenderOptions{Now: app.now(), Limit: limit})
			if err != nil {
				return fmt.Errorf("render progress: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Recent sessions to show (0 shows all)")

	return cmd
}

func newUsersCmd(app *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List other writers, or every account with --all (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			if !all {
				writers, err := app.service.Writers(cmd.Context(), state.User)
				if err != nil {
					return err
				}
				for _, writer := range writers {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), writer.Name())
				}
				return nil
			}

			users, err := app.service.ListUsers(cmd.Context(), state.User)
			if err != nil {
				return err
			}
			for _, user := range users {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", user.ID, user.Email, user.Role, user.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every registered account with email and role")

	return cmd
}

func newResetCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all of your sessions, projects and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to erase data without --yes")
			}

			if _, err := app.signedIn(cmd.Context()); err != nil {
				return err
			}
			if err := app.controller.ResetData(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "all writing data erased")
			return err
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm erasing all data")

	return cmd
}
