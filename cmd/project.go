package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZhugeBane/parnaso-v6/internal/adapters/render/progress"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage writing projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *app) *cobra.Command {
	var (
		description string
		target      int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("project name is required")
			}
			if target < 0 {
				return errors.New("--target must not be negative")
			}

			state, err := app.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			for _, project := range state.Projects {
				if strings.EqualFold(project.Name, name) {
					return fmt.Errorf("project %q already exists (%s)", project.Name, project.ID)
				}
			}

			project := domain.Project{Name: name, Description: description, TargetWords: target}
			if err := app.controller.SaveProject(cmd.Context(), project); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created project %s\n", name)
			return err
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Short description")
	cmd.Flags().IntVar(&target, "target", 0, "Target word count")

	return cmd
}

func newProjectListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with their word totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			report := progress.Report{State: state, Progress: app.service.Progress(state)}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), progress.Projects(report))
			return err
		},
	}
}
