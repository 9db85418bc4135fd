package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change your writing settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			return printSettings(cmd, state.Settings)
		},
	}
}

func newSettingsSetCmd(app *app) *cobra.Command {
	var (
		goal      int
		focus     int
		weekStart string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change your daily goal, focus length or first day of the week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("daily-goal") && !flags.Changed("focus-minutes") && !flags.Changed("week-start") {
				return errors.New("nothing to change: pass --daily-goal, --focus-minutes or --week-start")
			}

			state, err := app.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			settings := state.Settings
			if flags.Changed("daily-goal") {
				if goal < 0 {
					return errors.New("--daily-goal must not be negative")
				}
				settings.DailyWordGoal = goal
			}
			if flags.Changed("focus-minutes") {
				if focus <= 0 {
					return errors.New("--focus-minutes must be at least one minute")
				}
				settings.FocusMinutes = focus
			}
			if flags.Changed("week-start") {
				day, err := parseWeekday(weekStart)
				if err != nil {
					return err
				}
				settings.WeekStartsOn = day
			}

			if err := app.controller.UpdateSettings(cmd.Context(), settings); err != nil {
				return err
			}

			return printSettings(cmd, settings)
		},
	}

	cmd.Flags().IntVar(&goal, "daily-goal", 0, "Daily word goal (0 disables it)")
	cmd.Flags().IntVar(&focus, "focus-minutes", 0, "Focus session length in minutes")
	cmd.Flags().StringVar(&weekStart, "week-start", "", "First day of the week, e.g. monday")

	return cmd
}

func parseWeekday(raw string) (time.Weekday, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := strings.ToLower(day.String())
		if raw == name || (len(raw) >= 3 && strings.HasPrefix(name, raw)) {
			return day, nil
		}
	}

	return time.Sunday, fmt.Errorf("unknown weekday %q", raw)
}

func printSettings(cmd *cobra.Command, settings domain.UserSettings) error {
	goal := "none"
	if settings.DailyWordGoal > 0 {
		goal = fmt.Sprintf("%d words", settings.DailyWordGoal)
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(),
		"daily goal:   %s\nfocus length: %s\nweek starts:  %s\n",
		goal, settings.FocusDuration(), settings.WeekStartsOn)
	return err
}
