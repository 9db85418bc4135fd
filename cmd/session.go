package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/adapters/render/progress"
	"github.com/ZhugeBane/parnaso-v6/internal/application"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/spf13/cobra"
)

const sessionTimeLayout = "2006-01-02 15:04"

var errEndBeforeStart = errors.New("--end is before --start")

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Record and list writing sessions",
	}

	cmd.AddCommand(
		newSessionAddCmd(app),
		newSessionListCmd(app),
	)

	return cmd
}

type sessionAddOptions struct {
	start        string
	end          string
	minutes      int
	text         string
	words        int
	project      string
	multitasking bool
}

func newSessionAddCmd(app *app) *cobra.Command {
	var opts sessionAddOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a writing session",
		Long: "Record a writing session. The session ends now and lasts your focus length unless " +
			"--start, --end or --minutes say otherwise. Times use the local zone as \"" + sessionTimeLayout + "\" or RFC 3339.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			session, err := buildSession(opts, state, app.now())
			if err != nil {
				return err
			}

			return saveSession(cmd, app, session)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.start, "start", "", "Start time")
	flags.StringVar(&opts.end, "end", "", "End time (default now)")
	flags.IntVar(&opts.minutes, "minutes", 0, "Length in minutes (default your focus length)")
	flags.StringVar(&opts.text, "content", "", "What you wrote")
	flags.IntVar(&opts.words, "words", 0, "Word count (default counted from --content)")
	flags.StringVar(&opts.project, "project", "", "Project id or name")
	flags.BoolVar(&opts.multitasking, "multitasking", false, "Mark the session as multitasked")

	return cmd
}

func buildSession(opts sessionAddOptions, state application.State, now time.Time) (domain.WritingSession, error) {
	if opts.words < 0 {
		return domain.WritingSession{}, errors.New("--words must not be negative")
	}
	if opts.minutes < 0 {
		return domain.WritingSession{}, errors.New("--minutes must not be negative")
	}

	length := state.Settings.FocusDuration()
	if opts.minutes > 0 {
		length = time.Duration(opts.minutes) * time.Minute
	}

	end := now
	if opts.end != "" {
		parsed, err := parseSessionTime("--end", opts.end, now.Location())
		if err != nil {
			return domain.WritingSession{}, err
		}
		end = parsed
	}

	start := end.Add(-length)
	if opts.start != "" {
		parsed, err := parseSessionTime("--start", opts.start, now.Location())
		if err != nil {
			return domain.WritingSession{}, err
		}
		start = parsed
		if opts.end == "" && opts.minutes > 0 {
			end = start.Add(length)
		}
	}
	if end.Before(start) {
		return domain.WritingSession{}, errEndBeforeStart
	}

	projectID, err := domain.ResolveProject(state.Projects, opts.project)
	if err != nil {
		return domain.WritingSession{}, err
	}

	return domain.WritingSession{
		ProjectID:       projectID,
		StartTime:       start,
		EndTime:         end,
		Content:         opts.text,
		WordCount:       opts.words,
		WasMultitasking: opts.multitasking,
	}.Normalized(), nil
}

func parseSessionTime(flag, raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(sessionTimeLayout, raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%s: want %q or RFC 3339, got %q", flag, sessionTimeLayout, raw)
}

func saveSession(cmd *cobra.Command, app *app, session domain.WritingSession) error {
	ticket, err := app.controller.SaveSession(cmd.Context(), session)
	if err != nil {
		return err
	}

	var result application.SaveResult
	err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Saving session...", func(ctx context.Context) error {
		var waitErr error
		result, waitErr = ticket.Wait(ctx)
		return waitErr
	})
	if err != nil {
		return err
	}
	if result.Status == application.SaveFailed {
		return result.Err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved session: %d words in %s\n", session.WordCount, session.Duration().Round(time.Minute))
	return err
}

type sessionJSON struct {
	ID           string    `json:"id"`
	Project      string    `json:"project,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	WordCount    int       `json:"word_count"`
	Content      string    `json:"content,omitempty"`
	Multitasking bool      `json:"was_multitasking"`
}

func newSessionListCmd(app *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeSessionsJSON(cmd, state, limit)
			}

			rendered, err := progress.RenderSessions(state, progress.RenderOptions{Now: app.now(), Limit: limit})
			if err != nil {
				return fmt.Errorf("render sessions: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many sessions (0 shows all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeSessionsJSON(cmd *cobra.Command, state application.State, limit int) error {
	sessions := state.Sessions
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	out := make([]sessionJSON, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, sessionJSON{
			ID:           string(session.ID),
			Project:      state.ProjectName(session.ProjectID),
			StartTime:    session.StartTime,
			EndTime:      session.EndTime,
			WordCount:    session.WordCount,
			Content:      session.Content,
			Multitasking: session.WasMultitasking,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
