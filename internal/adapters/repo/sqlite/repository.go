// Package sqlite stores writing data in a single SQLite database shared by all users.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/ZhugeBane/parnaso-v6/internal/ports"
	"github.com/google/uuid"
)

const DatabaseFile = "parnaso.db"

type Repository struct {
	db    *sql.DB
	clock ports.Clock
	newID func() string
}

var _ ports.PersistenceGateway = (*Repository)(nil)

func NewRepository(db *sql.DB, clock ports.Clock) *Repository {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Repository{db: db, clock: clock, newID: uuid.NewString}
}

// Open opens the database at path and returns a repository that owns it.
func Open(ctx context.Context, path string, clock ports.Clock) (*Repository, error) {
	db, err := OpenDatabase(ctx, path)
	if err != nil {
		return nil, err
	}

	return NewRepository(db, clock), nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) GetSessions(ctx context.Context, userID domain.UserID) ([]domain.WritingSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := `select id, client_ref, project_id, start_time, end_time, content, word_count, was_multitasking
		from sessions where user_id = ? order by start_time desc, rowid`
	rows, err := r.db.QueryContext(ctx, query, string(userID))
	if err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.WritingSession{}
	for rows.Next() {
		var (
			s          domain.WritingSession
			id         string
			projectID  string
			start, end sql.NullInt64
		)
		if err := rows.Scan(&id, &s.ClientRef, &projectID, &start, &end, &s.Content, &s.WordCount, &s.WasMultitasking); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.ID = domain.SessionID(id)
		s.ProjectID = domain.ProjectID(projectID)
		s.StartTime = fromMillis(start)
		s.EndTime = fromMillis(end)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

func (r *Repository) GetProjects(ctx context.Context, userID domain.UserID) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := `select id, name, description, target_words, created_at
		from projects where user_id = ? order by rowid`
	rows, err := r.db.QueryContext(ctx, query, string(userID))
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var (
			p         domain.Project
			id        string
			createdAt sql.NullInt64
		)
		if err := rows.Scan(&id, &p.Name, &p.Description, &p.TargetWords, &createdAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.ID = domain.ProjectID(id)
		p.CreatedAt = fromMillis(createdAt)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

func (r *Repository) GetSettings(ctx context.Context, userID domain.UserID) (domain.UserSettings, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserSettings{}, err
	}

	var (
		settings domain.UserSettings
		weekday  int
	)
	row := r.db.QueryRowContext(ctx,
		`select daily_word_goal, focus_minutes, week_starts_on from settings where user_id = ?`, string(userID))
	if err := row.Scan(&settings.DailyWordGoal, &settings.FocusMinutes, &weekday); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.InitialSettings(), nil
		}
		return domain.UserSettings{}, fmt.Errorf("select settings: %w", err)
	}
	settings.WeekStartsOn = time.Weekday(weekday)

	return settings, nil
}

// SaveSession upserts by id, then by client ref.
func (r *Repository) SaveSession(ctx context.Context, session domain.WritingSession, userID domain.UserID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	session = session.Normalized()

	return withTx(ctx, r.db, func(ctx context.Context, tx dbtx) error {
		if session.ID == "" && session.ClientRef != "" {
			var existing string
			err := tx.QueryRowContext(ctx,
				`select id from sessions where user_id = ? and client_ref = ? limit 1`,
				string(userID), session.ClientRef).Scan(&existing)
			switch {
			case err == nil:
				session.ID = domain.SessionID(existing)
			case !errors.Is(err, sql.ErrNoRows):
				return fmt.Errorf("lookup session by client ref: %w", err)
			}
		}
		if session.ID == "" {
			session.ID = domain.SessionID(r.newID())
		}

		query := `insert into sessions (user_id, id, client_ref, project_id, start_time, end_time, content, word_count, was_multitasking)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?)
			on conflict(user_id, id) do update set client_ref = excluded.client_ref,
				project_id = excluded.project_id,
				start_time = excluded.start_time,
				end_time = excluded.end_time,
				content = excluded.content,
				word_count = excluded.word_count,
				was_multitasking = excluded.was_multitasking`
		_, err := tx.ExecContext(ctx, query,
			string(userID), string(session.ID), session.ClientRef, string(session.ProjectID),
			toMillis(session.StartTime), toMillis(session.EndTime),
			session.Content, session.WordCount, session.WasMultitasking)
		if err != nil {
			return fmt.Errorf("upsert session: %w", err)
		}
		return nil
	})
}

func (r *Repository) SaveProject(ctx context.Context, project domain.Project, userID domain.UserID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if project.ID == "" {
		project.ID = domain.ProjectID(r.newID())
	}
	createdAt := toMillis(project.CreatedAt)
	if project.CreatedAt.IsZero() {
		createdAt = toMillis(r.clock.Now())
	}

	// An existing row keeps its creation time unless the caller supplies one.
	query := `insert into projects (user_id, id, name, description, target_words, created_at)
		values (?, ?, ?, ?, ?, ?)
		on conflict(user_id, id) do update set name = excluded.name,
			description = excluded.description,
			target_words = excluded.target_words,
			created_at = coalesce(?, projects.created_at)`

	var override sql.NullInt64
	if !project.CreatedAt.IsZero() {
		override = createdAt
	}

	_, err := r.db.ExecContext(ctx, query,
		string(userID), string(project.ID), project.Name, project.Description, project.TargetWords, createdAt, override)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}

	return nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings domain.UserSettings, userID domain.UserID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `insert into settings (user_id, daily_word_goal, focus_minutes, week_starts_on)
		values (?, ?, ?, ?)
		on conflict(user_id) do update set daily_word_goal = excluded.daily_word_goal,
			focus_minutes = excluded.focus_minutes,
			week_starts_on = excluded.week_starts_on`
	_, err := r.db.ExecContext(ctx, query,
		string(userID), settings.DailyWordGoal, settings.FocusMinutes, int(settings.WeekStartsOn))
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	return nil
}

func (r *Repository) ClearAllData(ctx context.Context, userID domain.UserID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return withTx(ctx, r.db, func(ctx context.Context, tx dbtx) error {
		for _, table := range []string{"sessions", "projects", "settings"} {
			if _, err := tx.ExecContext(ctx, `delete from `+table+` where user_id = ?`, string(userID)); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func toMillis(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromMillis(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}

	return time.UnixMilli(v.Int64).UTC()
}
