// Package repotest holds behavior checks shared by every persistence gateway.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/ZhugeBane/parnaso-v6/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory builds a fresh, empty gateway whose generated timestamps come from clock.
type Factory func(t *testing.T, clock ports.Clock) ports.PersistenceGateway

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var Now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func RunGatewaySuite(t *testing.T, newGateway Factory) {
	t.Run("empty user", func(t *testing.T) {
		gw := newGateway(t, fixedClock(Now))
		ctx := context.Background()

		sessions, err := gw.GetSessions(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, sessions)

		projects, err := gw.GetProjects(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, projects)

		settings, err := gw.GetSettings(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.InitialSettings(), settings)
	})

	t.Run("sessions newest first with ids and word counts", func(t *testing.T) {
		gw := newGateway(t, fixedClock(Now))
		ctx := context.Background()

		older := domain.WritingSession{
			ClientRef: "ref-1",
			ProjectID: "novel",
			StartTime: Now.Add(-3 * time.Hour),
			EndTime:   Now.Add(-2 * time.Hour),
			Content:   "one two three",
		}
		newer := domain.WritingSession{
			ClientRef:       "ref-2",
			StartTime:       Now.Add(-time.Hour),
			EndTime:         Now,
			Content:         "ignored count",
			WordCount:       40,
			WasMultitasking: true,
		}
		require.NoError(t, gw.SaveSession(ctx, older, "u1"))
		require.NoError(t, gw.SaveSession(ctx, newer, "u1"))

		sessions, err := gw.GetSessions(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, sessions, 2)

		assert.Equal(t, "ref-2", sessions[0].ClientRef)
		assert.Equal(t, 40, sessions[0].WordCount)
		assert.True(t, sessions[0].WasMultitasking)
		assert.True(t, sessions[0].EndTime.Equal(Now))

		assert.Equal(t, "ref-1", sessions[1].ClientRef)
		assert.Equal(t, domain.ProjectID("novel"), sessions[1].ProjectID)
		assert.Equal(t, 3, sessions[1].WordCount)
		assert.Equal(t, "one two three", sessions[1].Content)
		assert.True(t, sessions[1].StartTime.Equal(older.StartTime))

		assert.NotEmpty(t, sessions[0].ID)
		assert.NotEmpty(t, sessions[1].ID)
		assert.NotEqual(t, sessions[0].ID, sessions[1].ID)
	})

	t.Run("session upsert by client ref and id", func(t *testing.T) {
		gw := newGateway(t, fixedClock(Now))
		ctx := context.Background()

		draft := domain.WritingSession{ClientRef: "ref-1", StartTime: Now.Add(-time.Hour), EndTime: Now, Content: "first"}
		require.NoError(t, gw.SaveSession(ctx, draft, "u1"))

		draft.Content = "first draft again"
		draft.WordCount = 0
		require.NoError(t, gw.SaveSession(ctx, draft, "u1"))

		sessions, err := gw.GetSessions(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "first draft again", sessions[0].Content)
		assert.Equal(t, 3, sessions[0].WordCount)

		stored := sessions[0]
		stored.Content = "edited"
		stored.WordCount = 1
		require.NoError(t, gw.SaveSession(ctx, stored, "u1"))

		sessions, err = gw.GetSessions(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, stored.ID, sessions[0].ID)
		assert.Equal(t, "edited", sessions[0].Content)
	})

	t.Run("projects", func(t *testing.T) {
		gw := newGateway(t, fixedClock(Now))
		ctx := context.Background()

		require.NoError(t, gw.SaveProject(ctx, domain.Project{Name: "Novel", TargetWords: 80_000}, "u1"))

		projects, err := gw.GetProjects(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		created := projects[0]
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Novel", created.Name)
		assert.Equal(t, 80_000, created.TargetWords)
		assert.True(t, created.CreatedAt.Equal(Now))

		created.Description = "first book"
		created.CreatedAt = time.Time{}
		require.NoError(t, gw.SaveProject(ctx, created, "u1"))

		projects, err = gw.GetProjects(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "first book", projects[0].Description)
		assert.True(t, projects[0].CreatedAt.Equal(Now))
	})

	t.Run("settings round trip", func(t *testing.T) {
		gw := newGateway(t, fixedClock(Now))
		ctx := context.Background()

		want := domain.UserSettings{DailyWordGoal: 1200, FocusMinutes: 50, WeekStartsOn: time.Sunday}
		require.NoError(t, gw.SaveSettings(ctx, want, "u1"))

		got, err := gw.GetSettings(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("users are isolated and clear removes only one user", func(t *testing.T) {
		gw := newGateway(t, fixedClock(Now))
		ctx := context.Background()

		for _, user := range []domain.UserID{"u1", "u2"} {
			require.NoError(t, gw.SaveSession(ctx, domain.WritingSession{ClientRef: "r-" + string(user), StartTime: Now, EndTime: Now, Content: "x"}, user))
			require.NoError(t, gw.SaveProject(ctx, domain.Project{Name: "P"}, user))
			require.NoError(t, gw.SaveSettings(ctx, domain.UserSettings{DailyWordGoal: 9, FocusMinutes: 9, WeekStartsOn: time.Friday}, user))
		}

		require.NoError(t, gw.ClearAllData(ctx, "u1"))
		require.NoError(t, gw.ClearAllData(ctx, "nobody"))

		sessions, err := gw.GetSessions(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, sessions)
		projects, err := gw.GetProjects(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, projects)
		settings, err := gw.GetSettings(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.InitialSettings(), settings)

		sessions, err = gw.GetSessions(ctx, "u2")
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "r-u2", sessions[0].ClientRef)
		settings, err = gw.GetSettings(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, 9, settings.DailyWordGoal)
	})

	t.Run("canceled context", func(t *testing.T) {
		gw := newGateway(t, fixedClock(Now))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := gw.SaveSession(ctx, domain.WritingSession{ClientRef: "r"}, "u1")
		require.ErrorIs(t, err, context.Canceled)

		_, err = gw.GetSessions(ctx, "u1")
		require.ErrorIs(t, err, context.Canceled)
	})
}
