package ports

import (
	"context"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
)

// PersistenceGateway stores per-user writing data. Reads return sessions newest first.
type PersistenceGateway interface {
	GetSessions(ctx context.Context, userID domain.UserID) ([]domain.WritingSession, error)
	GetProjects(ctx context.Context, userID domain.UserID) ([]domain.Project, error)
	GetSettings(ctx context.Context, userID domain.UserID) (domain.UserSettings, error)
	SaveSession(ctx context.Context, session domain.WritingSession, userID domain.UserID) error
	SaveProject(ctx context.Context, project domain.Project, userID domain.UserID) error
	SaveSettings(ctx context.Context, settings domain.UserSettings, userID domain.UserID) error
	ClearAllData(ctx context.Context, userID domain.UserID) error
}
