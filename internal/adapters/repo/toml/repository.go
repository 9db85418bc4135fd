package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/ZhugeBane/parnaso-v6/internal/ports"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	DataDirKey     = "data.dir"
	defaultDataDir = ".parnaso"
	usersDir       = "users"
)

// Repository keeps one TOML document per user under <data.dir>/users.
type Repository struct {
	root  string
	clock ports.Clock
	newID func() string
}

var _ ports.PersistenceGateway = (*Repository)(nil)

func NewRepository(cfg *viper.Viper, clock ports.Clock) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	root, err := ResolveDataDir(cfg)
	if err != nil {
		return nil, err
	}

	return &Repository{root: root, clock: clock, newID: uuid.NewString}, nil
}

// ResolveDataDir returns the absolute data directory configured under data.dir, defaulting to ~/.parnaso.
func ResolveDataDir(cfg *viper.Viper) (string, error) {
	dir := cfg.GetString(DataDirKey)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(homeDir, defaultDataDir)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func (r *Repository) GetSessions(ctx context.Context, userID domain.UserID) ([]domain.WritingSession, error) {
	file, err := r.read(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.WritingSession, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		sessions = append(sessions, fromSessionSchema(entry))
	}
	domain.SortSessionsNewestFirst(sessions)

	return sessions, nil
}

func (r *Repository) GetProjects(ctx context.Context, userID domain.UserID) ([]domain.Project, error) {
	file, err := r.read(ctx, userID)
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(file.Projects))
	for _, entry := range file.Projects {
		projects = append(projects, fromProjectSchema(entry))
	}

	return projects, nil
}

func (r *Repository) GetSettings(ctx context.Context, userID domain.UserID) (domain.UserSettings, error) {
	file, err := r.read(ctx, userID)
	if err != nil {
		return domain.UserSettings{}, err
	}

	return fromSettingsSchema(file.Settings), nil
}

// SaveSession upserts by id, then by client ref. New sessions get an id and a word count from their content.
func (r *Repository) SaveSession(ctx context.Context, session domain.WritingSession, userID domain.UserID) error {
	return r.update(ctx, userID, func(file *userFileSchema) error {
		session = session.Normalized()

		for i := range file.Sessions {
			existing := file.Sessions[i]
			sameID := session.ID != "" && existing.ID == string(session.ID)
			sameRef := session.ClientRef != "" && existing.ClientRef == session.ClientRef
			if sameID || sameRef {
				if session.ID == "" {
					session.ID = domain.SessionID(existing.ID)
				}
				file.Sessions[i] = toSessionSchema(session)
				return nil
			}
		}

		if session.ID == "" {
			session.ID = domain.SessionID(r.newID())
		}
		file.Sessions = append(file.Sessions, toSessionSchema(session))
		return nil
	})
}

func (r *Repository) SaveProject(ctx context.Context, project domain.Project, userID domain.UserID) error {
	return r.update(ctx, userID, func(file *userFileSchema) error {
		if project.ID != "" {
			for i := range file.Projects {
				if file.Projects[i].ID == string(project.ID) {
					if project.CreatedAt.IsZero() {
						project.CreatedAt = ParseTime(file.Projects[i].CreatedAt)
					}
					file.Projects[i] = toProjectSchema(project)
					return nil
				}
			}
		} else {
			project.ID = domain.ProjectID(r.newID())
		}

		if project.CreatedAt.IsZero() {
			project.CreatedAt = r.clock.Now().UTC()
		}
		file.Projects = append(file.Projects, toProjectSchema(project))
		return nil
	})
}

func (r *Repository) SaveSettings(ctx context.Context, settings domain.UserSettings, userID domain.UserID) error {
	return r.update(ctx, userID, func(file *userFileSchema) error {
		file.Settings = toSettingsSchema(settings)
		return nil
	})
}

func (r *Repository) ClearAllData(ctx context.Context, userID domain.UserID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := r.pathForUser(userID)
	if err != nil {
		return err
	}

	mu := LockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove user data file: %w", err)
	}

	return nil
}

func (r *Repository) read(ctx context.Context, userID domain.UserID) (userFileSchema, error) {
	if err := ctx.Err(); err != nil {
		return userFileSchema{}, err
	}

	path, err := r.pathForUser(userID)
	if err != nil {
		return userFileSchema{}, err
	}

	mu := LockForPath(path)
	mu.RLock()
	defer mu.RUnlock()

	return readUserFile(path)
}

func (r *Repository) update(ctx context.Context, userID domain.UserID, apply func(*userFileSchema) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := r.pathForUser(userID)
	if err != nil {
		return err
	}

	mu := LockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	file, err := readUserFile(path)
	if err != nil {
		return err
	}

	if err := apply(&file); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	file.applyDefaults()
	return WriteDocument(path, file)
}

func readUserFile(path string) (userFileSchema, error) {
	var file userFileSchema
	if _, err := ReadDocument(path, &file); err != nil {
		return userFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return userFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) pathForUser(userID domain.UserID) (string, error) {
	id := strings.TrimSpace(string(userID))
	if id == "" {
		return "", errors.New("user id is empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid user id %q", userID)
	}

	return filepath.Join(r.root, usersDir, id+".toml"), nil
}

// UserDataPath is where userID's document lives.
func (r *Repository) UserDataPath(userID domain.UserID) (string, error) {
	return r.pathForUser(userID)
}
