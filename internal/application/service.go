package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/ZhugeBane/parnaso-v6/internal/ports"
)

var ErrMissingCredentials = errors.New("email and password are required")

// Service covers account flows that sit outside the view controller: sign-up,
// sign-in, the user directory and progress figures.
type Service struct {
	auth      ports.Authenticator
	directory ports.UserDirectory
	clock     ports.Clock
}

func NewService(auth ports.Authenticator, directory ports.UserDirectory, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		auth:      auth,
		directory: directory,
		clock:     clock,
	}
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (domain.User, error) {
	email, err := normalizeCredentials(cmd.Email, cmd.Password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.auth.Register(ctx, email, cmd.Password, strings.TrimSpace(cmd.DisplayName))
	if err != nil {
		return domain.User{}, fmt.Errorf("register user: %w", err)
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, cmd LoginCommand) (domain.User, error) {
	email, err := normalizeCredentials(cmd.Email, cmd.Password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.auth.Login(ctx, email, cmd.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("login: %w", err)
	}

	return user, nil
}

// ListUsers returns every registered user. Only admins may list them.
func (s *Service) ListUsers(ctx context.Context, requester *domain.User) ([]domain.User, error) {
	if requester == nil {
		return nil, ErrNotAuthenticated
	}
	if !requester.IsAdmin() {
		return nil, ErrForbidden
	}

	users, err := s.directory.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	return users, nil
}

// Writers lists the other writers visible from the social hub, by name.
func (s *Service) Writers(ctx context.Context, requester *domain.User) ([]domain.User, error) {
	if requester == nil {
		return nil, ErrNotAuthenticated
	}

	users, err := s.directory.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list writers: %w", err)
	}

	writers := make([]domain.User, 0, len(users))
	for _, user := range users {
		if user.ID == requester.ID {
			continue
		}
		writers = append(writers, user)
	}

	sort.Slice(writers, func(i, j int) bool {
		return strings.ToLower(writers[i].Name()) < strings.ToLower(writers[j].Name())
	})

	return writers, nil
}

func (s *Service) Progress(state State) domain.Progress {
	return domain.ComputeProgress(state.Sessions, state.Settings, s.clock.Now())
}

func normalizeCredentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	return email, nil
}
