package ports

import (
	"context"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
)

// IdentityGateway resolves the signed-in user. CurrentUser returns (nil, nil) when nobody is signed in.
type IdentityGateway interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
}

type Authenticator interface {
	Register(ctx context.Context, email, password, displayName string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
}

type UserDirectory interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}
