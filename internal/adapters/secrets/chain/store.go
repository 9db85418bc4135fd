package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/ZhugeBane/parnaso-v6/internal/adapters/secrets/file"
	passstore "github.com/ZhugeBane/parnaso-v6/internal/adapters/secrets/pass"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/ZhugeBane/parnaso-v6/internal/ports"
)

const (
	BackendChain = "chain"
	BackendFile  = "file"
	BackendPass  = "pass"
)

// Store reads and writes the primary backend and falls back to the secondary
// when the primary fails.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewBackend builds the secret store named by backend. fileRoot is where the file backend keeps secrets.
func NewBackend(backend string, fileRoot string) (ports.SecretStore, error) {
	switch backend {
	case "", BackendChain:
		return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot))
	case BackendFile:
		return filestore.NewStore(fileRoot), nil
	case BackendPass:
		return passstore.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q (want %s, %s or %s)", backend, BackendChain, BackendFile, BackendPass)
	}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	if errors.Is(err, domain.ErrSecretNotFound) && errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete removes the key from both backends, since an earlier Put may have landed in either.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err != nil && shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	switch {
	case fallbackErr == nil:
		return nil
	case err == nil:
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
