package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	filestore "github.com/ZhugeBane/parnaso-v6/internal/adapters/secrets/file"
	passstore "github.com/ZhugeBane/parnaso-v6/internal/adapters/secrets/pass"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	portmocks "github.com/ZhugeBane/parnaso-v6/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const key = "parnaso/session"

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, key).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, key).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, key).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundWhenNeitherBackendHasTheKey(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, key).Return("", fmt.Errorf("pass: %w", domain.ErrSecretNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, key).Return("", fmt.Errorf("file: %w", domain.ErrSecretNotFound)).Once()

	_, err := store.Get(context.Background(), key)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.NotContains(t, err.Error(), "primary backend")
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, key).Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, key).Return("", fmt.Errorf("file: %w", domain.ErrSecretNotFound)).Once()

	_, err := store.Get(context.Background(), key)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, key, "token").Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Put(mock.Anything, key, "token").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), key, "token"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, key, "token").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), key, "token"))
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		primaryErr  error
		fallbackErr error
		wantErr     string
	}{
		{name: "both succeed"},
		{name: "primary unavailable", primaryErr: passstore.ErrUnavailable},
		{name: "fallback fails", fallbackErr: errors.New("disk full"), wantErr: "fallback backend delete failed"},
		{name: "both fail", primaryErr: errors.New("pass failed"), fallbackErr: errors.New("disk full"), wantErr: "primary backend delete failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := portmocks.NewMockSecretStore(t)
			fallback := portmocks.NewMockSecretStore(t)
			store := NewStore(primary, fallback)

			primary.EXPECT().Delete(mock.Anything, key).Return(tt.primaryErr).Once()
			fallback.EXPECT().Delete(mock.Anything, key).Return(tt.fallbackErr).Once()

			err := store.Delete(context.Background(), key)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestStoreDoesNotFallbackOnCanceledContext(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, key).Return("", context.Canceled).Once()
	primary.EXPECT().Delete(mock.Anything, key).Return(context.Canceled).Once()

	_, err := store.Get(context.Background(), key)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, store.Delete(context.Background(), key), context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockSecretStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	store, err := NewBackend("", root)
	require.NoError(t, err)
	assert.IsType(t, &Store{}, store)

	store, err = NewBackend(BackendFile, root)
	require.NoError(t, err)
	assert.IsType(t, &filestore.Store{}, store)

	store, err = NewBackend(BackendPass, root)
	require.NoError(t, err)
	assert.IsType(t, &passstore.Store{}, store)

	_, err = NewBackend("vault", root)
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown secrets backend "vault"`)
}
