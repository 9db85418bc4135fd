// Package local keeps accounts on this machine: a users.toml directory with
// bcrypt hashes, and a signed session token held in the secret store.
package local

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tomlrepo "github.com/ZhugeBane/parnaso-v6/internal/adapters/repo/toml"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/ZhugeBane/parnaso-v6/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	UsersFile         = "users.toml"
	SessionSecretKey  = "parnaso/session"
	SigningSecretKey  = "parnaso/signing-key"
	DefaultTokenTTL   = 30 * 24 * time.Hour
	minPasswordLength = 6
	tokenIssuer       = "parnaso"
	usersSchema       = 1
)

type Store struct {
	path     string
	secrets  ports.SecretStore
	clock    ports.Clock
	tokenTTL time.Duration
	newID    func() string
	hashCost int
}

var (
	_ ports.IdentityGateway = (*Store)(nil)
	_ ports.Authenticator   = (*Store)(nil)
	_ ports.UserDirectory   = (*Store)(nil)
)

func NewStore(dataDir string, secrets ports.SecretStore, clock ports.Clock, tokenTTL time.Duration) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	return &Store{
		path:     filepath.Join(filepath.Clean(dataDir), UsersFile),
		secrets:  secrets,
		clock:    clock,
		tokenTTL: tokenTTL,
		newID:    uuid.NewString,
		hashCost: bcrypt.DefaultCost,
	}
}

type usersDocument struct {
	Version int          `toml:"version"`
	Users   []userRecord `toml:"users"`
}

type userRecord struct {
	ID           string `toml:"id"`
	Email        string `toml:"email"`
	DisplayName  string `toml:"display_name,omitempty"`
	Role         string `toml:"role"`
	PasswordHash string `toml:"password_hash"`
	CreatedAt    string `toml:"created_at"`
}

func (r userRecord) user() domain.User {
	return domain.User{
		ID:          domain.UserID(r.ID),
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Role:        domain.Role(r.Role),
		CreatedAt:   tomlrepo.ParseTime(r.CreatedAt),
	}
}

// Register creates the account and signs it in. The first account on a machine becomes the admin.
func (s *Store) Register(ctx context.Context, email, password, displayName string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	email = normalizeEmail(email)
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return domain.User{}, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	mu := tomlrepo.LockForPath(s.path)
	mu.Lock()
	doc, err := s.readLocked()
	if err != nil {
		mu.Unlock()
		return domain.User{}, err
	}

	for _, existing := range doc.Users {
		if existing.Email == email {
			mu.Unlock()
			return domain.User{}, domain.ErrEmailTaken
		}
	}

	role := domain.RoleWriter
	if len(doc.Users) == 0 {
		role = domain.RoleAdmin
	}

	record := userRecord{
		ID:           s.newID(),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         string(role),
		PasswordHash: string(hash),
		CreatedAt:    tomlrepo.FormatTime(s.clock.Now().UTC()),
	}
	doc.Users = append(doc.Users, record)
	doc.Version = usersSchema

	err = tomlrepo.WriteDocument(s.path, doc)
	mu.Unlock()
	if err != nil {
		return domain.User{}, err
	}

	user := record.user()
	if err := s.issueToken(ctx, user.ID); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (s *Store) Login(ctx context.Context, email, password string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	email = normalizeEmail(email)
	doc, err := s.read()
	if err != nil {
		return domain.User{}, err
	}

	for _, record := range doc.Users {
		if record.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
			return domain.User{}, domain.ErrInvalidCredentials
		}

		user := record.user()
		if err := s.issueToken(ctx, user.ID); err != nil {
			return domain.User{}, err
		}
		return user, nil
	}

	return domain.User{}, domain.ErrInvalidCredentials
}

// CurrentUser returns the user named by a valid stored session token, or nil.
// Expired or tampered tokens are removed.
func (s *Store) CurrentUser(ctx context.Context) (*domain.User, error) {
	token, err := s.secrets.Get(ctx, SessionSecretKey)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session token: %w", err)
	}

	key, err := s.signingKey(ctx, false)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return nil, s.secrets.Delete(ctx, SessionSecretKey)
		}
		return nil, err
	}

	userID, err := UserIDFromToken(strings.TrimSpace(token), key, s.clock.Now)
	if err != nil {
		return nil, s.secrets.Delete(ctx, SessionSecretKey)
	}

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	for _, record := range doc.Users {
		if record.ID == userID {
			user := record.user()
			return &user, nil
		}
	}

	return nil, s.secrets.Delete(ctx, SessionSecretKey)
}

func (s *Store) Logout(ctx context.Context) error {
	if err := s.secrets.Delete(ctx, SessionSecretKey); err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}

	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(doc.Users))
	for _, record := range doc.Users {
		users = append(users, record.user())
	}

	return users, nil
}

func (s *Store) issueToken(ctx context.Context, userID domain.UserID) error {
	key, err := s.signingKey(ctx, true)
	if err != nil {
		return err
	}

	token, err := GenerateToken(string(userID), key, s.clock.Now(), s.tokenTTL)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	if err := s.secrets.Put(ctx, SessionSecretKey, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	return nil
}

func (s *Store) signingKey(ctx context.Context, create bool) ([]byte, error) {
	encoded, err := s.secrets.Get(ctx, SigningSecretKey)
	if err == nil {
		key, decodeErr := hex.DecodeString(strings.TrimSpace(encoded))
		if decodeErr == nil && len(key) > 0 {
			return key, nil
		}
		if !create {
			return nil, fmt.Errorf("decode signing key: %w", domain.ErrSecretNotFound)
		}
	} else if !errors.Is(err, domain.ErrSecretNotFound) || !create {
		return nil, fmt.Errorf("read signing key: %w", err)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	if err := s.secrets.Put(ctx, SigningSecretKey, hex.EncodeToString(key)); err != nil {
		return nil, fmt.Errorf("store signing key: %w", err)
	}

	return key, nil
}

func (s *Store) read() (usersDocument, error) {
	mu := tomlrepo.LockForPath(s.path)
	mu.RLock()
	defer mu.RUnlock()

	return s.readLocked()
}

func (s *Store) readLocked() (usersDocument, error) {
	var doc usersDocument
	if _, err := tomlrepo.ReadDocument(s.path, &doc); err != nil {
		return usersDocument{}, err
	}
	if doc.Version > usersSchema {
		return usersDocument{}, fmt.Errorf("unsupported users schema version %d (current %d)", doc.Version, usersSchema)
	}

	return doc, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
