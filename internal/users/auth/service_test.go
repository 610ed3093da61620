// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/dberr"
	"github.com/taibuivan/askora/internal/platform/sec"
	"github.com/taibuivan/askora/internal/users/auth"
)

// # In-Memory Fakes

// fakeUserRepository mirrors the store contract: creating an account also
// creates its empty profile, atomically.
type fakeUserRepository struct {
	byUsername map[string]*auth.User
	byEmail    map[string]*auth.User
	profiles   map[string]bool // userID → profile row exists
	createErr  error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byUsername: map[string]*auth.User{},
		byEmail:    map[string]*auth.User{},
		profiles:   map[string]bool{},
	}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byUsername[user.Username] = user
	f.byEmail[user.Email] = user
	f.profiles[user.ID] = true
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := f.byUsername[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

// fakeTokenRepository mimics the get-or-create contract: the first candidate
// key wins and later candidates are discarded.
type fakeTokenRepository struct {
	keys map[string]string // userID → key
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{keys: map[string]string{}}
}

func (f *fakeTokenRepository) GetOrCreate(_ context.Context, userID, candidateKey string) (string, error) {
	if existing, ok := f.keys[userID]; ok {
		return existing, nil
	}
	f.keys[userID] = candidateKey
	return candidateKey, nil
}

func (f *fakeTokenRepository) ResolvePrincipal(_ context.Context, key string) (*sec.Principal, error) {
	for userID, stored := range f.keys {
		if stored == key {
			return &sec.Principal{UserID: userID, Username: "resolved", Role: string(sec.RoleMember)}, nil
		}
	}
	return nil, apperr.Unauthorized("Invalid or expired token")
}

func (f *fakeTokenRepository) Revoke(_ context.Context, userID string) (string, error) {
	key, ok := f.keys[userID]
	if !ok {
		return "", nil
	}
	delete(f.keys, userID)
	return key, nil
}

type fakeTokenCache struct {
	entries map[string]*sec.Principal
	sets    int
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{entries: map[string]*sec.Principal{}}
}

func (f *fakeTokenCache) Get(_ context.Context, key string) (*sec.Principal, error) {
	if principal, ok := f.entries[key]; ok {
		return principal, nil
	}
	return nil, apperr.NotFound("Token")
}

func (f *fakeTokenCache) Set(_ context.Context, key string, principal *sec.Principal, _ time.Duration) error {
	f.entries[key] = principal
	f.sets++
	return nil
}

func (f *fakeTokenCache) Delete(_ context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func newService() (*auth.Service, *fakeUserRepository, *fakeTokenRepository, *fakeTokenCache) {
	users := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	cache := newFakeTokenCache()
	return auth.NewService(users, tokens, cache), users, tokens, cache
}

// # Registration

func TestService_Register(t *testing.T) {
	service, users, _, _ := newService()

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Len(t, session.Token, sec.TokenLength)
	assert.Equal(t, "alice", session.Username)

	// Registration must create the empty reputation profile.
	assert.True(t, users.profiles[session.UserID])
}

func TestService_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"missing_username", auth.RegisterInput{Email: "a@b.com", Password: "password1"}},
		{"short_username", auth.RegisterInput{Username: "ab", Email: "a@b.com", Password: "password1"}},
		{"bad_username_chars", auth.RegisterInput{Username: "a b!", Email: "a@b.com", Password: "password1"}},
		{"missing_email", auth.RegisterInput{Username: "alice", Password: "password1"}},
		{"bad_email", auth.RegisterInput{Username: "alice", Email: "not-an-email", Password: "password1"}},
		{"short_password", auth.RegisterInput{Username: "alice", Email: "a@b.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _ := newService()

			_, err := service.Register(context.Background(), tt.input)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	service, _, _, _ := newService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "password1",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
}

// Two registrations racing past the uniqueness pre-checks both reach the
// INSERT; the loser's unique violation must still render as 409, not 500.
func TestService_Register_ConcurrentDuplicateIsConflict(t *testing.T) {
	service, users, _, _ := newService()
	users.createErr = dberr.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "create_user")

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
}

// # Login

func TestService_Login_ReturnsSameTokenEveryTime(t *testing.T) {
	service, _, _, _ := newService()

	registered, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	require.NoError(t, err)

	first, err := service.Login(context.Background(), auth.LoginInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	second, err := service.Login(context.Background(), auth.LoginInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	// The token is issued once per account and never rotated.
	assert.Equal(t, registered.Token, first.Token)
	assert.Equal(t, first.Token, second.Token)
}

func TestService_Login_WrongPassword(t *testing.T) {
	service, _, _, _ := newService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{Username: "alice", Password: "wrong"})

	require.Error(t, err)
	assert.Nil(t, session)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
}

func TestService_Login_UnknownUser(t *testing.T) {
	service, _, _, _ := newService()

	_, err := service.Login(context.Background(), auth.LoginInput{Username: "ghost", Password: "password1"})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	// Same generic message as a wrong password, to prevent enumeration.
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
}

func TestService_Login_MissingFields(t *testing.T) {
	service, _, _, _ := newService()

	_, err := service.Login(context.Background(), auth.LoginInput{})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

// # Logout

func TestService_Logout_RevokesTokenAndCacheEntry(t *testing.T) {
	service, _, tokens, cache := newService()

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	require.NoError(t, err)

	// Populate the cache the way real traffic would.
	_, err = service.ResolveToken(context.Background(), session.Token)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.UserID))

	// The row and the cache entry are both gone; the key stops resolving.
	assert.Empty(t, tokens.keys)
	assert.Empty(t, cache.entries)
	_, err = service.ResolveToken(context.Background(), session.Token)
	require.Error(t, err)

	// The next login issues a fresh token.
	relogged, err := service.Login(context.Background(), auth.LoginInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	assert.NotEqual(t, session.Token, relogged.Token)
}

func TestService_Logout_WithoutToken(t *testing.T) {
	service, _, _, _ := newService()

	// No token row for this account; logout is a no-op, not an error.
	err := service.Logout(context.Background(), "01920000-0000-7000-8000-0000000000aa")

	require.NoError(t, err)
}

// # Token Resolution

func TestService_ResolveToken_CacheMissRepopulates(t *testing.T) {
	service, _, _, cache := newService()

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	require.NoError(t, err)

	principal, err := service.ResolveToken(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, principal.UserID)

	// The relational result must have landed in the cache.
	assert.Equal(t, 1, cache.sets)

	// A second resolution is served from the cache without another write.
	_, err = service.ResolveToken(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
}

func TestService_ResolveToken_Unknown(t *testing.T) {
	service, _, _, _ := newService()

	_, err := service.ResolveToken(context.Background(), "no-such-token")

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
}
