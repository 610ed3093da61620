// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the identity system for Askora.

It handles user registration, secure password hashing, and the opaque API
token lifecycle: a token is persisted server-side per account, issued
get-or-create, and never rotated by login.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Logout, ResolveToken).
  - Repository: Abstracted interfaces for Postgres (users, tokens) and Redis (token cache).
  - Security: Leverages bcrypt hashing and crypto/rand token generation.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/constants"
	"github.com/taibuivan/askora/internal/platform/sec"
	"github.com/taibuivan/askora/internal/platform/validate"
	"github.com/taibuivan/askora/pkg/uuid"
)

// # Contracts & Types

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository  UserRepository
	tokenRepository TokenRepository
	tokenCache      TokenCache
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	tokenCache TokenCache,
) *Service {
	return &Service{
		userRepository:  userRepo,
		tokenRepository: tokenRepo,
		tokenCache:      tokenCache,
	}
}

// Session is the transport-ready result of a successful register or login.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member, creating the account row, its empty
reputation profile, and the account's opaque API token in one flow.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Token, user id, and username for the client
  - err: Validation, Conflict (if identity exists), or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {

	// Field-level validation before any storage round-trip.
	v := &validate.Validator{}
	v.Required("username", input.Username).
		MinLen("username", input.Username, UsernameMinLength).
		MaxLen("username", input.Username, UsernameMaxLength)
	if input.Username != "" {
		v.Username("username", input.Username)
	}
	v.Required("email", input.Email)
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	v.Required("password", input.Password).
		MinLen("password", input.Password, PasswordMinLength).
		MaxLen("password", input.Password, PasswordMaxLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         string(sec.RoleMember),
	}

	// Persist the account with its empty profile in one transaction. A
	// unique violation here means a concurrent registration won the race
	// past the pre-checks above; it reaches the client as Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// Issue the account's API token. A failure here leaves the account
	// intact and usable: the next login runs the same get-or-create.
	token, err := service.issueToken(context, user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, UserID: user.ID, Username: user.Username}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Login validates user credentials and returns the account's persisted token.

Description: Verifies identity with a constant-time password comparison. The
returned token is stable: the same key is handed out on every successful
login until it is revoked server-side.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Token, user id, and username
  - err: Validation (missing fields), Unauthorized (bad credentials), or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	// Missing fields are a client error, not a credential failure.
	v := &validate.Validator{}
	v.Required("username", input.Username).Required("password", input.Password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// If the user does not exist, return a generic message to prevent enumeration.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Hand out the persisted token; login never rotates it.
	token, err := service.issueToken(context, user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, UserID: user.ID, Username: user.Username}, nil
}

/*
Logout revokes the caller's persisted token.

Description: Deletes the token row and evicts its cache entry, so the key
stops resolving immediately rather than after the cache TTL. The next login
issues a fresh token. Logging out an account that holds no token is a no-op.

Parameters:
  - context: context.Context
  - userID: string (authenticated account UUID)

Returns:
  - err: storage or cache failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	key, err := service.tokenRepository.Revoke(context, userID)
	if err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	if key == "" {
		return nil
	}

	// The cache entry must go with the row; a stale entry would keep the
	// revoked key valid until its TTL expires.
	if err := service.tokenCache.Delete(context, key); err != nil {
		return fmt.Errorf("auth_service_logout_cache_evict_failed: %w", err)
	}

	return nil
}

// issueToken runs the get-or-create exchange for an account's API token.
func (service *Service) issueToken(context context.Context, userID string) (string, error) {

	// Generate a candidate key; the repository discards it if the account
	// already has one.
	candidate, err := sec.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	token, err := service.tokenRepository.GetOrCreate(context, userID, candidate)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return token, nil
}

// # Token Resolution

/*
ResolveToken maps an opaque API token to the identity that owns it.

Description: Consulted by the authentication middleware on every request
carrying an Authorization header. The Redis cache absorbs the hot path; a
miss falls through to Postgres and repopulates the cache.

Parameters:
  - context: context.Context
  - token: string (opaque key from the Authorization header)

Returns:
  - *sec.Principal: Owning identity
  - err: apperr.Unauthorized when the token is unknown or revoked
*/
func (service *Service) ResolveToken(context context.Context, token string) (*sec.Principal, error) {

	// Fast path: volatile cache.
	if principal, err := service.tokenCache.Get(context, token); err == nil {
		return principal, nil
	}

	// Slow path: relational store.
	principal, err := service.tokenRepository.ResolvePrincipal(context, token)
	if err != nil {
		return nil, err
	}

	// Repopulate the cache; a cache write failure never fails the request.
	_ = service.tokenCache.Set(context, token, principal, constants.AuthTokenCacheTTL)

	return principal, nil
}
