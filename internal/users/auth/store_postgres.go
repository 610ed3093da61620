// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth implements registration, login, and opaque-token identity
// resolution for the Askora platform.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement the storage contracts in store.go using the [pgxpool.Pool]
// connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/database/schema"
	"github.com/taibuivan/askora/internal/platform/dberr"
	"github.com/taibuivan/askora/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Inserts the account row and its empty reputation profile in one
transaction. Every committed account therefore owns a profile; there is no
window in which one exists without the other.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Conflict on duplicate username/email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const accountQuery = `
		INSERT INTO users.account (
			id, username, email, passwordhash, displayname, role, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	_, err = transaction.Exec(context, accountQuery,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		// Unique violations on username/email classify as Conflict here so
		// that concurrent registrations racing past the service's pre-checks
		// still surface as 409 rather than a generic failure.
		return dberr.Wrap(err, "create_user")
	}

	profileQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $2)`,
		schema.UsersProfile.Table,
		schema.UsersProfile.UserID, schema.UsersProfile.CreatedAt, schema.UsersProfile.UpdatedAt)
	if _, err := transaction.Exec(context, profileQuery, user.ID, now); err != nil {
		return dberr.Wrap(err, "create_user_profile")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_user_repo_commit_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a user record by primary key.

Parameters:
  - context: context.Context
  - id: string (account UUID)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, "id = $1", id)
}

/*
FindByUsername retrieves a user record by their unique username.

Description: Standard lookup by username for authentication and profile resolution.
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findOne(context, "username = $1", username)
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: Performs a lookup on the account table, filtering out soft-deleted users.
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, "email = $1", email)
}

// findOne runs the shared account SELECT with the given WHERE predicate.
// Soft-deleted accounts are invisible to every lookup path.
func (repository *PostgresUserRepository) findOne(context context.Context, predicate string, arg any) (*User, error) {
	query := `
		SELECT id, username, email, passwordhash, displayname, role, createdat, updatedat
		FROM users.account
		WHERE ` + predicate + ` AND deletedat IS NULL`

	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_failed: %w", err)
	}

	return user, nil
}

// # Token Repository

// PostgresTokenRepository implements the TokenRepository interface using pgx.
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new PostgreSQL implementation of the TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{pool: pool}
}

/*
GetOrCreate returns the account's persisted token, creating it on first use.

Description: A single atomic upsert keeps the get-or-create race-free: if a
token row already exists for the account, the no-op DO UPDATE makes RETURNING
yield the existing key, so concurrent logins observe the same token and login
never rotates it.

Parameters:
  - context: context.Context
  - userID: string (account UUID)
  - candidateKey: string (fresh key used only if the account has no token yet)

Returns:
  - string: The account's canonical token key
  - error: Database errors
*/
func (repository *PostgresTokenRepository) GetOrCreate(context context.Context, userID, candidateKey string) (string, error) {
	const query = `
		INSERT INTO users.authtoken (key, userid, createdat)
		VALUES ($1, $2, $3)
		ON CONFLICT (userid) DO UPDATE SET userid = excluded.userid
		RETURNING key`

	var key string
	err := repository.pool.QueryRow(context, query, candidateKey, userID, time.Now()).Scan(&key)
	if err != nil {
		return "", fmt.Errorf("postgres_token_repo_get_or_create_failed: %w", err)
	}

	return key, nil
}

/*
ResolvePrincipal maps a token key to the identity that owns it.

Description: Joins the token table against the account table so a single
round-trip yields everything the request context needs. Soft-deleted
accounts fail resolution even while their token row is pending cascade.

Returns:
  - *sec.Principal: Identity of the token's owner
  - error: apperr.Unauthorized when the key is unknown
*/
func (repository *PostgresTokenRepository) ResolvePrincipal(context context.Context, key string) (*sec.Principal, error) {
	const query = `
		SELECT a.id, a.username, a.role
		FROM users.authtoken t
		JOIN users.account a ON a.id = t.userid
		WHERE t.key = $1 AND a.deletedat IS NULL`

	principal := &sec.Principal{}
	err := repository.pool.QueryRow(context, query, key).Scan(
		&principal.UserID,
		&principal.Username,
		&principal.Role,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Unauthorized("Invalid token")
		}
		return nil, fmt.Errorf("postgres_token_repo_resolve_failed: %w", err)
	}

	return principal, nil
}

/*
Revoke deletes the account's persisted token and returns the deleted key.

Description: Logout support. The returned key lets the caller evict the
volatile cache entry for the same token. An account with no token is not an
error; the empty string signals there was nothing to revoke.
*/
func (repository *PostgresTokenRepository) Revoke(context context.Context, userID string) (string, error) {
	const query = `DELETE FROM users.authtoken WHERE userid = $1 RETURNING key`

	var key string
	err := repository.pool.QueryRow(context, query, userID).Scan(&key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("postgres_token_repo_revoke_failed: %w", err)
	}

	return key, nil
}
