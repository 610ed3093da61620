// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/askora/internal/platform/sec"
)

// # Storage Contracts

// UserRepository abstracts persistence of account records.
type UserRepository interface {
	// Create persists the account together with its empty reputation
	// profile; the two never exist without each other.
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// TokenRepository abstracts persistence of opaque API tokens.
//
// Tokens follow get-or-create semantics: an account owns at most one token,
// issued on first need and returned unchanged on every later request.
type TokenRepository interface {
	// GetOrCreate returns the account's existing token key, or atomically
	// persists candidateKey as the account's token if none exists yet.
	GetOrCreate(ctx context.Context, userID, candidateKey string) (string, error)

	// ResolvePrincipal maps a token key to the identity that owns it.
	ResolvePrincipal(ctx context.Context, key string) (*sec.Principal, error)

	// Revoke deletes the account's token and returns the deleted key, or
	// the empty string if the account had none.
	Revoke(ctx context.Context, userID string) (string, error)
}

// TokenCache is the volatile token → principal lookup consulted before
// hitting the relational store.
type TokenCache interface {
	Get(ctx context.Context, key string) (*sec.Principal, error)
	Set(ctx context.Context, key string, principal *sec.Principal, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
