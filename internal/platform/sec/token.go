// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and identity types.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, token
// generation) from the domain logic. Askora uses opaque API tokens that are
// persisted server-side and looked up on every authenticated request: a
// token is issued once per account (get-or-create) and login never rotates
// it, so clients keep working across sessions until the token row is
// revoked.
package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenLength is the character length of an opaque API token (hex-encoded).
const TokenLength = 40

// Principal is the authenticated identity resolved from an API token.
//
// It is injected into the request context by the authentication middleware
// and consumed by handlers through the request helpers.
type Principal struct {
	UserID   string
	Username string
	Role     string
}

// GenerateToken returns a cryptographically random opaque token of
// [TokenLength] lowercase hex characters.
func GenerateToken() (string, error) {
	raw := make([]byte, TokenLength/2)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
