// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/ctxutil"
	"github.com/taibuivan/askora/internal/platform/respond"
	"github.com/taibuivan/askora/internal/platform/sec"
)

// TokenResolver defines the interface needed to resolve opaque tokens in middleware.
//
// # Why an interface?
//
// Defining TokenResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit
// testing. Resolution hits Redis first and falls back to Postgres, hence the
// context parameter.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*sec.Principal, error)
}

// Authenticate extracts and resolves the opaque API token from the
// Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' (or DRF-style 'Token <token>').
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the token to a [*sec.Principal] via [TokenResolver].
//  4. Inject the principal into the request context for downstream use.
func Authenticate(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			scheme := ""
			if len(parts) == 2 {
				scheme = strings.ToLower(parts[0])
			}
			if scheme != "bearer" && scheme != "token" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Resolution ───────────────────────────────────────────
			principal, err := resolver.ResolveToken(request.Context(), parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or revoked token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated user doesn't have the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically implies
// [RequireAuth] so you don't need to mount both.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			userRole := sec.UserRole(principal.Role)
			if !userRole.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
