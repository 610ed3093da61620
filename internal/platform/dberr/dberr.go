// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Integrity Errors
//
// Unique-constraint violations are a first-class signal in this system: the
// vote table enforces one-vote-per-user-per-target with unique indexes, and
// a duplicate insert must surface to the client as 409 CONFLICT rather than
// a generic failure. This package performs that SQLSTATE classification so
// repositories never inspect driver errors themselves.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/askora/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Classification:
//
//   - pgx.ErrNoRows            → NOT_FOUND
//   - SQLSTATE 23505 (unique)  → CONFLICT
//   - SQLSTATE 23503 (FK)      → VALIDATION_ERROR (referenced row is missing)
//   - SQLSTATE 23514 (check)   → VALIDATION_ERROR
//   - anything else            → INTERNAL_ERROR
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		// The driver error is preserved as the cause so callers can still
		// classify with errors.As (and logs keep the SQLSTATE detail), while
		// clients only ever see the sanitized message.
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return withCause(apperr.Conflict("Duplicate entry violates a uniqueness rule"), err)
		case pgerrcode.ForeignKeyViolation:
			return withCause(apperr.ValidationError("Referenced resource does not exist"), err)
		case pgerrcode.CheckViolation:
			return withCause(apperr.ValidationError("Value violates a storage constraint"), err)
		}
	}

	return apperr.Internal(err)
}

func withCause(appError *apperr.AppError, cause error) *apperr.AppError {
	appError.Cause = cause
	return appError
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint violation.
//
// Services use this to distinguish "slug already taken" retries from other
// storage failures without unwrapping driver types themselves.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}
