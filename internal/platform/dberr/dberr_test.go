// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/dberr"
)

func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusConflict, "CONFLICT"},
		{"fk_violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"check_violation", &pgconn.PgError{Code: pgerrcode.CheckViolation}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown_error", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")

			require.Error(t, wrapped)
			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.expectedStatus, ae.HTTPStatus)
			assert.Equal(t, tt.expectedCode, ae.Code)
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, dberr.Wrap(nil, "noop"))
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
	// Classification survives Wrap via the preserved cause chain.
	assert.True(t, dberr.IsUniqueViolation(dberr.Wrap(unique, "insert")))
	assert.False(t, dberr.IsUniqueViolation(pgx.ErrNoRows))
	assert.False(t, dberr.IsUniqueViolation(nil))
}
