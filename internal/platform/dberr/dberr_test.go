// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kahani/internal/platform/apperr"
	"github.com/taibuivan/kahani/internal/platform/dberr"
)

/*
TestWrap checks the SQLSTATE to error-code mapping.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no_rows", fmt.Errorf("postgres_find_failed: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, apperr.CodeConflict},
		{"foreign_key", &pgconn.PgError{Code: "23503"}, apperr.CodeValidation},
		{"check", &pgconn.PgError{Code: "23514"}, apperr.CodeValidation},
		{"other", errors.New("connection reset"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "history entry"), tt.want))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "history entry"))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
}
