// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr maps low-level pgx errors to [apperr.AppError] values.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/kahani/internal/platform/apperr"
)

// SQLSTATE codes the engagement store cares about.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// Wrap classifies a database error for the HTTP layer.
//
// # Mapping
//   - [pgx.ErrNoRows] → NOT_FOUND for resource.
//   - unique violation → CONFLICT.
//   - foreign key / check violation → VALIDATION_ERROR.
//   - anything else → INTERNAL_ERROR (cause kept for logging only).
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case uniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case foreignKeyViolation, checkViolation:
			return apperr.ValidationError("Invalid " + resource)
		}
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint failure.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == uniqueViolation
}
