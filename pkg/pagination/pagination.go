// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Lists are paginated by offset and an optional limit, applied in that order:
// the offset is skipped first, then at most limit items are returned. An absent
// limit means "everything after the offset". The reported total is always the
// pre-pagination count.
package pagination

import (
	"net/http"
	"strconv"

	"github.com/taibuivan/kahani/internal/platform/apperr"
)

// Params holds the parsed offset and optional limit from a request's query string.
type Params struct {
	Offset int
	// Limit is nil when the caller did not ask for a page size.
	Limit *int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Count  int    `json:"count"`
	Offset int    `json:"offset"`
	Limit  *int   `json:"limit,omitempty"`
	Query  string `json:"query,omitempty"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(params Params, total int, query string) Meta {
	return Meta{
		Count:  total,
		Offset: params.Offset,
		Limit:  params.Limit,
		Query:  query,
	}
}

// FromRequest parses "offset" and "limit" query parameters from an HTTP request.
//
// # Validation
//
// Non-numeric or negative values are rejected with a VALIDATION_ERROR rather
// than silently clamped.
func FromRequest(r *http.Request) (Params, error) {
	var params Params
	query := r.URL.Query()

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return Params{}, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   "offset",
				Message: "Must be a non-negative integer",
			})
		}
		params.Offset = offset
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return Params{}, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   "limit",
				Message: "Must be a non-negative integer",
			})
		}
		params.Limit = &limit
	}

	return params, nil
}

// Apply slices items by offset first, then limit.
func Apply[T any](items []T, params Params) []T {
	if params.Offset >= len(items) {
		return []T{}
	}

	page := items[params.Offset:]
	if params.Limit != nil && *params.Limit < len(page) {
		page = page[:*params.Limit]
	}

	return page
}
