// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and common body decoding
patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kahani/internal/platform/apperr"
	"github.com/taibuivan/kahani/internal/platform/ctxutil"
	"github.com/taibuivan/kahani/internal/platform/validate"
)

// maxBodyBytes bounds JSON request bodies; engagement payloads are tiny.
const maxBodyBytes = 1 << 16

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
StoryID parses the numeric {id} path segment of story routes.

Story IDs are non-negative derived hashes, so anything else is rejected.

Returns:
  - int64: The story ID
  - error: apperr.InvalidID("story") if the segment is not a non-negative integer
*/
func StoryID(request *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(request, "id"))

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, apperr.InvalidID("story")
	}

	return id, nil
}

/*
QueryInt reads an optional integer query parameter.

Returns:
  - *int: nil when the parameter is absent or blank
  - error: apperr.ValidationError when the value is not an integer
*/
func QueryInt(request *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(request.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validate.RequiredError(name, "Must be an integer")
	}

	return &value, nil
}

/*
RequiredUserID returns the user ID of the authenticated caller.

Returns:
  - string: Identity provider subject
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	userID := ctxutil.UserID(request.Context())
	if userID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}
