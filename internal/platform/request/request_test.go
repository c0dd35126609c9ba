// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kahani/internal/platform/apperr"
	"github.com/taibuivan/kahani/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/kahani/internal/platform/request"
	"github.com/taibuivan/kahani/internal/platform/sec"
)

func withID(request *http.Request, id string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add("id", id)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

/*
TestStoryID accepts non-negative integers only.
*/
func TestStoryID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"680099672", 680099672, false},
		{"0", 0, false},
		{"2147483648", 2147483648, false},
		{"abc", 0, true},
		{"-5", 0, true},
		{"", 0, true},
		{"12.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			request := withID(httptest.NewRequest(http.MethodGet, "/", nil), tt.raw)

			id, err := requestutil.StoryID(request)
			if tt.wantErr {
				assert.True(t, apperr.HasCode(err, apperr.CodeInvalidID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

/*
TestQueryInt distinguishes absent, valid and malformed values.
*/
func TestQueryInt(t *testing.T) {
	value, err := requestutil.QueryInt(httptest.NewRequest(http.MethodGet, "/?duration=", nil), "duration")
	require.NoError(t, err)
	assert.Nil(t, value)

	value, err = requestutil.QueryInt(httptest.NewRequest(http.MethodGet, "/?duration=10", nil), "duration")
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, 10, *value)

	_, err = requestutil.QueryInt(httptest.NewRequest(http.MethodGet, "/?duration=ten", nil), "duration")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestDecodeJSON tolerates an empty body and rejects malformed JSON.
*/
func TestDecodeJSON(t *testing.T) {
	var payload struct {
		StoryID int64 `json:"story_id"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"story_id": 7}`))
	require.NoError(t, requestutil.DecodeJSON(request, &payload))
	assert.Equal(t, int64(7), payload.StoryID)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, requestutil.DecodeJSON(request, &payload))

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.Error(t, requestutil.DecodeJSON(request, &payload))
}

/*
TestRequiredUserID rejects anonymous callers.
*/
func TestRequiredUserID(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := requestutil.RequiredUserID(request)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u-1"}))
	userID, err := requestutil.RequiredUserID(request)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}
