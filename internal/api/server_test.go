// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kahani/internal/api"
	"github.com/taibuivan/kahani/internal/audio"
	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/engagement"
	"github.com/taibuivan/kahani/internal/feed"
	"github.com/taibuivan/kahani/internal/library"
	"github.com/taibuivan/kahani/internal/platform/config"
	"github.com/taibuivan/kahani/internal/platform/sec"
	"github.com/taibuivan/kahani/internal/seo"
)

const testSecret = "router-test-secret"

var sleepStory = catalog.Story{
	Title:       "10 Minute Sleep Story",
	AudioLink:   "https://cdn.example.com/sleep.mp3",
	Description: "A calm night",
	Keywords:    []string{"Sleep"},
	ProcessedAt: "2025-01-02T03:04:05Z",
}

type fixture struct {
	handler http.Handler
	tokens  *sec.TokenService
	storyID int64
}

func newFixture(t *testing.T, health api.HealthDependencies) fixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{ServerPort: "0", CORSAllowedOrigins: "*"}

	tokens, err := sec.NewTokenService(testSecret, "kahani-test", "authenticated")
	require.NoError(t, err)

	stories := catalog.NewStore(catalog.StaticSource{sleepStory}, logger)
	site := feed.NewSite("https://kahani.example/", "Kahani", "Hindi stories")
	service := engagement.NewService(engagement.NewMemoryStore(), engagement.NewMemorySessions(), stories, logger)
	liveness, readiness := api.NewHealthHandlers(health, logger)

	server := api.NewServer(ctx, cfg, logger, tokens, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Catalog:    catalog.NewHandler(stories),
		Library:    library.NewHandler(stories),
		Engagement: engagement.NewHandler(service),
		SEO:        seo.NewHandler(stories, site),
		Audio:      audio.NewHandler(stories, audio.ModeRedirect, time.Minute),
		Feed:       feed.NewHandler(stories, site),
	})

	return fixture{
		handler: server.Handler(),
		tokens:  tokens,
		storyID: catalog.DeriveID(sleepStory.Title, sleepStory.AudioLink),
	}
}

func (f fixture) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("X-Real-IP", "198.51.100.10")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_Health reports liveness and a degraded readiness probe.
*/
func TestServer_Health(t *testing.T) {
	healthy := newFixture(t, api.HealthDependencies{})
	assert.Equal(t, http.StatusOK, healthy.do(t, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, healthy.do(t, http.MethodGet, "/ready", "", "").Code)

	degraded := newFixture(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return errors.New("connection refused") },
	})
	recorder := degraded.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "connection refused")
}

/*
TestServer_PublicRoutes reaches every public route group through the full chain.
*/
func TestServer_PublicRoutes(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{})
	storyPath := fmt.Sprintf("/api/v1/stories/%d", f.storyID)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"list", "/api/v1/stories", http.StatusOK, `"title":"10 Minute Sleep Story"`},
		{"detail", storyPath, http.StatusOK, `"audio_link":"https://cdn.example.com/sleep.mp3"`},
		{"related", storyPath + "/related", http.StatusOK, `"data":[]`},
		{"seo", storyPath + "/seo", http.StatusOK, `"@type":"AudioObject"`},
		{"seo_unknown", "/api/v1/stories/1/seo", http.StatusNotFound, `"index":false`},
		{"library", "/api/v1/library?q=sleep", http.StatusOK, `"result_count":1`},
		{"most_played", "/api/v1/rankings/most-played", http.StatusOK, `"board":"most-played"`},
		{"feed", "/feed.xml", http.StatusOK, "<rss"},
		{"sitemap", "/sitemap.xml", http.StatusOK, "<urlset"},
		{"robots", "/robots.txt", http.StatusOK, "Sitemap: https://kahani.example/sitemap.xml"},
		{"unknown", "/api/v1/nothing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := f.do(t, http.MethodGet, tt.target, "", "")
			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Contains(t, recorder.Body.String(), tt.wantBody)
			}
		})
	}
}

/*
TestServer_AudioRedirect sends listeners to the hosted file.
*/
func TestServer_AudioRedirect(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{})

	recorder := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/audio/%d", f.storyID), "", "")
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, sleepStory.AudioLink, recorder.Header().Get("Location"))
}

/*
TestServer_MeRequiresIdentity rejects anonymous and forged callers and serves verified ones.
*/
func TestServer_MeRequiresIdentity(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{})

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/me/engagement", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/me/engagement", "forged", "").Code)

	token, err := f.tokens.IssueToken("listener-1", "listener@example.com", time.Hour)
	require.NoError(t, err)

	likePath := fmt.Sprintf("/api/v1/me/likes/%d", f.storyID)
	recorder := f.do(t, http.MethodPut, likePath, token, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"liked":true`)

	recorder = f.do(t, http.MethodPost, "/api/v1/me/history", token, fmt.Sprintf(`{"story_id":%d,"duration_seconds":600}`, f.storyID))
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"history_id"`)

	recorder = f.do(t, http.MethodGet, "/api/v1/me/engagement", token, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), fmt.Sprintf("%d", f.storyID))

	recorder = f.do(t, http.MethodGet, "/api/v1/rankings/most-played", "", "")
	assert.Contains(t, recorder.Body.String(), `"count":1`)
}
