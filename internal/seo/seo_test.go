// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/feed"
	"github.com/taibuivan/kahani/internal/seo"
)

var site = feed.NewSite("https://kahani.example", "Hindi Story Audiobook", "")

/*
TestTitle only appends the suffix when "story" is missing.
*/
func TestTitle(t *testing.T) {
	assert.Equal(t, "The Clever Crow - Hindi Story", seo.Title("The Clever Crow"))
	assert.Equal(t, "10 Minute Sleep STORY", seo.Title("10 Minute Sleep STORY"))
	assert.Equal(t, "Storytime", seo.Title("Storytime"))
}

/*
TestDescription covers fallback, keyword padding and truncation.
*/
func TestDescription(t *testing.T) {
	t.Run("fallback_with_keywords", func(t *testing.T) {
		got := seo.Description("Crow", "", []string{"moral", "kids", "animals", "extra"})
		assert.Equal(t, "Listen to Crow - an engaging Hindi story. Perfect for moral, kids, animals.", got)
	})

	t.Run("short_without_keywords", func(t *testing.T) {
		assert.Equal(t, "Short.", seo.Description("Crow", "Short.", nil))
	})

	t.Run("long_is_truncated", func(t *testing.T) {
		got := seo.Description("Crow", strings.Repeat("क", 200), []string{"kids"})
		assert.Equal(t, 160, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("padding_can_overflow_then_truncate", func(t *testing.T) {
		got := seo.Description("Crow", strings.Repeat("a", 119), []string{strings.Repeat("b", 50)})
		assert.Equal(t, 160, utf8.RuneCountInString(got))
		assert.True(t, strings.HasPrefix(got, strings.Repeat("a", 119)+" Perfect for "))
	})
}

/*
TestDuration renders ISO-8601 minutes with a ten minute default.
*/
func TestDuration(t *testing.T) {
	assert.Equal(t, "PT15M", seo.Duration("15 Minute Story"))
	assert.Equal(t, "PT10M", seo.Duration("Untimed"))
}

/*
TestBuild assembles canonical URLs, absolute images and keywords.
*/
func TestBuild(t *testing.T) {
	story := catalog.Story{
		ID:          42,
		Title:       "Jungle Tale",
		AudioLink:   "https://cdn.example.com/j.mp3",
		Thumbnail:   "/thumbs/j.webp",
		Description: "Animals talk.",
		Keywords:    []string{"animals"},
		ProcessedAt: "2025-01-01 00:00:00",
	}

	metadata := seo.Build(site, story)

	assert.Equal(t, "Jungle Tale - Hindi Story", metadata.Title)
	assert.Equal(t, "https://kahani.example/play/42", metadata.Canonical)
	assert.Equal(t, "https://kahani.example/thumbs/j.webp", metadata.Thumbnail)
	assert.Equal(t, []string{"animals", "hindi story", "audiobook", "kahani", "storytelling"}, metadata.Keywords)
	assert.Equal(t, "index,follow", metadata.RobotsMeta)
	require.NotNil(t, metadata.OpenGraph)
	assert.Equal(t, "music.song", metadata.OpenGraph.Type)
	assert.Equal(t, "AudioObject", metadata.StructuredData["@type"])
	assert.Equal(t, "2025-01-01 00:00:00", metadata.StructuredData["uploadDate"])
}

type lookup map[int64]catalog.Story

func (stories lookup) Lookup(_ context.Context, id int64) (catalog.Story, bool) {
	story, ok := stories[id]
	return story, ok
}

/*
TestHandler answers metadata, not-found metadata, and invalid IDs.
*/
func TestHandler(t *testing.T) {
	handler := seo.NewHandler(lookup{42: {ID: 42, Title: "Jungle Tale"}}, site)
	router := chi.NewRouter()
	router.Get("/stories/{id}/seo", handler.Get)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stories/42/seo", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data seo.Metadata `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Jungle Tale - Hindi Story", body.Data.Title)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stories/7/seo", nil))
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Story Not Found", body.Data.Title)
	assert.Equal(t, "noindex,nofollow", body.Data.RobotsMeta)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stories/abc/seo", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
