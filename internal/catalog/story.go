// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package catalog owns the read-only story catalog.
//
// # Architecture
//
// Stories come from a static document (JSON or YAML) and never change while
// the process runs. A [Store] loads that document once, derives every story's
// numeric ID from its title and audio link, and answers lookups, searches and
// related-story queries from memory.
package catalog

import (
	"strings"
	"time"
)

// Story is one audio story of the catalog.
type Story struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	AudioLink   string   `json:"audio_link"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`

	// ProcessedAt is the ingestion timestamp as written in the source document.
	ProcessedAt string `json:"processed_at,omitempty"`
}

// processedAtLayouts lists the timestamp shapes seen in catalog documents.
// Values without a zone are UTC.
var processedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// PublishedAt parses ProcessedAt. It reports false when the field is absent or unparseable.
func (story Story) PublishedAt() (time.Time, bool) {
	raw := strings.TrimSpace(story.ProcessedAt)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range processedAtLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), true
		}
	}

	return time.Time{}, false
}

// HasKeywords reports whether the story carries at least one keyword.
func (story Story) HasKeywords() bool {
	return len(story.Keywords) > 0
}

const (
	FieldTitle     = "title"
	FieldAudioLink = "audio_link"
	FieldQuery     = "q"
	FieldLimit     = "limit"
)
