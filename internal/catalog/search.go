// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/kahani/pkg/slice"
)

// fold prepares text for case-insensitive substring matching. Devanagari has
// composed and decomposed spellings of the same syllable (e.g. nukta forms),
// so both sides are brought to NFC before lower-casing.
func fold(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

// matchesFolded reports whether story contains the already-folded needle in its
// title, description or any keyword.
func matchesFolded(story Story, needle string) bool {
	if strings.Contains(fold(story.Title), needle) || strings.Contains(fold(story.Description), needle) {
		return true
	}
	for _, keyword := range story.Keywords {
		if strings.Contains(fold(keyword), needle) {
			return true
		}
	}
	return false
}

// MatchesText reports whether text occurs, case-insensitively, in the story's
// title, description or any keyword. Empty text matches every story.
func MatchesText(story Story, text string) bool {
	return matchesFolded(story, fold(text))
}

// Search filters stories by a free-text query, keeping catalog order.
// The query is trimmed; a blank query returns the input unchanged.
func Search(stories []Story, query string) []Story {
	needle := fold(strings.TrimSpace(query))
	if needle == "" {
		return stories
	}

	return slice.Filter(stories, func(story Story) bool {
		return matchesFolded(story, needle)
	})
}
