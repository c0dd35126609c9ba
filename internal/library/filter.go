// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package library implements the story library's filter engine.
//
// # Model
//
// The visible list is a pure function of the full story list and three facets.
// A [Browser] holds that state and recomputes the visible list whenever either
// side changes, so the result can never go stale.
package library

import (
	"slices"
	"unicode/utf16"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/pkg/slice"
)

// Facets are the active library filters. The zero value filters nothing.
type Facets struct {
	// Text is matched case-insensitively against title, description and keywords.
	// It is used as given; an empty string is inactive.
	Text string

	// Duration selects stories whose title carries "<N> Minute"; nil is inactive.
	Duration *int

	// Keyword selects stories listing exactly this keyword; nil or "" is inactive.
	Keyword *string
}

// Active reports whether any facet constrains the result.
func (facets Facets) Active() bool {
	return facets.Text != "" || facets.Duration != nil || facets.keywordActive()
}

func (facets Facets) keywordActive() bool {
	return facets.Keyword != nil && *facets.Keyword != ""
}

// Matches reports whether story satisfies every active facet.
func (facets Facets) Matches(story catalog.Story) bool {
	if facets.Text != "" && !catalog.MatchesText(story, facets.Text) {
		return false
	}

	if facets.Duration != nil && !catalog.DurationMatches(story.Title, *facets.Duration) {
		return false
	}

	if facets.keywordActive() && !hasKeyword(story, *facets.Keyword) {
		return false
	}

	return true
}

func hasKeyword(story catalog.Story, keyword string) bool {
	for _, candidate := range story.Keywords {
		if candidate == keyword {
			return true
		}
	}
	return false
}

// Apply returns the stories satisfying all active facets, in input order.
// With no active facet the input is returned unchanged.
func Apply(stories []catalog.Story, facets Facets) []catalog.Story {
	if !facets.Active() {
		return stories
	}
	return slice.Filter(stories, facets.Matches)
}

// KeywordOptions returns the de-duplicated keywords of stories, ordered by
// UTF-16 code units so browsers and clients sorting natively agree.
func KeywordOptions(stories []catalog.Story) []string {
	var all []string
	for _, story := range stories {
		all = append(all, story.Keywords...)
	}
	options := slice.SortedUnique(all)
	slices.SortStableFunc(options, compareUTF16)
	return options
}

// compareUTF16 orders strings by UTF-16 code units. It differs from byte order
// only when supplementary-plane runes meet runes in U+E000..U+FFFF.
func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
