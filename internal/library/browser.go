// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"sync"

	"github.com/taibuivan/kahani/internal/catalog"
)

// Browser is a stateful view over the library.
//
// Every setter recomputes the visible list and the keyword options before it
// returns. Keyword options depend only on the full list, never on the facets.
type Browser struct {
	mu       sync.RWMutex
	stories  []catalog.Story
	facets   Facets
	visible  []catalog.Story
	keywords []string
}

// NewBrowser creates a Browser over stories with no active facets.
func NewBrowser(stories []catalog.Story) *Browser {
	browser := &Browser{}
	browser.SetStories(stories)
	return browser
}

// SetStories replaces the full story list.
func (browser *Browser) SetStories(stories []catalog.Story) {
	browser.mu.Lock()
	defer browser.mu.Unlock()

	browser.stories = stories
	browser.keywords = KeywordOptions(stories)
	browser.recompute()
}

// SetFacets replaces all facets at once.
func (browser *Browser) SetFacets(facets Facets) {
	browser.update(func(current *Facets) { *current = facets })
}

// SetText sets the free-text facet; "" clears it.
func (browser *Browser) SetText(text string) {
	browser.update(func(current *Facets) { current.Text = text })
}

// SetDuration sets the duration facet; nil clears it.
func (browser *Browser) SetDuration(minutes *int) {
	browser.update(func(current *Facets) { current.Duration = minutes })
}

// SetKeyword sets the keyword facet; nil clears it.
func (browser *Browser) SetKeyword(keyword *string) {
	browser.update(func(current *Facets) { current.Keyword = keyword })
}

// Reset clears every facet.
func (browser *Browser) Reset() {
	browser.SetFacets(Facets{})
}

func (browser *Browser) update(mutate func(*Facets)) {
	browser.mu.Lock()
	defer browser.mu.Unlock()

	mutate(&browser.facets)
	browser.recompute()
}

// recompute must run with mu held.
func (browser *Browser) recompute() {
	browser.visible = Apply(browser.stories, browser.facets)
}

// Visible returns the stories that pass the current facets.
func (browser *Browser) Visible() []catalog.Story {
	browser.mu.RLock()
	defer browser.mu.RUnlock()
	return browser.visible
}

// Keywords returns the keyword options of the full list.
func (browser *Browser) Keywords() []string {
	browser.mu.RLock()
	defer browser.mu.RUnlock()
	return browser.keywords
}

// Facets returns the current facets.
func (browser *Browser) Facets() Facets {
	browser.mu.RLock()
	defer browser.mu.RUnlock()
	return browser.facets
}

// ResultCount returns the number of visible stories.
func (browser *Browser) ResultCount() int {
	return len(browser.Visible())
}
