// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package seo builds the head metadata of a story's play page: title,
// description, canonical URL, Open Graph and Twitter cards, robots
// directives and schema.org structured data.
package seo

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/feed"
	"github.com/taibuivan/kahani/internal/platform/constants"
)

const (
	minDescriptionLength = 120
	maxDescriptionLength = 160
	twitterHandle        = "@hindistoryaudio"
)

// siteKeywords are appended to every story's own keywords.
var siteKeywords = []string{"hindi story", "audiobook", "kahani", "storytelling"}

// Robots are crawler directives for a page.
type Robots struct {
	Index  bool `json:"index"`
	Follow bool `json:"follow"`
}

// String renders the directives as a robots meta value.
func (robots Robots) String() string {
	index, follow := "noindex", "nofollow"
	if robots.Index {
		index = "index"
	}
	if robots.Follow {
		follow = "follow"
	}
	return index + "," + follow
}

// OpenGraph is the og:* card.
type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	SiteName    string `json:"site_name"`
	Locale      string `json:"locale"`
	Type        string `json:"type"`
	Image       string `json:"image"`
	ImageAlt    string `json:"image_alt"`
	Audio       string `json:"audio"`
	AudioType   string `json:"audio_type"`
}

// TwitterCard is the twitter:* card.
type TwitterCard struct {
	Card        string `json:"card"`
	Site        string `json:"site"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageAlt    string `json:"image_alt"`
}

// Metadata is everything the play page needs in its <head>.
type Metadata struct {
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Keywords       []string       `json:"keywords,omitempty"`
	Canonical      string         `json:"canonical,omitempty"`
	Thumbnail      string         `json:"thumbnail,omitempty"`
	AudioURL       string         `json:"audio_url,omitempty"`
	Duration       string         `json:"duration,omitempty"`
	Robots         Robots         `json:"robots"`
	RobotsMeta     string         `json:"robots_meta"`
	OpenGraph      *OpenGraph     `json:"open_graph,omitempty"`
	Twitter        *TwitterCard   `json:"twitter,omitempty"`
	StructuredData map[string]any `json:"structured_data,omitempty"`
}

// NotFound is served for unknown stories so crawlers drop the page.
func NotFound() Metadata {
	robots := Robots{Index: false, Follow: false}
	return Metadata{Title: "Story Not Found", Robots: robots, RobotsMeta: robots.String()}
}

// Build derives the play-page metadata for story.
func Build(site feed.Site, story catalog.Story) Metadata {
	title := Title(story.Title)
	description := Description(story.Title, story.Description, story.Keywords)
	playURL := site.PlayURL(story.ID)
	thumbnail := site.Absolute(story.Thumbnail)
	robots := Robots{Index: true, Follow: true}

	keywords := make([]string, 0, len(story.Keywords)+len(siteKeywords))
	keywords = append(keywords, story.Keywords...)
	keywords = append(keywords, siteKeywords...)

	return Metadata{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		Canonical:   playURL,
		Thumbnail:   thumbnail,
		AudioURL:    story.AudioLink,
		Duration:    Duration(story.Title),
		Robots:      robots,
		RobotsMeta:  robots.String(),
		OpenGraph: &OpenGraph{
			Title:       title,
			Description: description,
			URL:         playURL,
			SiteName:    site.Title,
			Locale:      "en_US",
			Type:        "music.song",
			Image:       thumbnail,
			ImageAlt:    story.Title + " - Hindi Story Audio",
			Audio:       story.AudioLink,
			AudioType:   "audio/mpeg",
		},
		Twitter: &TwitterCard{
			Card:        "summary_large_image",
			Site:        twitterHandle,
			Title:       title,
			Description: description,
			Image:       thumbnail,
			ImageAlt:    story.Title + " - Hindi Story",
		},
		StructuredData: structuredData(site, story, thumbnail, playURL),
	}
}

// Title appends " - Hindi Story" unless the title already mentions a story.
func Title(title string) string {
	if strings.Contains(strings.ToLower(title), "story") {
		return title
	}
	return title + " - Hindi Story"
}

// Description pads short descriptions with up to three keywords and cuts
// long ones to 157 characters plus an ellipsis.
func Description(title, description string, keywords []string) string {
	text := description
	if text == "" {
		text = fmt.Sprintf("Listen to %s - an engaging Hindi story.", title)
	}

	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	if utf8.RuneCountInString(text) < minDescriptionLength && len(keywords) > 0 {
		text += fmt.Sprintf(" Perfect for %s.", strings.Join(keywords, ", "))
	}

	if runes := []rune(text); len(runes) > maxDescriptionLength {
		text = string(runes[:maxDescriptionLength-3]) + "..."
	}
	return text
}

// Duration is the ISO-8601 duration of a story, from its title marker.
func Duration(title string) string {
	minutes, ok := catalog.DurationMinutes(title)
	if !ok {
		minutes = constants.DefaultSEODurationMinutes
	}
	return fmt.Sprintf("PT%dM", minutes)
}

func structuredData(site feed.Site, story catalog.Story, thumbnail, playURL string) map[string]any {
	data := map[string]any{
		"@context":     "https://schema.org",
		"@type":        "AudioObject",
		"name":         story.Title,
		"description":  story.Description,
		"contentUrl":   story.AudioLink,
		"thumbnailUrl": thumbnail,
		"duration":     Duration(story.Title),
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  site.Title,
			"logo":  map[string]any{"@type": "ImageObject", "url": site.URL + "/logo.svg"},
		},
		"breadcrumb": map[string]any{
			"@type": "BreadcrumbList",
			"itemListElement": []map[string]any{
				{"@type": "ListItem", "position": 1, "name": "Home", "item": site.URL},
				{"@type": "ListItem", "position": 2, "name": "Library", "item": site.URL + "/library"},
				{"@type": "ListItem", "position": 3, "name": story.Title, "item": playURL},
			},
		},
	}

	if story.ProcessedAt != "" {
		data["uploadDate"] = story.ProcessedAt
	}
	return data
}
