// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package feed renders the crawler-facing documents: the podcast RSS feed,
// the sitemap and robots.txt.
//
// Every document is a pure function of the catalog, the public [Site]
// identity and the generation time, so tests can pin all three.
package feed

import (
	"fmt"
	"strings"
)

// Site is the public identity of the deployment.
type Site struct {
	URL         string
	Title       string
	Description string
}

// NewSite trims a trailing slash from url.
func NewSite(url, title, description string) Site {
	return Site{URL: strings.TrimRight(url, "/"), Title: title, Description: description}
}

// PlayURL is the canonical page for a story.
func (site Site) PlayURL(storyID int64) string {
	return fmt.Sprintf("%s/play/%d", site.URL, storyID)
}

// Absolute resolves a site-relative path. Absolute URLs are returned unchanged.
func (site Site) Absolute(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return site.URL + path
}

// IconURL is the square artwork used by podcast clients.
func (site Site) IconURL() string {
	return site.URL + "/icon-512x512.png"
}
