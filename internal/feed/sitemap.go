// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/taibuivan/kahani/internal/catalog"
)

const SitemapContentType = "application/xml; charset=utf-8"

// URLSet is the sitemaps.org document root.
type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type staticPage struct {
	path       string
	changeFreq string
	priority   float64
}

var staticPages = []staticPage{
	{"", "weekly", 1.0},
	{"/library", "weekly", 0.9},
	{"/most-played", "daily", 0.8},
	{"/most-favorited", "daily", 0.8},
	{"/favorites", "daily", 0.7},
}

// BuildSitemap lists the static pages followed by one play page per story.
func BuildSitemap(site Site, stories []catalog.Story, now time.Time) URLSet {
	generatedAt := now.UTC().Format(time.RFC3339)

	urls := make([]SitemapURL, 0, len(staticPages)+len(stories))
	for _, page := range staticPages {
		urls = append(urls, SitemapURL{
			Loc:        site.URL + page.path,
			LastMod:    generatedAt,
			ChangeFreq: page.changeFreq,
			Priority:   formatPriority(page.priority),
		})
	}

	for _, story := range stories {
		lastMod := generatedAt
		if publishedAt, ok := story.PublishedAt(); ok {
			lastMod = publishedAt.UTC().Format(time.RFC3339)
		}

		urls = append(urls, SitemapURL{
			Loc:        site.PlayURL(story.ID),
			LastMod:    lastMod,
			ChangeFreq: "monthly",
			Priority:   formatPriority(0.6),
		})
	}

	return URLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: urls}
}

func formatPriority(priority float64) string {
	return strconv.FormatFloat(priority, 'f', 1, 64)
}
