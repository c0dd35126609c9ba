// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/kahani/internal/catalog"
)

// RSS content negotiation.
const (
	RSSContentType  = "application/rss+xml; charset=utf-8"
	RSSCacheControl = "s-maxage=3600, stale-while-revalidate"
)

// # Document Model

// RSS is the root of the podcast feed.
type RSS struct {
	XMLName      xml.Name `xml:"rss"`
	Version      string   `xml:"version,attr"`
	XMLNSAtom    string   `xml:"xmlns:atom,attr"`
	XMLNSMedia   string   `xml:"xmlns:media,attr"`
	XMLNSITunes  string   `xml:"xmlns:itunes,attr"`
	XMLNSContent string   `xml:"xmlns:content,attr"`
	Channel      Channel  `xml:"channel"`
}

type Channel struct {
	Title          string         `xml:"title"`
	Link           string         `xml:"link"`
	Description    string         `xml:"description"`
	Language       string         `xml:"language"`
	LastBuildDate  string         `xml:"lastBuildDate"`
	AtomLink       AtomLink       `xml:"atom:link"`
	Image          Image          `xml:"image"`
	ITunesAuthor   string         `xml:"itunes:author"`
	ITunesSummary  string         `xml:"itunes:summary"`
	ITunesCategory ITunesCategory `xml:"itunes:category"`
	ITunesImage    HrefElement    `xml:"itunes:image"`
	ITunesExplicit string         `xml:"itunes:explicit"`
	Items          []Item         `xml:"item"`
}

type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type Image struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type ITunesCategory struct {
	Text        string          `xml:"text,attr"`
	Subcategory *ITunesCategory `xml:"itunes:category,omitempty"`
}

type HrefElement struct {
	Href string `xml:"href,attr"`
}

type Item struct {
	Title          string    `xml:"title"`
	Link           string    `xml:"link"`
	GUID           GUID      `xml:"guid"`
	Description    CDATA     `xml:"description"`
	PubDate        string    `xml:"pubDate"`
	Enclosure      Enclosure `xml:"enclosure"`
	MediaContent   Media     `xml:"media:content"`
	MediaThumbnail Media     `xml:"media:thumbnail"`
	ITunesDuration int       `xml:"itunes:duration,omitempty"`
	Category       string    `xml:"category,omitempty"`
	ITunesSubtitle string    `xml:"itunes:subtitle,omitempty"`
}

type GUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type CDATA struct {
	Text string `xml:",cdata"`
}

type Enclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

type Media struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr,omitempty"`
	Medium string `xml:"medium,attr,omitempty"`
}

// # Builder

// BuildRSS renders one item per story, in catalog order.
func BuildRSS(site Site, stories []catalog.Story, now time.Time) RSS {
	generatedAt := now.UTC().Format(http.TimeFormat)

	items := make([]Item, 0, len(stories))
	for _, story := range stories {
		items = append(items, buildItem(site, story, generatedAt))
	}

	return RSS{
		Version:      "2.0",
		XMLNSAtom:    "http://www.w3.org/2005/Atom",
		XMLNSMedia:   "http://search.yahoo.com/mrss/",
		XMLNSITunes:  "http://www.itunes.com/dtds/podcast-1.0.dtd",
		XMLNSContent: "http://purl.org/rss/1.0/modules/content/",
		Channel: Channel{
			Title:         site.Title,
			Link:          site.URL,
			Description:   site.Description,
			Language:      "en-us",
			LastBuildDate: generatedAt,
			AtomLink:      AtomLink{Href: site.URL + "/feed.xml", Rel: "self", Type: "application/rss+xml"},
			Image:         Image{URL: site.IconURL(), Title: site.Title, Link: site.URL},
			ITunesAuthor:  site.Title,
			ITunesSummary: site.Description,
			ITunesCategory: ITunesCategory{
				Text:        "Arts",
				Subcategory: &ITunesCategory{Text: "Books"},
			},
			ITunesImage:    HrefElement{Href: site.IconURL()},
			ITunesExplicit: "false",
			Items:          items,
		},
	}
}

func buildItem(site Site, story catalog.Story, generatedAt string) Item {
	playURL := site.PlayURL(story.ID)
	thumbnail := site.Absolute(story.Thumbnail)

	pubDate := generatedAt
	if publishedAt, ok := story.PublishedAt(); ok {
		pubDate = publishedAt.UTC().Format(http.TimeFormat)
	}

	item := Item{
		Title:          story.Title,
		Link:           playURL,
		GUID:           GUID{IsPermaLink: true, Value: playURL},
		Description:    CDATA{Text: story.Description},
		PubDate:        pubDate,
		Enclosure:      Enclosure{URL: story.AudioLink, Type: "audio/mpeg"},
		MediaContent:   Media{URL: thumbnail, Type: "image/webp", Medium: "image"},
		MediaThumbnail: Media{URL: thumbnail},
		Category:       strings.Join(story.Keywords, ", "),
	}

	if minutes, ok := catalog.DurationMinutes(story.Title); ok && minutes > 0 {
		item.ITunesDuration = minutes * 60
		item.ITunesSubtitle = fmt.Sprintf("%d minutes hindi story", minutes)
	}

	return item
}
