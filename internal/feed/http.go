// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/platform/ctxutil"
	"github.com/taibuivan/kahani/internal/platform/respond"
)

// Catalog is the read side of the story store.
type Catalog interface {
	All(ctx context.Context) []catalog.Story
}

// Handler serves /feed.xml, /sitemap.xml and /robots.txt.
type Handler struct {
	catalog Catalog
	site    Site
	now     func() time.Time
}

// NewHandler creates a new feed Handler.
func NewHandler(catalog Catalog, site Site) *Handler {
	return &Handler{catalog: catalog, site: site, now: time.Now}
}

// Routes mounts the documents at the site root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/feed.xml", handler.rss)
	router.Get("/sitemap.xml", handler.sitemap)
	router.Get("/robots.txt", handler.robots)

	return router
}

func (handler *Handler) rss(writer http.ResponseWriter, request *http.Request) {
	stories := handler.catalog.All(request.Context())

	ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "feed_generated",
		slog.Int("items", len(stories)),
	)

	writer.Header().Set("Cache-Control", RSSCacheControl)
	respond.XML(writer, RSSContentType, BuildRSS(handler.site, stories, handler.now()))
}

func (handler *Handler) sitemap(writer http.ResponseWriter, request *http.Request) {
	stories := handler.catalog.All(request.Context())
	respond.XML(writer, SitemapContentType, BuildSitemap(handler.site, stories, handler.now()))
}

func (handler *Handler) robots(writer http.ResponseWriter, _ *http.Request) {
	respond.Text(writer, http.StatusOK, BuildRobots(handler.site))
}
