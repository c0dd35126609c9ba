// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seo

import (
	"context"
	"net/http"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/feed"
	requestutil "github.com/taibuivan/kahani/internal/platform/request"
	"github.com/taibuivan/kahani/internal/platform/respond"
)

// StoryLookup resolves story IDs against the catalog.
type StoryLookup interface {
	Lookup(ctx context.Context, id int64) (catalog.Story, bool)
}

// Handler serves play-page metadata.
type Handler struct {
	stories StoryLookup
	site    feed.Site
}

// NewHandler creates a new seo Handler.
func NewHandler(stories StoryLookup, site feed.Site) *Handler {
	return &Handler{stories: stories, site: site}
}

// Get handles GET /api/v1/stories/{id}/seo.
//
// Unknown stories answer 404 but still carry a "Story Not Found" payload with
// noindex directives, so the page head can render.
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	storyID, err := requestutil.StoryID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	story, ok := handler.stories.Lookup(request.Context(), storyID)
	if !ok {
		respond.JSON(writer, http.StatusNotFound, respond.SuccessEnvelope{Data: NotFound()})
		return
	}

	respond.OK(writer, Build(handler.site, story))
}
