// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/platform/constants"
	requestutil "github.com/taibuivan/kahani/internal/platform/request"
	"github.com/taibuivan/kahani/internal/platform/respond"
	"github.com/taibuivan/kahani/internal/platform/validate"
	"github.com/taibuivan/kahani/pkg/pointer"
)

// Catalog is the part of [catalog.Store] the library reads.
type Catalog interface {
	All(ctx context.Context) []catalog.Story
}

// Meta accompanies the filtered list.
type Meta struct {
	ResultCount int      `json:"result_count"`
	Total       int      `json:"total"`
	Keywords    []string `json:"keywords"`
	Facets      struct {
		Query    string  `json:"q,omitempty"`
		Duration *int    `json:"duration,omitempty"`
		Keyword  *string `json:"keyword,omitempty"`
	} `json:"facets"`
}

// Handler serves the library endpoint.
type Handler struct {
	catalog Catalog
}

// NewHandler creates a library Handler.
func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// Routes mounts GET / (expected under /api/v1/library).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.browse)
	return router
}

func (handler *Handler) browse(writer http.ResponseWriter, request *http.Request) {
	facets, err := facetsFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	browser := NewBrowser(handler.catalog.All(request.Context()))
	browser.SetFacets(facets)

	meta := Meta{
		ResultCount: browser.ResultCount(),
		Total:       len(handler.catalog.All(request.Context())),
		Keywords:    browser.Keywords(),
	}
	meta.Facets.Query = facets.Text
	meta.Facets.Duration = facets.Duration
	meta.Facets.Keyword = facets.Keyword

	respond.List(writer, browser.Visible(), meta)
}

func facetsFromRequest(request *http.Request) (Facets, error) {
	query := request.URL.Query()

	duration, err := requestutil.QueryInt(request, "duration")
	if err != nil {
		return Facets{}, err
	}

	text := query.Get("q")
	checks := (&validate.Validator{}).MaxLen("q", text, constants.MaxQueryLength)
	if duration != nil {
		checks.Min("duration", *duration, 1)
	}
	if err := checks.Err(); err != nil {
		return Facets{}, err
	}

	facets := Facets{
		Text:     text,
		Duration: duration,
	}
	if keyword := query.Get("keyword"); keyword != "" {
		facets.Keyword = pointer.To(keyword)
	}

	return facets, nil
}
