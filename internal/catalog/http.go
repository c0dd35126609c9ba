// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kahani/internal/platform/constants"
	requestutil "github.com/taibuivan/kahani/internal/platform/request"
	"github.com/taibuivan/kahani/internal/platform/respond"
	"github.com/taibuivan/kahani/internal/platform/validate"
	"github.com/taibuivan/kahani/pkg/pagination"
	"github.com/taibuivan/kahani/pkg/pointer"
)

// Handler serves the public story endpoints.
type Handler struct {
	store *Store
}

// NewHandler creates a new story Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Routes mounts the story endpoints; expected under /api/v1/stories.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listStories)
	router.Get("/{id}", handler.getStory)
	router.Get("/{id}/related", handler.listRelated)

	return router
}

// # Handlers

func (handler *Handler) listStories(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := strings.TrimSpace(request.URL.Query().Get(FieldQuery))
	if err := (&validate.Validator{}).MaxLen(FieldQuery, query, constants.MaxQueryLength).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	matches := handler.store.Search(request.Context(), query)

	respond.List(writer, pagination.Apply(matches, params), pagination.NewMeta(params, len(matches), query))
}

func (handler *Handler) getStory(writer http.ResponseWriter, request *http.Request) {
	storyID, err := requestutil.StoryID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	story, err := handler.store.ByID(request.Context(), storyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, story)
}

func (handler *Handler) listRelated(writer http.ResponseWriter, request *http.Request) {
	storyID, err := requestutil.StoryID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limitParam, err := requestutil.QueryInt(request, FieldLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit := pointer.Fallback(limitParam, constants.DefaultRelatedLimit)
	if err := (&validate.Validator{}).Range(FieldLimit, limit, 0, constants.MaxRelatedLimit).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	story, err := handler.store.ByID(request.Context(), storyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	related := handler.store.Related(request.Context(), story, limit)
	respond.List(writer, related, map[string]int{"count": len(related)})
}
