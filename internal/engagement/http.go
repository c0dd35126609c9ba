// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kahani/internal/platform/constants"
	requestutil "github.com/taibuivan/kahani/internal/platform/request"
	"github.com/taibuivan/kahani/internal/platform/respond"
	"github.com/taibuivan/kahani/internal/platform/validate"
	"github.com/taibuivan/kahani/pkg/pointer"
)

const maxListLimit = 100

// Handler serves the engagement endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new engagement Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MeRoutes mounts the per-user endpoints; expected under /api/v1/me behind
// an authentication guard.
func (handler *Handler) MeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/engagement", handler.getState)
	router.Put("/likes/{id}", handler.toggleLike)
	router.Put("/favorites/{id}", handler.toggleFavorite)
	router.Get("/history", handler.listHistory)
	router.Post("/history", handler.recordPlay)
	router.Patch("/history/current", handler.updateProgress)

	return router
}

// RankingRoutes mounts the public leaderboards; expected under /api/v1/rankings.
func (handler *Handler) RankingRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{board}", handler.leaderboard)

	return router
}

// # Payloads

type recordPlayRequest struct {
	StoryID         *int64 `json:"story_id" validate:"required"`
	DurationSeconds int    `json:"duration_seconds" validate:"min=0"`
}

type updateProgressRequest struct {
	HistoryID       string `json:"history_id"`
	ProgressSeconds *int   `json:"progress_seconds" validate:"required,min=0"`
	Completed       bool   `json:"completed"`
}

// # Handlers

func (handler *Handler) getState(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.State(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	currentID, err := handler.service.CurrentHistoryID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, state, map[string]string{"current_history_id": currentID})
}

func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	handler.toggle(writer, request, Likes, "liked")
}

func (handler *Handler) toggleFavorite(writer http.ResponseWriter, request *http.Request) {
	handler.toggle(writer, request, Favorites, "favorited")
}

func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request, collection Collection, field string) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	storyID, err := requestutil.StoryID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	active, err := handler.service.toggle(request.Context(), collection, userID, storyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldStoryID: storyID, field: active})
}

func (handler *Handler) recordPlay(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body recordPlayRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	historyID, err := handler.service.RecordPlay(request.Context(), userID, *body.StoryID, body.DurationSeconds)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{FieldHistoryID: historyID})
}

func (handler *Handler) updateProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateProgressRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if body.HistoryID != "" {
		if err := (&validate.Validator{}).UUID(FieldHistoryID, body.HistoryID).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	updated, err := handler.service.UpdateProgress(request.Context(), userID, body.HistoryID, *body.ProgressSeconds, body.Completed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"updated": updated})
}

func (handler *Handler) listHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit, err := listLimit(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.History(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, entries, map[string]int{"count": len(entries)})
}

func (handler *Handler) leaderboard(writer http.ResponseWriter, request *http.Request) {
	board := chi.URLParam(request, FieldBoard)
	checks := (&validate.Validator{}).OneOf(FieldBoard, board, string(BoardMostPlayed), string(BoardMostFavorited))
	if err := checks.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit, err := listLimit(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.Leaderboard(request.Context(), Board(board), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, entries, map[string]any{"board": board, "count": len(entries)})
}

func listLimit(request *http.Request) (int, error) {
	limitParam, err := requestutil.QueryInt(request, FieldLimit)
	if err != nil {
		return 0, err
	}

	limit := pointer.Fallback(limitParam, constants.DefaultLeaderboardLimit)
	if err := (&validate.Validator{}).Range(FieldLimit, limit, 1, maxListLimit).Err(); err != nil {
		return 0, err
	}
	return limit, nil
}
