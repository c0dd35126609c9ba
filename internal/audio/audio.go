// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package audio resolves a story to its hosted audio object and delivers it,
// either as a redirect or as a byte-range proxy.
package audio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/platform/apperr"
	"github.com/taibuivan/kahani/internal/platform/constants"
	"github.com/taibuivan/kahani/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/kahani/internal/platform/request"
	"github.com/taibuivan/kahani/internal/platform/respond"
)

// Mode selects how audio is delivered.
type Mode string

const (
	ModeRedirect Mode = "redirect"
	ModeProxy    Mode = "proxy"
)

const defaultContentType = "audio/mpeg"

// StoryLookup resolves story IDs against the catalog.
type StoryLookup interface {
	Lookup(ctx context.Context, id int64) (catalog.Story, bool)
}

// Handler serves GET /api/v1/audio/{id}.
type Handler struct {
	stories StoryLookup
	mode    Mode
	client  *http.Client
}

// NewHandler creates an audio Handler. timeout bounds a whole proxied
// transfer and is ignored in redirect mode.
func NewHandler(stories StoryLookup, mode Mode, timeout time.Duration) *Handler {
	return &Handler{
		stories: stories,
		mode:    mode,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithClient swaps the upstream HTTP client, for tests.
func (handler *Handler) WithClient(client *http.Client) *Handler {
	handler.client = client
	return handler
}

// Routes mounts the audio endpoint; expected under /api/v1/audio.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.serve)
	router.Head("/{id}", handler.serve)

	return router
}

func (handler *Handler) serve(writer http.ResponseWriter, request *http.Request) {
	storyID, err := requestutil.StoryID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	story, ok := handler.stories.Lookup(request.Context(), storyID)
	if !ok || story.AudioLink == "" {
		respond.Error(writer, request, apperr.NotFound("Audio"))
		return
	}

	if handler.mode == ModeProxy {
		handler.proxy(writer, request, story)
		return
	}

	http.Redirect(writer, request, story.AudioLink, http.StatusFound)
}

// proxy streams the object, forwarding Range and answering with the
// upstream status (200 or 206).
func (handler *Handler) proxy(writer http.ResponseWriter, request *http.Request, story catalog.Story) {
	logger := ctxutil.GetLogger(request.Context())

	upstreamRequest, err := http.NewRequestWithContext(request.Context(), request.Method, story.AudioLink, nil)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	if byteRange := request.Header.Get(constants.HeaderRange); byteRange != "" {
		upstreamRequest.Header.Set(constants.HeaderRange, byteRange)
	}

	upstream, err := handler.client.Do(upstreamRequest)
	if err != nil {
		logger.ErrorContext(request.Context(), "audio_upstream_failed",
			slog.Int64("story_id", story.ID),
			slog.String("error", err.Error()),
		)
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	defer upstream.Body.Close()

	if upstream.StatusCode < 200 || upstream.StatusCode > 299 {
		logger.WarnContext(request.Context(), "audio_upstream_rejected",
			slog.Int64("story_id", story.ID),
			slog.Int("status", upstream.StatusCode),
		)
		respond.Error(writer, request, apperr.Upstream(upstream.StatusCode, "Failed to fetch audio", nil))
		return
	}

	header := writer.Header()
	contentType := upstream.Header.Get(constants.HeaderContentType)
	if contentType == "" {
		contentType = defaultContentType
	}
	header.Set(constants.HeaderContentType, contentType)
	header.Set(constants.HeaderAcceptRanges, "bytes")
	if contentLength := upstream.Header.Get(constants.HeaderContentLength); contentLength != "" {
		header.Set(constants.HeaderContentLength, contentLength)
	}
	if contentRange := upstream.Header.Get(constants.HeaderContentRange); contentRange != "" {
		header.Set(constants.HeaderContentRange, contentRange)
	}

	writer.WriteHeader(upstream.StatusCode)

	written, err := io.Copy(writer, upstream.Body)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WarnContext(request.Context(), "audio_stream_interrupted",
			slog.Int64("story_id", story.ID),
			slog.Int64("bytes", written),
			slog.String("error", err.Error()),
		)
	}
}
