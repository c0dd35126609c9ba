// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - JSON endpoints run under a request deadline; audio streaming and the
    crawler documents do not.
  - Only this package and cmd/api start net/http servers.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/kahani/internal/audio"
	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/engagement"
	"github.com/taibuivan/kahani/internal/feed"
	"github.com/taibuivan/kahani/internal/library"
	"github.com/taibuivan/kahani/internal/platform/config"
	"github.com/taibuivan/kahani/internal/platform/constants"
	"github.com/taibuivan/kahani/internal/platform/middleware"
	"github.com/taibuivan/kahani/internal/seo"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when every configured backend answers.
	Readiness http.HandlerFunc

	Catalog    *catalog.Handler
	Library    *library.Handler
	Engagement *engagement.Handler
	SEO        *seo.Handler
	Audio      *audio.Handler
	Feed       *feed.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. ctx bounds background middleware work.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()
	limiter := middleware.NewRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(limiter.Handler)
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		// Streams can outlive the JSON deadline.
		api.Mount("/audio", h.Audio.Routes())

		api.Group(func(jsonAPI chi.Router) {
			jsonAPI.Use(chimw.Timeout(constants.GlobalRequestTimeout))

			stories := h.Catalog.Routes()
			stories.Get("/{id}/seo", h.SEO.Get)

			jsonAPI.Mount("/stories", stories)
			jsonAPI.Mount("/library", h.Library.Routes())
			jsonAPI.Mount("/rankings", h.Engagement.RankingRoutes())
			jsonAPI.With(middleware.RequireAuth).Mount("/me", h.Engagement.MeRoutes())
		})
	})

	// # Crawler Documents
	r.Mount("/", h.Feed.Routes())

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
