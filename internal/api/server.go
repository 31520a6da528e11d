// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/autobrr/anititle/internal/api/handlers"
	"github.com/autobrr/anititle/internal/api/middleware"
	"github.com/autobrr/anititle/internal/config"
	"github.com/autobrr/anititle/internal/metrics"
	"github.com/autobrr/anititle/pkg/mediafilter"
	"github.com/autobrr/anititle/pkg/titles"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	maxConcurrent     = 64
	maxBacklog        = 256
	backlogTimeout    = 30 * time.Second
)

// Dependencies holds everything the HTTP API needs. Metrics may be nil.
type Dependencies struct {
	Config  *config.AppConfig
	Parser  *titles.Parser
	Metrics *metrics.Manager
}

type Server struct {
	deps *Dependencies
}

func NewServer(deps *Dependencies) *Server {
	return &Server{deps: deps}
}

// Handler builds the router.
func (s *Server) Handler() (*chi.Mux, error) {
	cfg := s.deps.Config.Config

	origins, err := cfg.ParseCORSAllowedOrigins()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: allowCredentials(origins),
		MaxAge:           300,
	}).Handler)

	var recorder handlers.Recorder
	if s.deps.Metrics != nil {
		recorder = s.deps.Metrics
	}

	titlesHandler := handlers.NewTitlesHandler(s.deps.Parser, recorder)
	matchingHandler := handlers.NewMatchingHandler(
		s.deps.Parser,
		mediafilter.Options{
			MinAliasLength: cfg.MinAliasLength,
			MinSimilarity:  cfg.MinSimilarity,
		},
		cfg.MinSubjectSimilarity,
		recorder,
	)
	healthHandler := handlers.NewHealthHandler(s.deps.Parser)

	r.Route("/api", func(r chi.Router) {
		r.Route("/health", healthHandler.Routes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.ThrottleBacklog(maxConcurrent, maxBacklog, backlogTimeout))
			titlesHandler.Routes(r)
			matchingHandler.Routes(r)
		})
	})

	if cfg.MetricsEnabled && s.deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.Metrics.Handler())
	}

	return r, nil
}

// ListenAndServe serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	router, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.deps.Config.Config.Addr(),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// allowCredentials reports whether origins names specific sites. An empty list
// or a wildcard lets rs/cors answer every origin.
func allowCredentials(origins []string) bool {
	return len(origins) > 0 && !slices.Contains(origins, "*")
}
