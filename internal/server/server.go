// Package server exposes the analysis pipeline over HTTP as JSON, the seam a
// presentation layer renders from. Every endpoint is a pure function of the
// current dataset plus query parameters; the only mutation is the upload
// endpoint replacing the backing file wholesale.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ecocubano/internal/analysis"
	"ecocubano/internal/config"
	"ecocubano/internal/logger"
	"ecocubano/internal/store"
)

// Server is the HTTP API over one dataset store.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	store      *store.Store
	pipeline   *analysis.Pipeline
	config     config.Server
	defaults   config.Analysis
	log        *slog.Logger
}

// New creates a server over the given store and pipeline.
func New(st *store.Store, pipeline *analysis.Pipeline, cfg config.Server, defaults config.Analysis) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		store:    st,
		pipeline: pipeline,
		config:   cfg,
		defaults: defaults,
		log:      logger.Get(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	if s.config.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		}))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Get("/overview", s.handleOverview)
		r.Get("/categories", s.handleCategories)
		r.Get("/news", s.handleTopNews)
		r.Get("/news/summaries", s.handleNewsSummaries)
		r.Get("/news/blurb", s.handleBlurb)
		r.Get("/daily", s.handleDaily)
		r.Get("/weekdays", s.handleWeekdays)
		r.Get("/peaks", s.handlePeaks)
		r.Get("/keywords", s.handleKeywords)
		r.Get("/sentiment", s.handleSentiment)
		r.Get("/narratives", s.handleNarratives)
		r.Get("/slogans", s.handleSlogans)
		r.Get("/duplicates", s.handleDuplicates)
		r.Get("/wordcloud", s.handleWordCloud)
		r.Get("/violence", s.handleViolence)
		r.Post("/upload", s.handleUpload)
	})
}

// Start begins listening. It blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info("HTTP server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the router for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
