// Package api provides the HTTP API server for the backend.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/frameworkhub/backend/internal/api/handlers"
	"github.com/frameworkhub/backend/internal/api/health"
	"github.com/frameworkhub/backend/internal/api/middleware"
	"github.com/frameworkhub/backend/internal/store"
	"github.com/frameworkhub/backend/pkg/config"
	"github.com/frameworkhub/backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server represents the HTTP API server.
type Server struct {
	router        chi.Router
	httpServer    *http.Server
	store         store.Store
	runner        handlers.JobTrigger
	config        *config.Config
	logger        *logger.Logger
	healthChecker *health.Checker
}

// NewServer creates a new API server with the given dependencies.
func NewServer(cfg *config.Config, st store.Store, runner handlers.JobTrigger, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}

	s := &Server{
		store:  st,
		runner: runner,
		config: cfg,
		logger: log,
	}

	s.healthChecker = health.NewChecker(st)

	s.setupRouter()
	return s
}

// setupRouter configures the router with middleware and routes.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Global middleware. No request timeout is applied: the trigger endpoint
	// waits on the external script for as long as it runs.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.Recovery(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Liveness probe
		r.Get("/health", s.healthChecker.Handler())

		// Jenkins trigger
		triggerHandler := handlers.NewTriggerHandler(s.runner, s.logger)
		r.Post("/jenkins/trigger", triggerHandler.Trigger)

		// Build log routes
		buildLogHandler := handlers.NewBuildLogHandler(s.store, s.logger)
		r.Route("/build-logs", func(r chi.Router) {
			r.Post("/", buildLogHandler.Create)
			r.Get("/", buildLogHandler.List)
			r.Delete("/", buildLogHandler.Clear)
			r.Route("/{buildID}", func(r chi.Router) {
				r.Get("/", buildLogHandler.Get)
				r.Put("/", buildLogHandler.Update)
				r.Delete("/", buildLogHandler.Delete)
			})
		})

		// Generated code routes
		codeHandler := handlers.NewGeneratedCodeHandler(s.store, s.logger)
		r.Route("/generated-code", func(r chi.Router) {
			r.Post("/", codeHandler.Create)
			r.Get("/", codeHandler.List)
			r.Delete("/", codeHandler.Clear)
			r.Route("/{codeID}", func(r chi.Router) {
				r.Get("/", codeHandler.Get)
				r.Delete("/", codeHandler.Delete)
			})
		})

		// Statistics
		statsHandler := handlers.NewStatsHandler(s.store, s.logger)
		r.Get("/stats", statsHandler.Get)
	})

	s.router = r
}

// Start starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)
	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Router returns the chi router for testing purposes.
func (s *Server) Router() chi.Router {
	return s.router
}
