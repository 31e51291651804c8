// Copyright (c) 2026 BudCenter. All rights reserved.

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server] of the ops endpoints.
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups the probe handlers.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 once every dependency is usable.
	Readiness http.HandlerFunc
}

// # Server Initialization

// NewServer constructs the chi router with the middleware chain and the ops routes.
func NewServer(port string, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.OpsRequestTimeout))
	r.Use(middleware.PanicRecovery())
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           r,
			ReadHeaderTimeout: constants.OpsReadHeaderTimeout,
			WriteTimeout:      constants.OpsRequestTimeout + constants.OpsReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server. It blocks until the server is closed.
func (s *Server) ListenAndServe() error {
	s.log.Info("ops_server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
