// This file implements the admin HTTP server lifecycle and routing.

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"danwatch/internal/config"
	"danwatch/internal/svc/api"
	"danwatch/internal/svc/health"
)

// Server wraps the admin HTTP server and its routes.
type Server struct {
	httpServer *http.Server
}

// New creates an admin server exposing health, metrics and the watcher
// API. The server is not started until Start is called.
func New(cfg *config.Config, svc *api.Service, gatherer prometheus.Gatherer) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	health.New().RegisterRoutes(r)
	svc.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.AdminPort),
		Handler: r,
	}

	return &Server{httpServer: httpServer}
}

// Start begins serving HTTP requests.
// This method blocks until the server is stopped or encounters an error.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server with a timeout.
// Returns an error if shutdown fails or times out.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
