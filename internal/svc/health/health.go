// This file implements the health check endpoint for monitoring and
// integration tests.

package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Service provides health check functionality.
type Service struct{}

// New creates a new health service instance.
func New() *Service {
	return &Service{}
}

// RegisterRoutes adds health check routes to the provided router.
// Currently registers /healthz which returns 200 OK.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
}

// handleHealth responds to health check requests.
// Returns 200 OK to indicate the watcher is running.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
