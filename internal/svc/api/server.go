// This file provides the admin HTTP API service.
// The API exposes watcher state without touching the feed path.

package api

import (
	"time"

	"github.com/go-chi/chi/v5"

	"danwatch/internal/svc/feed"
)

// StatusSource supplies a point-in-time view of the feed.
// This allows the API to read session state without tight coupling.
type StatusSource interface {
	Snapshot() feed.Snapshot
}

// Service provides HTTP API functionality.
type Service struct {
	status    StatusSource
	version   string
	room      uint64
	startTime int64
}

// NewService creates a new API service reporting on the given room.
func NewService(status StatusSource, version string, room uint64) *Service {
	return &Service{
		status:    status,
		version:   version,
		room:      room,
		startTime: getCurrentTime(),
	}
}

// RegisterRoutes registers API routes on the provided router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/api/server", s.handleServer)
	r.Get("/api/feed", s.handleFeed)
}

// getCurrentTime returns current Unix timestamp.
// Extracted for testability.
func getCurrentTime() int64 {
	return time.Now().Unix()
}
