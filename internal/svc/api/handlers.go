// This file implements the admin HTTP API handlers.
// All handlers are fast, read-only, and never block the feed path.

package api

import (
	"encoding/json"
	"net/http"
	"runtime"
)

// ServerResponse represents the /api/server response.
type ServerResponse struct {
	Version   string `json:"version"`
	Uptime    int64  `json:"uptime"` // seconds
	GoVersion string `json:"go_version"`
	Room      uint64 `json:"room"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleServer handles GET /api/server.
// Returns watcher version, uptime and the room being watched.
func (s *Service) handleServer(w http.ResponseWriter, r *http.Request) {
	response := ServerResponse{
		Version:   s.version,
		Uptime:    getCurrentTime() - s.startTime,
		GoVersion: runtime.Version(),
		Room:      s.room,
	}
	s.writeJSON(w, http.StatusOK, response)
}

// handleFeed handles GET /api/feed.
// Returns a point-in-time snapshot of the feed session state.
func (s *Service) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.status == nil {
		s.writeError(w, http.StatusServiceUnavailable, "feed not running")
		return
	}
	s.writeJSON(w, http.StatusOK, s.status.Snapshot())
}

// writeJSON writes a JSON response.
func (s *Service) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
