// This file tracks a live snapshot of feed health. Sessions write it,
// the admin API reads it.

package feed

import (
	"sync/atomic"
	"time"
)

// Status is the shared feed snapshot. All fields are atomics; setters
// tolerate a nil receiver so sessions can run without one.
type Status struct {
	connected     atomic.Bool
	sessions      atomic.Uint64
	events        atomic.Uint64
	popularity    atomic.Uint32
	lastEventUnix atomic.Int64
	startedUnix   atomic.Int64
}

// NewStatus returns a status snapshot anchored at now.
func NewStatus() *Status {
	s := &Status{}
	s.startedUnix.Store(time.Now().Unix())
	return s
}

// Snapshot is a point-in-time copy of the feed status for the admin
// API.
type Snapshot struct {
	Connected     bool   `json:"connected"`
	Sessions      uint64 `json:"sessions"`
	Events        uint64 `json:"events"`
	Popularity    uint32 `json:"popularity"`
	LastEventUnix int64  `json:"last_event_unix,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Snapshot returns the current values.
func (s *Status) Snapshot() Snapshot {
	return Snapshot{
		Connected:     s.connected.Load(),
		Sessions:      s.sessions.Load(),
		Events:        s.events.Load(),
		Popularity:    s.popularity.Load(),
		LastEventUnix: s.lastEventUnix.Load(),
		UptimeSeconds: time.Now().Unix() - s.startedUnix.Load(),
	}
}

// setConnected records whether a session currently holds the socket.
func (s *Status) setConnected(v bool) {
	if s == nil {
		return
	}
	s.connected.Store(v)
}

// addSession counts a session that completed the handshake.
func (s *Status) addSession() {
	if s == nil {
		return
	}
	s.sessions.Add(1)
}

// addEvent counts a delivered event and stamps its arrival.
func (s *Status) addEvent(now time.Time) {
	if s == nil {
		return
	}
	s.events.Add(1)
	s.lastEventUnix.Store(now.Unix())
}

// setPopularity records the latest heartbeat ack value.
func (s *Status) setPopularity(v uint32) {
	if s == nil {
		return
	}
	s.popularity.Store(v)
}
