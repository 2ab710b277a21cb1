// This file defines the Prometheus instrumentation for the feed. All
// metrics live under the danwatch namespace and are registered on an
// injected registerer so tests can use a private registry.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric this process exports.
const Namespace = "danwatch"

// Metrics bundles the feed counters and gauges.
type Metrics struct {
	// Frames counts inbound socket messages before any decoding.
	Frames prometheus.Counter
	// FrameErrors counts dropped frames by reason: frame, decompress,
	// payload or unsupported_op.
	FrameErrors *prometheus.CounterVec
	// Events counts delivered events by kind.
	Events *prometheus.CounterVec
	// EventsDropped counts messages that decoded to nothing, by
	// reason: not_supported or deserialize.
	EventsDropped *prometheus.CounterVec
	// Heartbeats counts keepalives actually written to the socket.
	Heartbeats prometheus.Counter
	// Popularity mirrors the room popularity from the last ack.
	Popularity prometheus.Gauge
	// Sessions counts sessions that reached the active state.
	Sessions prometheus.Counter
	// DialErrors counts failed connection attempts.
	DialErrors prometheus.Counter
}

// New registers the feed metrics with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Frames: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "feed",
			Name:      "frames_total",
			Help:      "Inbound frames read from the room socket.",
		}),
		FrameErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "feed",
			Name:      "frame_errors_total",
			Help:      "Frames dropped before event decoding, by reason.",
		}, []string{"reason"}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "feed",
			Name:      "events_total",
			Help:      "Room events delivered to the consumer, by kind.",
		}, []string{"type"}),
		EventsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "feed",
			Name:      "events_dropped_total",
			Help:      "Room messages that produced no event, by reason.",
		}, []string{"reason"}),
		Heartbeats: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "feed",
			Name:      "heartbeats_sent_total",
			Help:      "Keepalive packets written to the socket.",
		}),
		Popularity: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "feed",
			Name:      "popularity",
			Help:      "Room popularity reported by the last heartbeat ack.",
		}),
		Sessions: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "feed",
			Name:      "sessions_total",
			Help:      "Sessions that completed the room handshake.",
		}),
		DialErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "feed",
			Name:      "dial_errors_total",
			Help:      "Connection attempts that failed before handshake.",
		}),
	}
}
