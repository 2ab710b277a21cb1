// This file runs one feed session: the room certificate, heartbeats,
// polling and in-order event delivery over a transport it owns.

package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"danwatch/internal/core/event"
	"danwatch/internal/core/protocol/packet"
	"danwatch/internal/metrics"
)

// Session defaults, matching the platform web client.
const (
	DefaultHeartbeatInterval = 20 * time.Second
	DefaultPollInterval      = 200 * time.Millisecond
)

// SessionState tracks where a session is in its lifecycle.
type SessionState int

const (
	StateConnecting SessionState = iota
	StateActive
	StateEnded
)

// SessionConfig carries everything one session run needs.
type SessionConfig struct {
	RoomID uint64
	UID    uint64
	Token  string

	HeartbeatInterval time.Duration // 0 means DefaultHeartbeatInterval
	PollInterval      time.Duration // 0 means DefaultPollInterval

	// Handler receives every decoded event synchronously, in wire
	// order. It must not retain the event's pointer fields.
	Handler func(event.Event)

	Status  *Status
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// Clock overrides time.Now for heartbeat scheduling in tests.
	Clock func() time.Time
}

// Session drives one connection to the room feed. Sessions share no
// state with each other; a reconnect always builds a new one.
type Session struct {
	cfg       SessionConfig
	transport Transport
	log       *slog.Logger
	state     SessionState

	now           func() time.Time
	lastHeartbeat time.Time
}

// NewSession wires a session around an established transport.
func NewSession(transport Transport, cfg SessionConfig) *Session {
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New(prometheus.NewRegistry())
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Session{
		cfg:       cfg,
		transport: transport,
		log:       cfg.Logger.With("session_id", uuid.NewString(), "room_id", cfg.RoomID),
		state:     StateConnecting,
		now:       cfg.Clock,
	}
}

// State returns the lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Run joins the room and keeps the session alive until the connection
// ends. A clean end returns nil; a faulted one returns its cause.
func (s *Session) Run(ctx context.Context) error {
	defer func() {
		s.state = StateEnded
		s.transport.Close()
		s.cfg.Status.setConnected(false)
	}()

	cert, err := packet.CreateCertificate(s.cfg.UID, s.cfg.RoomID, s.cfg.Token)
	if err != nil {
		return err
	}
	if err := s.transport.Send(cert); err != nil {
		return fmt.Errorf("send certificate: %w", err)
	}
	s.state = StateActive
	s.lastHeartbeat = s.now()
	s.cfg.Status.setConnected(true)
	s.cfg.Status.addSession()
	s.cfg.Metrics.Sessions.Inc()
	s.log.Info("joined room feed")

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.pollStep() {
				s.log.Info("session ended")
				return nil
			}
		}
	}
}

// pollStep runs one poll tick: a heartbeat when one is due, then a
// burst of receives until the socket has nothing ready. It returns
// true when the connection is finished.
func (s *Session) pollStep() bool {
	s.heartbeatIfDue()
	for {
		data, err := s.transport.Receive()
		switch {
		case err == nil:
		case errors.Is(err, ErrWouldBlock):
			return false
		case errors.Is(err, ErrNoData):
			s.log.Info("feed has no more data")
			return true
		case errors.Is(err, ErrClosed):
			s.log.Info("server closed the connection")
			return true
		default:
			// Transient receive trouble ends the burst, not the
			// session.
			s.log.Warn("receive failed", "error", err)
			return false
		}
		s.handleFrame(data)
	}
}

// heartbeatIfDue sends a keepalive once the interval has passed since
// the last successful send. A failed send is retried next tick and
// does not advance the timer.
func (s *Session) heartbeatIfDue() {
	if s.now().Sub(s.lastHeartbeat) < s.cfg.HeartbeatInterval {
		return
	}
	if err := s.transport.Send(packet.CreateHeartbeat()); err != nil {
		s.log.Warn("heartbeat send failed", "error", err)
		return
	}
	s.lastHeartbeat = s.now()
	s.cfg.Metrics.Heartbeats.Inc()
	s.log.Debug("heartbeat sent")
}

// handleFrame decodes one socket message and delivers its events. All
// decode failures are local: the frame is dropped and the session
// keeps running.
func (s *Session) handleFrame(data []byte) {
	s.cfg.Metrics.Frames.Inc()
	h, body, err := packet.ParseExact(data)
	if err != nil {
		s.dropFrame("frame", err)
		return
	}
	entries, err := packet.Decompose(h, body)
	if err != nil {
		reason := "frame"
		if errors.Is(err, packet.ErrDecompress) {
			reason = "decompress"
		}
		s.dropFrame(reason, err)
		return
	}
	out, err := packet.Dispatch(h, entries)
	if err != nil {
		var unsupported *packet.UnsupportedOperationError
		if errors.As(err, &unsupported) {
			s.dropFrame("unsupported_op", err)
		} else {
			s.dropFrame("payload", err)
		}
		return
	}
	if out.Malformed > 0 {
		s.cfg.Metrics.FrameErrors.WithLabelValues("payload").Add(float64(out.Malformed))
		s.log.Debug("dropped malformed message entries", "count", out.Malformed)
	}

	switch out.Kind {
	case packet.OutcomeCertificateAccepted:
		s.log.Debug("certificate accepted")
	case packet.OutcomeHeartbeatAccepted:
		s.cfg.Status.setPopularity(out.Popularity)
		s.cfg.Metrics.Popularity.Set(float64(out.Popularity))
		s.log.Debug("heartbeat acknowledged", "popularity", out.Popularity)
	case packet.OutcomeMessages:
		for _, env := range out.Envelopes {
			s.deliver(env)
		}
	}
}

// deliver decodes one envelope and hands the event to the consumer.
func (s *Session) deliver(env packet.Envelope) {
	ev, err := event.Decode(env.Cmd, env.Payload)
	if err != nil {
		var notSupported *event.NotSupportedError
		if errors.As(err, &notSupported) {
			s.cfg.Metrics.EventsDropped.WithLabelValues("not_supported").Inc()
			s.log.Debug("skipping command", "cmd", env.Cmd)
		} else {
			s.cfg.Metrics.EventsDropped.WithLabelValues("deserialize").Inc()
			s.log.Debug("dropping malformed message", "cmd", env.Cmd, "error", err)
		}
		return
	}
	s.cfg.Metrics.Events.WithLabelValues(ev.Name()).Inc()
	s.cfg.Status.addEvent(s.now())
	if s.cfg.Handler != nil {
		s.cfg.Handler(ev)
	}
}

// dropFrame logs and counts a frame that could not be decoded.
func (s *Session) dropFrame(reason string, err error) {
	s.cfg.Metrics.FrameErrors.WithLabelValues(reason).Inc()
	s.log.Debug("dropped frame", "reason", reason, "error", err)
}
