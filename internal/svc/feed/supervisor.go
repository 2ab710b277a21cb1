// This file keeps the feed alive: dial, run a session, start over
// after every end, forever, with a fixed pause between attempts.

package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"danwatch/internal/metrics"
)

// DefaultReconnectDelay spaces connection attempts.
const DefaultReconnectDelay = 5 * time.Second

// SupervisorConfig carries the supervisor and per-session settings.
type SupervisorConfig struct {
	URL            string
	ReconnectDelay time.Duration // 0 means DefaultReconnectDelay

	Session SessionConfig

	// Dial overrides the websocket dialer in tests.
	Dial func(ctx context.Context, url string) (Transport, error)
}

// Supervisor restarts feed sessions forever. Every end, clean or
// faulted, leads to a fresh dial after the same fixed delay. There is
// no attempt cap and no backoff growth; the watcher is meant to
// outlive any outage.
type Supervisor struct {
	cfg     SupervisorConfig
	dial    func(ctx context.Context, url string) (Transport, error)
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewSupervisor builds a supervisor. The session metrics and logger
// are defaulted here so all attempts share them.
func NewSupervisor(cfg SupervisorConfig) *Supervisor {
	if cfg.ReconnectDelay == 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.Session.Metrics == nil {
		cfg.Session.Metrics = metrics.New(prometheus.NewRegistry())
	}
	if cfg.Session.Logger == nil {
		cfg.Session.Logger = slog.Default()
	}
	dial := cfg.Dial
	if dial == nil {
		dial = Dial
	}
	return &Supervisor{
		cfg:  cfg,
		dial: dial,
		// burst 1 makes the first attempt immediate and every retry
		// wait the fixed delay
		limiter: rate.NewLimiter(rate.Every(cfg.ReconnectDelay), 1),
		log:     cfg.Session.Logger.With("component", "supervisor", "room_id", cfg.Session.RoomID),
	}
}

// Run supervises sessions until ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		transport, err := s.dial(ctx, s.cfg.URL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.cfg.Session.Metrics.DialErrors.Inc()
			s.log.Warn("dial failed", "url", s.cfg.URL, "error", err)
			continue
		}

		session := NewSession(transport, s.cfg.Session)
		if err := session.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn("session faulted, reconnecting", "error", err)
			continue
		}
		s.log.Info("session ended, reconnecting")
	}
}
