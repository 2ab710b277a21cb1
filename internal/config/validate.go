// This file validates configuration values and returns descriptive errors.

package config

import (
	"fmt"
)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Room.Validate(); err != nil {
		return fmt.Errorf("room config: %w", err)
	}
	if err := c.Feed.Validate(); err != nil {
		return fmt.Errorf("feed config: %w", err)
	}
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api config: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

// Validate checks room selection values.
func (r *RoomConfig) Validate() error {
	if r.ID == 0 {
		return fmt.Errorf("id is required and must be a positive room number")
	}
	return nil
}

// Validate checks feed cadence values.
func (f *FeedConfig) Validate() error {
	if f.PollIntervalMS <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", f.PollIntervalMS)
	}
	if f.HeartbeatIntervalS <= 0 {
		return fmt.Errorf("heartbeat_interval_s must be positive, got %d", f.HeartbeatIntervalS)
	}
	if f.ReconnectDelayS <= 0 {
		return fmt.Errorf("reconnect_delay_s must be positive, got %d", f.ReconnectDelayS)
	}
	return nil
}

// Validate checks API client values.
func (a *APIConfig) Validate() error {
	if a.TimeoutS <= 0 {
		return fmt.Errorf("timeout_s must be positive, got %d", a.TimeoutS)
	}
	return nil
}

// Validate checks admin server values.
func (s *ServerConfig) Validate() error {
	if s.AdminPort < 0 || s.AdminPort > 65535 {
		return fmt.Errorf("admin_port must be between 0 and 65535, got %d", s.AdminPort)
	}
	return nil
}

// Validate checks logging values.
func (l *LogConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error, got %q", l.Level)
	}
}
