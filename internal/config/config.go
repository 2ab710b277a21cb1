// This file defines the configuration structure for danwatch.
// It uses strict YAML decoding and explicit defaults.

package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete watcher configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Room   RoomConfig   `yaml:"room"`
	Feed   FeedConfig   `yaml:"feed,omitempty"`
	API    APIConfig    `yaml:"api,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	Render RenderConfig `yaml:"render,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
}

// RoomConfig selects the room to watch and the viewer identity.
type RoomConfig struct {
	ID       uint64 `yaml:"id"`                 // Room number, short numbers allowed
	UID      uint64 `yaml:"uid,omitempty"`      // Viewer uid, 0 for anonymous
	SessData string `yaml:"sessdata,omitempty"` // SESSDATA session cookie
}

// FeedConfig tunes the socket session cadence.
type FeedConfig struct {
	PollIntervalMS     int `yaml:"poll_interval_ms"`     // Receive poll cadence
	HeartbeatIntervalS int `yaml:"heartbeat_interval_s"` // Keepalive cadence
	ReconnectDelayS    int `yaml:"reconnect_delay_s"`    // Pause between reconnect attempts
}

// PollInterval returns the poll cadence as a duration.
func (f FeedConfig) PollInterval() time.Duration {
	return time.Duration(f.PollIntervalMS) * time.Millisecond
}

// HeartbeatInterval returns the keepalive cadence as a duration.
func (f FeedConfig) HeartbeatInterval() time.Duration {
	return time.Duration(f.HeartbeatIntervalS) * time.Second
}

// ReconnectDelay returns the reconnect pause as a duration.
func (f FeedConfig) ReconnectDelay() time.Duration {
	return time.Duration(f.ReconnectDelayS) * time.Second
}

// APIConfig points at the Bilibili HTTP API.
type APIConfig struct {
	BaseURL  string `yaml:"base_url,omitempty"` // Empty selects production
	TimeoutS int    `yaml:"timeout_s"`          // Per-request timeout
}

// Timeout returns the API request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutS) * time.Second
}

// ServerConfig defines the local admin HTTP server settings.
type ServerConfig struct {
	AdminPort int `yaml:"admin_port,omitempty"` // 0 disables the admin server
}

// RenderConfig controls terminal output.
type RenderConfig struct {
	NoColor bool `yaml:"no_color,omitempty"` // Disable ANSI colors
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Load reads configuration from a YAML file.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// Default returns a configuration with every default applied, for runs
// driven entirely by command line flags.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Feed.PollIntervalMS == 0 {
		c.Feed.PollIntervalMS = 200
	}
	if c.Feed.HeartbeatIntervalS == 0 {
		c.Feed.HeartbeatIntervalS = 20
	}
	if c.Feed.ReconnectDelayS == 0 {
		c.Feed.ReconnectDelayS = 5
	}
	if c.API.TimeoutS == 0 {
		c.API.TimeoutS = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
