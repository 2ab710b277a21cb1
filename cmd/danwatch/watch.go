// This file runs the watcher: it resolves the room, opens the feed
// supervisor and serves the optional admin endpoints.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"

	"danwatch/internal/bili"
	"danwatch/internal/config"
	"danwatch/internal/metrics"
	"danwatch/internal/render"
	"danwatch/internal/server"
	"danwatch/internal/svc/api"
	"danwatch/internal/svc/feed"
)

// options collects the command line flags.
type options struct {
	configPath string
	room       uint64
	uid        uint64
	sessData   string
	adminPort  int
	noColor    bool
	logLevel   string
}

// runWatch is the long-running body of the root command. It returns
// nil after a clean signal-driven shutdown.
func runWatch(parent context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Render.NoColor {
		color.NoColor = true
	}
	logger := newLogger(cfg.Log.Level)

	ctx, stop := server.SignalContext(parent)
	defer stop()

	// Resolve the room and fetch feed credentials before opening the
	// socket. Short room numbers map to a different real id.
	client := bili.New(cfg.API.BaseURL, cfg.Room.SessData, cfg.API.Timeout())
	info, err := client.RoomInfo(ctx, cfg.Room.ID)
	if err != nil {
		return fmt.Errorf("resolve room %d: %w", cfg.Room.ID, err)
	}
	auth, err := client.FeedAuth(ctx, info.RoomID)
	if err != nil {
		return fmt.Errorf("fetch feed auth: %w", err)
	}
	logger.Info("room resolved",
		"room_id", info.RoomID, "live", info.LiveStatus == 1, "hosts", len(auth.Hosts))

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	status := feed.NewStatus()
	renderer := render.New(os.Stdout)

	sup := feed.NewSupervisor(feed.SupervisorConfig{
		URL:            auth.Hosts[0].FeedURL(),
		ReconnectDelay: cfg.Feed.ReconnectDelay(),
		Session: feed.SessionConfig{
			RoomID:            info.RoomID,
			UID:               cfg.Room.UID,
			Token:             auth.Token,
			HeartbeatInterval: cfg.Feed.HeartbeatInterval(),
			PollInterval:      cfg.Feed.PollInterval(),
			Handler:           renderer.Handle,
			Status:            status,
			Metrics:           m,
			Logger:            logger,
		},
	})

	if cfg.Server.AdminPort > 0 {
		svc := api.NewService(status, version, info.RoomID)
		adm := server.New(cfg, svc, reg)
		go func() {
			if err := adm.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("admin server failed", "error", err)
			}
		}()
		defer func() {
			if err := adm.ShutdownWithTimeout(); err != nil {
				logger.Error("admin server shutdown failed", "error", err)
			}
		}()
		logger.Info("admin server listening", "port", cfg.Server.AdminPort)
	}

	err = sup.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("watcher stopped")
		return nil
	}
	return err
}

// loadConfig reads the config file when given and applies flag
// overrides on top.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.room != 0 {
		cfg.Room.ID = opts.room
	}
	if opts.uid != 0 {
		cfg.Room.UID = opts.uid
	}
	if opts.sessData != "" {
		cfg.Room.SessData = opts.sessData
	}
	if opts.adminPort != 0 {
		cfg.Server.AdminPort = opts.adminPort
	}
	if opts.noColor {
		cfg.Render.NoColor = true
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, nil
}

// newLogger builds the process logger at the configured level. Logs go
// to stderr so rendered events own stdout.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
