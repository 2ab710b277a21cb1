// This file handles graceful shutdown orchestration for the watcher
// process.

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long a graceful stop may take.
const shutdownTimeout = 5 * time.Second

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
// The stop function releases the signal registration.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// ShutdownWithTimeout stops the server, giving in-flight requests a
// bounded grace period.
func (s *Server) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
