// Package server exposes the bridge over HTTP for long-running
// deployments: the same envelope that complete mode reads from stdin is
// accepted as a POST body instead.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mwalther/chatshim/pkg/bridge"
	"github.com/mwalther/chatshim/pkg/config"
	"github.com/mwalther/chatshim/pkg/observability"
)

// Server wraps an http.Server around the bridge and manages the full
// lifecycle including startup and graceful shutdown.
type Server struct {
	httpServer *http.Server
	bridge     *bridge.Bridge
	logger     *slog.Logger
	addr       string

	shutdownTimeout time.Duration
}

// New creates a Server wired to the given bridge and configuration.
func New(b *bridge.Bridge, cfg *config.Config) *Server {
	s := &Server{
		bridge:          b,
		logger:          slog.Default(),
		addr:            ":" + strconv.Itoa(cfg.Server.Port),
		shutdownTimeout: 10 * time.Second,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/bridge", s.handleBridge)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if cfg.Observability.Metrics.Enabled {
		path := cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, promhttp.Handler())
	}

	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      observability.MetricsMiddleware(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// Handler returns the server's root handler. Used for testing.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the server and blocks until a shutdown signal
// (SIGINT or SIGTERM) is received. It then gracefully shuts down,
// waiting for in-flight requests to complete within the shutdown timeout.
func (s *Server) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", s.addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// Shutdown gracefully shuts down the server with the given context.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
