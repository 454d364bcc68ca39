// Package server exposes the simulator over HTTP as a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/jar0582/schedsim/internal/config"
	"github.com/jar0582/schedsim/internal/engine"
	"github.com/jar0582/schedsim/internal/policy"
)

const maxBodyBytes = 1 << 20

// Server is the schedsim HTTP API.
type Server struct {
	router    chi.Router
	logger    logrus.FieldLogger
	config    config.ServerConfig
	startTime time.Time
	engine    *engine.Engine
	registry  *policy.Registry
}

// New creates a Server with all routes registered. A non-positive
// MaxTicks falls back to config.DefaultMaxTicks.
func New(cfg config.ServerConfig, eng *engine.Engine, reg *policy.Registry, logger logrus.FieldLogger) *Server {
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = config.DefaultMaxTicks
	}
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.WithField("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		engine:    eng,
		registry:  reg,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/policies", s.handleListPolicies)
		r.Post("/simulate", s.handleSimulate)
	})
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.config.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
