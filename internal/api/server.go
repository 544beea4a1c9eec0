package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonesrussell/gorecipe/internal/config"
	"github.com/jonesrussell/gorecipe/internal/logger"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer *http.Server
	log        logger.Interface
}

// NewServer creates a server for the given router and config.
func NewServer(cfg *config.Config, log logger.Interface, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		log: log,
	}
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info("starting http server", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully, waiting for in-flight requests
// until the context is done.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("stopping http server")
	return s.httpServer.Shutdown(ctx)
}
