package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/internal/api/router"
	"github.com/mcpbuilder/mcp-builder/internal/config"
	"github.com/mcpbuilder/mcp-builder/internal/telemetry"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	humaAPI huma.API
	server  *http.Server
	logger  *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, services router.Services, metrics *telemetry.Metrics) *Server {
	if services.Logger == nil {
		services.Logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	api := router.NewHumaAPI(cfg, services, mux, metrics)

	return &Server{
		config:  cfg,
		humaAPI: api,
		logger:  services.Logger,
		server: &http.Server{
			Addr:              cfg.ServerAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// API returns the huma API, mainly for OpenAPI generation
//
//nolint:ireturn
func (s *Server) API() huma.API {
	return s.humaAPI
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins listening for incoming HTTP requests. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("address", s.config.ServerAddress))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
