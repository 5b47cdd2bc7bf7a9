// Package router contains API routing logic
package router

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	v0 "github.com/mcpbuilder/mcp-builder/internal/api/handlers/v0"
	"github.com/mcpbuilder/mcp-builder/internal/config"
	"github.com/mcpbuilder/mcp-builder/internal/persistence"
	"github.com/mcpbuilder/mcp-builder/internal/proxy"
	"github.com/mcpbuilder/mcp-builder/internal/service"
	"github.com/mcpbuilder/mcp-builder/internal/store"
	"github.com/mcpbuilder/mcp-builder/internal/telemetry"
)

// Services are the components the HTTP API exposes
type Services struct {
	Integrations service.IntegrationService
	Sessions     *store.Sessions
	Drafts       *persistence.LocalStore
	// Proxy is optional; the proxy route is not mounted when nil
	Proxy  *proxy.Handler
	Logger *zap.Logger
}

// MiddlewareOption configures the metrics middleware
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	skipPaths []string
}

// WithSkipPaths excludes request paths from metrics
func WithSkipPaths(paths ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// NewHumaAPI creates the huma API on mux and registers every route
//
//nolint:ireturn
func NewHumaAPI(cfg *config.Config, services Services, mux *http.ServeMux, metrics *telemetry.Metrics) huma.API {
	logger := services.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	humaConfig := huma.DefaultConfig("MCP Builder API", cfg.Version)
	humaConfig.Info.Description = "API for composing MCP integrations: integrations, builder sessions and local drafts"

	api := humago.New(mux, humaConfig)

	api.UseMiddleware(LoggingMiddleware(logger))
	if metrics != nil {
		api.UseMiddleware(MetricTelemetryMiddleware(metrics,
			WithSkipPaths("/v0/health", "/v0/ping", "/metrics", "/docs"),
		))
		mux.Handle("/metrics", metrics.PrometheusHandler())
	}

	RegisterV0Routes(api, cfg, services, metrics)

	mux.Handle(v0.SwaggerPath, v0.SwaggerHandler(humaConfig.OpenAPIPath+".json"))
	if services.Proxy != nil {
		mux.Handle(proxy.Prefix+"/", services.Proxy)
	}

	return api
}

// MetricTelemetryMiddleware records request count, duration and errors per operation path
func MetricTelemetryMiddleware(metrics *telemetry.Metrics, opts ...MiddlewareOption) func(huma.Context, func(huma.Context)) {
	var cfg middlewareConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		if slices.Contains(cfg.skipPaths, ctx.URL().Path) {
			next(ctx)
			return
		}

		start := time.Now()
		next(ctx)

		path := ctx.URL().Path
		if op := ctx.Operation(); op != nil {
			path = op.Path
		}
		attrs := metric.WithAttributes(
			attribute.String("method", ctx.Method()),
			attribute.String("path", path),
			attribute.String("status_code", strconv.Itoa(ctx.Status())),
		)

		metrics.Requests.Add(ctx.Context(), 1, attrs)
		metrics.RequestDuration.Record(ctx.Context(), time.Since(start).Seconds(), attrs)
		if ctx.Status() >= http.StatusBadRequest {
			metrics.ErrorCount.Add(ctx.Context(), 1, attrs)
		}
	}
}

// LoggingMiddleware logs every request once it has been answered
func LoggingMiddleware(logger *zap.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)

		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.URL().Path),
			zap.Int("status", ctx.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if ctx.Status() >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
			return
		}
		logger.Debug("request handled", fields...)
	}
}
