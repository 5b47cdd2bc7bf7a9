// Package v0 contains API handlers for version 0 of the API
package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpbuilder/mcp-builder/internal/config"
	"github.com/mcpbuilder/mcp-builder/internal/telemetry"
)

// ServiceName is reported by the health endpoint
const ServiceName = "mcp-builder-api"

type HealthBody struct {
	Status  string `json:"status" example:"healthy" doc:"Health status"`
	Service string `json:"service" example:"mcp-builder-api" doc:"Service name"`
	Version string `json:"version,omitempty" doc:"Build version"`
}

// RegisterHealthEndpoint registers the health check endpoint. metrics may be nil.
func RegisterHealthEndpoint(api huma.API, cfg *config.Config, metrics *telemetry.Metrics) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/v0/health",
		Summary:     "Get health status",
		Description: "Get the health status of the API",
		Tags:        []string{"health"},
	}, func(ctx context.Context, _ *struct{}) (*Response[HealthBody], error) {
		if metrics != nil {
			metrics.Up.Record(ctx, 1)
		}
		return &Response[HealthBody]{
			Body: HealthBody{
				Status:  "healthy",
				Service: ServiceName,
				Version: cfg.Version,
			},
		}, nil
	})
}
