package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpbuilder/mcp-builder/internal/config"
)

type PingBody struct {
	Pong    bool   `json:"pong" example:"true"`
	Version string `json:"version" example:"dev"`
}

// RegisterPingEndpoint registers the ping endpoint that reports the build version
func RegisterPingEndpoint(api huma.API, cfg *config.Config) {
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/v0/ping",
		Summary:     "Ping",
		Description: "Simple ping endpoint",
		Tags:        []string{"health"},
	}, func(_ context.Context, _ *struct{}) (*Response[PingBody], error) {
		return &Response[PingBody]{Body: PingBody{Pong: true, Version: cfg.Version}}, nil
	})
}
