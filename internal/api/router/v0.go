package router

import (
	"github.com/danielgtaylor/huma/v2"

	v0 "github.com/mcpbuilder/mcp-builder/internal/api/handlers/v0"
	"github.com/mcpbuilder/mcp-builder/internal/config"
	"github.com/mcpbuilder/mcp-builder/internal/telemetry"
)

// RegisterV0Routes registers every v0 endpoint on api
func RegisterV0Routes(api huma.API, cfg *config.Config, services Services, metrics *telemetry.Metrics) {
	v0.RegisterHealthEndpoint(api, cfg, metrics)
	v0.RegisterPingEndpoint(api, cfg)
	v0.RegisterIntegrationsEndpoints(api, services.Integrations)
	v0.RegisterSessionsEndpoints(api, services.Sessions, services.Integrations, services.Drafts)
	v0.RegisterDraftsEndpoints(api, services.Drafts)
	v0.RegisterMappingsEndpoints(api)
	v0.RegisterGuidesEndpoints(api)
}
