package v0

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpbuilder/mcp-builder/internal/database"
	"github.com/mcpbuilder/mcp-builder/internal/service"
	"github.com/mcpbuilder/mcp-builder/internal/validators"
	apiv0 "github.com/mcpbuilder/mcp-builder/pkg/api/v0"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// ListIntegrationsInput represents the input for listing integrations
type ListIntegrationsInput struct {
	Cursor    string `query:"cursor" doc:"Pagination cursor (id of the last integration on the previous page)" required:"false"`
	Limit     int    `query:"limit" doc:"Number of items per page" default:"30" minimum:"1" maximum:"100"`
	Published string `query:"published" doc:"Only return published (true) or unpublished (false) integrations" required:"false"`
	Search    string `query:"search" doc:"Case-insensitive match on name or description" required:"false"`
}

// IntegrationIDInput identifies one integration
type IntegrationIDInput struct {
	ID string `path:"id" doc:"Integration ID"`
}

// CreateIntegrationInput carries the fields to set on top of the defaults
type CreateIntegrationInput struct {
	Body model.IntegrationPatch `required:"false"`
}

// UpdateIntegrationInput carries the fields to overwrite
type UpdateIntegrationInput struct {
	ID   string `path:"id" doc:"Integration ID"`
	Body model.IntegrationPatch
}

// ExecuteBody is the query to run against an integration
type ExecuteBody struct {
	Query string `json:"query" minLength:"1" doc:"Natural language query"`
}

// ExecuteIntegrationInput represents an execution request
type ExecuteIntegrationInput struct {
	ID   string `path:"id" doc:"Integration ID"`
	Body ExecuteBody
}

// RegisterIntegrationsEndpoints registers the integration repository endpoints
func RegisterIntegrationsEndpoints(api huma.API, integrations service.IntegrationService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-integrations",
		Method:      http.MethodGet,
		Path:        "/v0/integrations",
		Summary:     "List integrations",
		Description: "Get a paginated list of integrations",
		Tags:        []string{"integrations"},
	}, func(ctx context.Context, input *ListIntegrationsInput) (*Response[apiv0.IntegrationListResponse], error) {
		filter := &database.IntegrationFilter{Search: input.Search}
		if input.Published != "" {
			published, err := strconv.ParseBool(input.Published)
			if err != nil {
				return nil, huma.Error400BadRequest("Invalid published parameter")
			}
			filter.Published = &published
		}

		items, nextCursor, err := integrations.List(ctx, filter, input.Cursor, input.Limit)
		if err != nil {
			return nil, httpError(err, "Integration", "list integrations")
		}

		body := apiv0.IntegrationListResponse{Integrations: items}
		if nextCursor != "" {
			body.Metadata = &apiv0.Metadata{
				NextCursor: nextCursor,
				Count:      len(items),
			}
		}
		return &Response[apiv0.IntegrationListResponse]{Body: body}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-usage-stats",
		Method:      http.MethodGet,
		Path:        "/v0/integrations/stats",
		Summary:     "Get usage statistics",
		Tags:        []string{"integrations"},
	}, func(ctx context.Context, _ *struct{}) (*Response[apiv0.UsageStats], error) {
		stats, err := integrations.UsageStats(ctx)
		if err != nil {
			return nil, httpError(err, "Statistics", "get usage statistics")
		}
		return &Response[apiv0.UsageStats]{Body: *stats}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-integration",
		Method:      http.MethodGet,
		Path:        "/v0/integrations/{id}",
		Summary:     "Get integration",
		Tags:        []string{"integrations"},
	}, func(ctx context.Context, input *IntegrationIDInput) (*Response[model.Integration], error) {
		integration, err := integrations.GetByID(ctx, input.ID)
		if err != nil {
			return nil, httpError(err, "Integration", "get integration")
		}
		return &Response[model.Integration]{Body: *integration}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-integration",
		Method:        http.MethodPost,
		Path:          "/v0/integrations",
		Summary:       "Create integration",
		Description:   "Create an integration from the defaults with the given fields on top",
		Tags:          []string{"integrations"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateIntegrationInput) (*Response[model.Integration], error) {
		created, err := integrations.Create(ctx, input.Body)
		if err != nil {
			return nil, httpError(err, "Integration", "create integration")
		}
		return &Response[model.Integration]{Body: *created}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-integration",
		Method:      http.MethodPatch,
		Path:        "/v0/integrations/{id}",
		Summary:     "Update integration",
		Description: "Overwrite the given top-level fields and refresh the update timestamp",
		Tags:        []string{"integrations"},
	}, func(ctx context.Context, input *UpdateIntegrationInput) (*Response[model.Integration], error) {
		updated, err := integrations.Update(ctx, input.ID, input.Body)
		if err != nil {
			return nil, httpError(err, "Integration", "update integration")
		}
		return &Response[model.Integration]{Body: *updated}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-integration",
		Method:        http.MethodDelete,
		Path:          "/v0/integrations/{id}",
		Summary:       "Delete integration",
		Tags:          []string{"integrations"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IntegrationIDInput) (*NoContent, error) {
		if err := integrations.Delete(ctx, input.ID); err != nil {
			return nil, httpError(err, "Integration", "delete integration")
		}
		return &NoContent{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "publish-integration",
		Method:      http.MethodPost,
		Path:        "/v0/integrations/{id}/publish",
		Summary:     "Publish integration",
		Description: "Validate an integration and mark it published",
		Tags:        []string{"integrations"},
	}, func(ctx context.Context, input *IntegrationIDInput) (*Response[model.Integration], error) {
		published, err := integrations.Publish(ctx, input.ID)
		if err != nil {
			return nil, httpError(err, "Integration", "publish integration")
		}
		return &Response[model.Integration]{Body: *published}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "fork-integration",
		Method:        http.MethodPost,
		Path:          "/v0/integrations/{id}/fork",
		Summary:       "Fork integration",
		Description:   "Copy an integration under a new id",
		Tags:          []string{"integrations"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *IntegrationIDInput) (*Response[model.Integration], error) {
		forked, err := integrations.Fork(ctx, input.ID)
		if err != nil {
			return nil, httpError(err, "Integration", "fork integration")
		}
		return &Response[model.Integration]{Body: *forked}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "execute-integration",
		Method:      http.MethodPost,
		Path:        "/v0/integrations/{id}/execute",
		Summary:     "Execute integration",
		Description: "Run a query against an integration and return the execution trace",
		Tags:        []string{"integrations"},
	}, func(ctx context.Context, input *ExecuteIntegrationInput) (*Response[apiv0.ExecutionResult], error) {
		result, err := integrations.Execute(ctx, input.ID, input.Body.Query)
		if err != nil {
			return nil, httpError(err, "Integration", "execute integration")
		}
		return &Response[apiv0.ExecutionResult]{Body: *result}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-integration",
		Method:      http.MethodPost,
		Path:        "/v0/integrations/{id}/validate",
		Summary:     "Validate integration",
		Description: "Report every referential-integrity and field problem of a stored integration",
		Tags:        []string{"integrations"},
	}, func(ctx context.Context, input *IntegrationIDInput) (*Response[apiv0.ValidationResult], error) {
		integration, err := integrations.GetByID(ctx, input.ID)
		if err != nil {
			return nil, httpError(err, "Integration", "get integration")
		}
		return &Response[apiv0.ValidationResult]{Body: validationResult(integration)}, nil
	})
}

func validationResult(i *model.Integration) apiv0.ValidationResult {
	err := validators.ValidateIntegration(i)
	return apiv0.ValidationResult{
		Valid:  err == nil,
		Errors: validators.Problems(err),
	}
}
