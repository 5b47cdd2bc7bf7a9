package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpbuilder/mcp-builder/internal/persistence"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// DraftListBody lists the locally persisted integrations
type DraftListBody struct {
	Drafts []model.Integration `json:"drafts" doc:"Drafts in the order they were first saved"`
}

// DraftIDInput identifies one draft
type DraftIDInput struct {
	ID string `path:"id" doc:"Integration ID"`
}

// SaveDraftInput carries the integration to persist
type SaveDraftInput struct {
	Body model.Integration
}

// RegisterDraftsEndpoints registers the local draft storage endpoints
func RegisterDraftsEndpoints(api huma.API, drafts *persistence.LocalStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-drafts",
		Method:      http.MethodGet,
		Path:        "/v0/drafts",
		Summary:     "List drafts",
		Description: "List every locally persisted integration. Unreadable entries are skipped.",
		Tags:        []string{"drafts"},
	}, func(ctx context.Context, _ *struct{}) (*Response[DraftListBody], error) {
		return &Response[DraftListBody]{Body: DraftListBody{Drafts: drafts.LoadAll(ctx)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-draft",
		Method:      http.MethodGet,
		Path:        "/v0/drafts/{id}",
		Summary:     "Get draft",
		Tags:        []string{"drafts"},
	}, func(ctx context.Context, input *DraftIDInput) (*Response[model.Integration], error) {
		draft := drafts.Load(ctx, input.ID)
		if draft == nil {
			return nil, huma.Error404NotFound("Draft not found")
		}
		return &Response[model.Integration]{Body: *draft}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-draft",
		Method:      http.MethodPost,
		Path:        "/v0/drafts",
		Summary:     "Save draft",
		Description: "Persist an integration locally, replacing any draft with the same id",
		Tags:        []string{"drafts"},
	}, func(ctx context.Context, input *SaveDraftInput) (*Response[model.Integration], error) {
		if !drafts.Enabled() {
			return nil, huma.Error503ServiceUnavailable("Draft storage is not configured")
		}
		if !drafts.Save(ctx, &input.Body) {
			return nil, huma.NewError(http.StatusInsufficientStorage, "Failed to save draft")
		}
		return &Response[model.Integration]{Body: input.Body}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-draft",
		Method:        http.MethodDelete,
		Path:          "/v0/drafts/{id}",
		Summary:       "Delete draft",
		Description:   "Remove a draft. Deleting an unknown draft succeeds.",
		Tags:          []string{"drafts"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DraftIDInput) (*NoContent, error) {
		drafts.Delete(ctx, input.ID)
		return &NoContent{}, nil
	})
}
