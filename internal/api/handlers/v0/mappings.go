package v0

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpbuilder/mcp-builder/internal/mapping"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// MappingPreviewBody is a sample response together with the mapping to apply to it
type MappingPreviewBody struct {
	Mapping  model.ResponseMapping `json:"mapping"`
	Response any                   `json:"response" doc:"Sample API response body"`
}

// MappingPreviewInput represents a mapping preview request
type MappingPreviewInput struct {
	Body MappingPreviewBody
}

// MappingResultBody holds what a tool would hand to the LLM
type MappingResultBody struct {
	Result any `json:"result"`
}

// RegisterMappingsEndpoints registers the response mapping preview endpoint
func RegisterMappingsEndpoints(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "preview-mapping",
		Method:      http.MethodPost,
		Path:        "/v0/mappings/preview",
		Summary:     "Preview response mapping",
		Description: "Apply a tool's response mapping to a sample response",
		Tags:        []string{"tools"},
	}, func(_ context.Context, input *MappingPreviewInput) (*Response[MappingResultBody], error) {
		result, err := mapping.Apply(&input.Body.Mapping, input.Body.Response)
		switch {
		case errors.Is(err, mapping.ErrNoMatch):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case err != nil:
			return nil, httpError(err, "Mapping", "apply mapping")
		}
		return &Response[MappingResultBody]{Body: MappingResultBody{Result: result}}, nil
	})
}
