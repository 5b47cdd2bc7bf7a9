package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpbuilder/mcp-builder/internal/guides"
)

// GuideInput selects a guide
type GuideInput struct {
	Kind string `path:"kind" doc:"Guide family" example:"tool-generation"`
	Type string `query:"type" default:"generic" doc:"API type the guide is for" example:"rest"`
}

// GuideBody is one prompt guide
type GuideBody struct {
	Kind      string   `json:"kind"`
	Type      string   `json:"type" doc:"Type actually served; unknown types fall back to generic"`
	Content   string   `json:"content"`
	Available []string `json:"available" doc:"Types offered for this kind"`
}

// RegisterGuidesEndpoints registers the prompt guide endpoint
func RegisterGuidesEndpoints(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-guide",
		Method:      http.MethodGet,
		Path:        "/v0/guides/{kind}",
		Summary:     "Get prompt guide",
		Description: "Get tool-generation instructions or an execution guide for an API type",
		Tags:        []string{"guides"},
	}, func(_ context.Context, input *GuideInput) (*Response[GuideBody], error) {
		kind := guides.Kind(input.Kind)
		content, served, ok := guides.Lookup(kind, input.Type)
		if !ok {
			return nil, huma.Error404NotFound("Guide kind not found")
		}
		return &Response[GuideBody]{Body: GuideBody{
			Kind:      input.Kind,
			Type:      served,
			Content:   content,
			Available: guides.Types(kind),
		}}, nil
	})
}
