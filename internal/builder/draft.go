package builder

import (
	"regexp"
	"strings"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// IdentityPath is the success path that returns the whole response body
const IdentityPath = "@"

var (
	placeholderRe = regexp.MustCompile(`\{([^{}/]+)\}`)
	nonWordRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

// SplitURL splits an absolute URL into its origin and path
func SplitURL(raw string) (baseURL, path string) {
	rest := raw
	prefix := ""
	if scheme, after, ok := strings.Cut(raw, "://"); ok {
		prefix = scheme + "://"
		rest = after
	}

	host, p, found := strings.Cut(rest, "/")
	if !found {
		return prefix + host, ""
	}
	return prefix + host, "/" + p
}

// ToolName derives a snake_case tool name from a route, e.g. GET /users/{id} becomes get_users_id
func ToolName(method model.HTTPMethod, path string) string {
	name := strings.ToLower(string(method)) + "_" + strings.ToLower(path)
	name = nonWordRe.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// PathParams returns the {param} placeholders of a route path in order of appearance
func PathParams(path string) []string {
	matches := placeholderRe.FindAllStringSubmatch(path, -1)
	params := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		params = append(params, m[1])
	}
	return params
}

// InputSchema builds an object schema requiring one string property per path placeholder
func InputSchema(path string) map[string]any {
	properties := map[string]any{}
	required := []any{}
	for _, p := range PathParams(path) {
		properties[p] = map[string]any{"type": "string"}
		required = append(required, p)
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// DraftTool proposes a tool with the given id bound to one route of an API.
// The tool name is derived from the route, so drafting a route twice yields
// two tools with the same name and distinct ids.
func DraftTool(id string, api model.APIConfig, route model.APIRoute) model.MCPTool {
	name := ToolName(route.Method, route.Path)
	description := route.Description
	if description == "" {
		description = string(route.Method) + " " + route.Path + " on " + api.Name
	}

	return model.MCPTool{
		ID:          id,
		Name:        name,
		Description: description,
		APIID:       api.ID,
		Method:      route.Method,
		Endpoint:    route.Path,
		InputSchema: InputSchema(route.Path),
		ResponseMapping: &model.ResponseMapping{
			SuccessPath:   IdentityPath,
			ErrorHandling: model.ErrorPolicyThrow,
		},
	}
}
