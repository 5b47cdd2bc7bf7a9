package validators

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmespath/go-jmespath"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// APIValidator validates a single API registration
type APIValidator struct{}

// NewAPIValidator creates a new APIValidator instance
func NewAPIValidator() *APIValidator {
	return &APIValidator{}
}

// Validate checks the base URL and that route ids are unique within the API
func (v *APIValidator) Validate(api *model.APIConfig) []error {
	var errs []error
	if !IsValidURL(api.BaseURL) {
		errs = append(errs, fmt.Errorf("%w: api %q: %s", ErrInvalidBaseURL, api.ID, api.BaseURL))
	}

	seen := make(map[string]bool, len(api.Routes))
	for _, route := range api.Routes {
		if seen[route.ID] {
			errs = append(errs, fmt.Errorf("%w: api %q route %q", ErrDuplicateID, api.ID, route.ID))
		}
		seen[route.ID] = true

		if !HasNoSpaces(route.Path) {
			errs = append(errs, fmt.Errorf("%w: api %q route %q", ErrRouteHasSpaces, api.ID, route.Path))
		}
	}
	return errs
}

// ToolValidator validates a tool against the APIs of its integration
type ToolValidator struct{}

// NewToolValidator creates a new ToolValidator instance
func NewToolValidator() *ToolValidator {
	return &ToolValidator{}
}

// Validate checks the API reference, the route reference, the input schema and the success path
func (v *ToolValidator) Validate(tool *model.MCPTool, integration *model.Integration) []error {
	var errs []error

	api, ok := integration.FindAPI(tool.APIID)
	if !ok {
		errs = append(errs, fmt.Errorf("%w: tool %q references %q", ErrUnknownAPIReference, tool.ID, tool.APIID))
	} else if _, ok := api.FindRoute(tool.Method, tool.Endpoint); !ok {
		errs = append(errs, fmt.Errorf("%w: tool %q references %s %s on api %q",
			ErrUnknownRouteRef, tool.ID, tool.Method, tool.Endpoint, api.ID))
	}

	if tool.InputSchema != nil {
		if _, err := CompileInputSchema(tool.InputSchema); err != nil {
			errs = append(errs, fmt.Errorf("%w: tool %q: %w", ErrInvalidInputSchema, tool.ID, err))
		}
	}

	if tool.ResponseMapping != nil && tool.ResponseMapping.SuccessPath != "" {
		if _, err := jmespath.Compile(tool.ResponseMapping.SuccessPath); err != nil {
			errs = append(errs, fmt.Errorf("%w: tool %q: %w", ErrInvalidSuccessPath, tool.ID, err))
		}
	}
	return errs
}

// IntegrationValidator aggregates the validators for every part of an integration
type IntegrationValidator struct {
	APIValidator  *APIValidator
	ToolValidator *ToolValidator
}

// NewIntegrationValidator creates a new IntegrationValidator instance
func NewIntegrationValidator() *IntegrationValidator {
	return &IntegrationValidator{
		APIValidator:  NewAPIValidator(),
		ToolValidator: NewToolValidator(),
	}
}

// Validate reports every problem found. The returned error wraps ErrInvalidIntegration
// and each individual problem, so errors.Is works against any of the sentinels.
func (iv *IntegrationValidator) Validate(integration *model.Integration) error {
	var errs []error

	if err := validate.Struct(integration); err != nil {
		errs = append(errs, fieldErrors(err)...)
	}

	if !IsSemanticVersion(integration.Version) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidVersion, integration.Version))
	}

	errs = append(errs, duplicateIDs("api", integration.APIs, func(a model.APIConfig) string { return a.ID })...)
	errs = append(errs, duplicateIDs("tool", integration.Tools, func(t model.MCPTool) string { return t.ID })...)
	errs = append(errs, duplicateIDs("prompt", integration.Prompts, func(p model.MCPPrompt) string { return p.ID })...)
	errs = append(errs, duplicateIDs("resource", integration.Resources, func(r model.MCPResource) string { return r.ID })...)

	for i := range integration.APIs {
		errs = append(errs, iv.APIValidator.Validate(&integration.APIs[i])...)
	}
	for i := range integration.Tools {
		errs = append(errs, iv.ToolValidator.Validate(&integration.Tools[i], integration)...)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidIntegration, errors.Join(errs...))
}

// ValidateIntegration validates an integration with the default validator set
func ValidateIntegration(integration *model.Integration) error {
	return NewIntegrationValidator().Validate(integration)
}

// Problems flattens an error returned by Validate into one message per problem
func Problems(err error) []string {
	if err == nil {
		return []string{}
	}

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []string
		for _, e := range joined.Unwrap() {
			if e == nil || errors.Is(e, ErrInvalidIntegration) {
				continue
			}
			if inner, ok := e.(interface{ Unwrap() []error }); ok {
				for _, ie := range inner.Unwrap() {
					out = append(out, ie.Error())
				}
				continue
			}
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

// CompileInputSchema compiles a tool input schema as draft-07 JSON Schema
func CompileInputSchema(schema map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("input.json", bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile("input.json")
}

func duplicateIDs[T any](kind string, items []T, id func(T) string) []error {
	var errs []error
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := id(item)
		if seen[key] {
			errs = append(errs, fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, key))
		}
		seen[key] = true
	}
	return errs
}

func fieldErrors(err error) []error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}

	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Errorf("%w: field '%s' failed rule '%s' (got '%v')",
			ErrInvalidFieldValue, fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return out
}
