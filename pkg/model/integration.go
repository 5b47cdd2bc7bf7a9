package model

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a timestamp-derived identifier that stays unique within the same millisecond
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

// DefaultConfiguration returns the generation parameters every new integration starts with
func DefaultConfiguration() MCPConfiguration {
	return MCPConfiguration{
		GlobalPrompt: DefaultGlobalPrompt,
		Model:        DefaultModel,
		Temperature:  DefaultTemperature,
		MaxTokens:    DefaultMaxTokens,
	}
}

// NewIntegration is the single place default integrations are built
func NewIntegration(id string, now time.Time) Integration {
	return Integration{
		ID:            id,
		Name:          DefaultName,
		Version:       DefaultVersion,
		Format:        DefaultFormat,
		Author:        DefaultAuthor,
		CreatedAt:     now,
		UpdatedAt:     now,
		Published:     false,
		APIs:          []APIConfig{},
		Tools:         []MCPTool{},
		Prompts:       []MCPPrompt{},
		Resources:     []MCPResource{},
		Configuration: DefaultConfiguration(),
	}
}

// Clone returns a deep copy so the caller can mutate it without affecting the original
func (i Integration) Clone() Integration {
	out := i
	out.Rating = clonePtr(i.Rating)
	out.Reviews = clonePtr(i.Reviews)
	out.Usage = clonePtr(i.Usage)
	if i.APIs != nil {
		out.APIs = make([]APIConfig, len(i.APIs))
		for idx, api := range i.APIs {
			out.APIs[idx] = api.Clone()
		}
	}
	if i.Tools != nil {
		out.Tools = make([]MCPTool, len(i.Tools))
		for idx, tool := range i.Tools {
			out.Tools[idx] = tool.Clone()
		}
	}
	out.Prompts = slices.Clone(i.Prompts)
	out.Resources = slices.Clone(i.Resources)
	return out
}

// Clone returns a deep copy of the API
func (a APIConfig) Clone() APIConfig {
	out := a
	out.Auth.Config = cloneMap(a.Auth.Config)
	out.Routes = slices.Clone(a.Routes)
	out.Headers = maps.Clone(a.Headers)
	out.Timeout = clonePtr(a.Timeout)
	return out
}

// Clone returns a deep copy of the tool
func (t MCPTool) Clone() MCPTool {
	out := t
	out.InputSchema = cloneMap(t.InputSchema)
	if t.ResponseMapping != nil {
		m := *t.ResponseMapping
		out.ResponseMapping = &m
	}
	return out
}

// FindAPI returns the API with the given id
func (i Integration) FindAPI(id string) (APIConfig, bool) {
	idx := slices.IndexFunc(i.APIs, func(a APIConfig) bool { return a.ID == id })
	if idx < 0 {
		return APIConfig{}, false
	}
	return i.APIs[idx], true
}

// FindRoute returns the route matching method and path
func (a APIConfig) FindRoute(method HTTPMethod, path string) (APIRoute, bool) {
	idx := slices.IndexFunc(a.Routes, func(r APIRoute) bool {
		return strings.EqualFold(string(r.Method), string(method)) && r.Path == path
	})
	if idx < 0 {
		return APIRoute{}, false
	}
	return a.Routes[idx], true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneMap copies nested maps and slices found in JSON-like blobs
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(val)
	default:
		return val
	}
}
