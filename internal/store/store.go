// Package store holds the editing state of the integration builder
package store

import (
	"slices"
	"sync"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// State is an immutable snapshot of the builder. A mutation never changes a State
// it has already handed out; it builds a new one instead.
type State struct {
	Integration  *model.Integration
	SelectedNode *model.FlowNode
}

// Listener is notified with every new snapshot
type Listener func(*State)

// Store holds the integration being edited and the selected canvas node
type Store struct {
	mu        sync.Mutex
	state     *State
	listeners []Listener
}

// New creates an empty store
func New() *Store {
	return &Store{state: &State{}}
}

// State returns the current snapshot
func (s *Store) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every mutation
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetCurrentIntegration replaces the held integration and clears the selection
func (s *Store) SetCurrentIntegration(i *model.Integration) *State {
	return s.commit(func(_ *State) *State {
		next := &State{}
		if i != nil {
			c := i.Clone()
			next.Integration = &c
		}
		return next
	})
}

// UpdateCurrentIntegration shallow-merges patch into the held integration.
// Nothing changes when no integration is held.
func (s *Store) UpdateCurrentIntegration(patch model.IntegrationPatch) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		return i.Apply(model.IntegrationPatch{
			ID:            patch.ID,
			Name:          patch.Name,
			Description:   patch.Description,
			Version:       patch.Version,
			Format:        patch.Format,
			Author:        patch.Author,
			CreatedAt:     patch.CreatedAt,
			UpdatedAt:     patch.UpdatedAt,
			Published:     patch.Published,
			Rating:        patch.Rating,
			Reviews:       patch.Reviews,
			Usage:         patch.Usage,
			Emoji:         patch.Emoji,
			APIs:          cloneAll(patch.APIs, model.APIConfig.Clone),
			Tools:         cloneAll(patch.Tools, model.MCPTool.Clone),
			Prompts:       slices.Clone(patch.Prompts),
			Resources:     slices.Clone(patch.Resources),
			Configuration: patch.Configuration,
		})
	})
}

// AddAPI appends an API
func (s *Store) AddAPI(api model.APIConfig) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.APIs = appendCopy(i.APIs, api.Clone())
		return i
	})
}

// UpdateAPI merges patch into the API with the given id
func (s *Store) UpdateAPI(id string, patch model.APIPatch) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.APIs = replaceByID(i.APIs, id, func(a model.APIConfig) string { return a.ID }, func(a model.APIConfig) model.APIConfig {
			return a.Apply(patch).Clone()
		})
		return i
	})
}

// DeleteAPI removes the API with the given id
func (s *Store) DeleteAPI(id string) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.APIs = removeByID(i.APIs, id, func(a model.APIConfig) string { return a.ID })
		return i
	})
}

// AddTool appends a tool
func (s *Store) AddTool(tool model.MCPTool) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.Tools = appendCopy(i.Tools, tool.Clone())
		return i
	})
}

// UpdateTool merges patch into the tool with the given id
func (s *Store) UpdateTool(id string, patch model.ToolPatch) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.Tools = replaceByID(i.Tools, id, func(t model.MCPTool) string { return t.ID }, func(t model.MCPTool) model.MCPTool {
			return t.Apply(patch).Clone()
		})
		return i
	})
}

// DeleteTool removes the tool with the given id
func (s *Store) DeleteTool(id string) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.Tools = removeByID(i.Tools, id, func(t model.MCPTool) string { return t.ID })
		return i
	})
}

// AddPrompt appends a prompt
func (s *Store) AddPrompt(prompt model.MCPPrompt) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.Prompts = appendCopy(i.Prompts, prompt)
		return i
	})
}

// UpdatePrompt merges patch into the prompt with the given id
func (s *Store) UpdatePrompt(id string, patch model.PromptPatch) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.Prompts = replaceByID(i.Prompts, id, func(p model.MCPPrompt) string { return p.ID }, func(p model.MCPPrompt) model.MCPPrompt {
			return p.Apply(patch)
		})
		return i
	})
}

// DeletePrompt removes the prompt with the given id
func (s *Store) DeletePrompt(id string) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.Prompts = removeByID(i.Prompts, id, func(p model.MCPPrompt) string { return p.ID })
		return i
	})
}

// AddResource appends a resource
func (s *Store) AddResource(resource model.MCPResource) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.Resources = appendCopy(i.Resources, resource)
		return i
	})
}

// UpdateResource merges patch into the resource with the given id
func (s *Store) UpdateResource(id string, patch model.ResourcePatch) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.Resources = replaceByID(i.Resources, id, func(r model.MCPResource) string { return r.ID }, func(r model.MCPResource) model.MCPResource {
			return r.Apply(patch)
		})
		return i
	})
}

// DeleteResource removes the resource with the given id
func (s *Store) DeleteResource(id string) *State {
	return s.mutateIntegration(func(i model.Integration) model.Integration {
		i.Resources = removeByID(i.Resources, id, func(r model.MCPResource) string { return r.ID })
		return i
	})
}

// SelectNode replaces the selected node. The integration is left alone.
func (s *Store) SelectNode(n *model.FlowNode) *State {
	return s.commit(func(prev *State) *State {
		next := &State{Integration: prev.Integration}
		if n != nil {
			c := *n
			next.SelectedNode = &c
		}
		return next
	})
}

// mutateIntegration hands fn a shallow copy of the held integration. fn must replace,
// never modify in place, any collection it changes.
func (s *Store) mutateIntegration(fn func(model.Integration) model.Integration) *State {
	return s.commit(func(prev *State) *State {
		next := &State{SelectedNode: prev.SelectedNode}
		if prev.Integration != nil {
			updated := fn(*prev.Integration)
			next.Integration = &updated
		}
		return next
	})
}

func (s *Store) commit(reduce func(*State) *State) *State {
	s.mu.Lock()
	next := reduce(s.state)
	s.state = next
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

func replaceByID[T any](items []T, id string, key func(T) string, update func(T) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		if key(item) == id {
			out[i] = update(item)
			continue
		}
		out[i] = item
	}
	return out
}

func removeByID[T any](items []T, id string, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}

func cloneAll[T any](items []T, clone func(T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}
