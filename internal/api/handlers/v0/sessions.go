package v0

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mcpbuilder/mcp-builder/internal/builder"
	"github.com/mcpbuilder/mcp-builder/internal/database"
	"github.com/mcpbuilder/mcp-builder/internal/persistence"
	"github.com/mcpbuilder/mcp-builder/internal/service"
	"github.com/mcpbuilder/mcp-builder/internal/store"
	"github.com/mcpbuilder/mcp-builder/internal/validators"
	apiv0 "github.com/mcpbuilder/mcp-builder/pkg/api/v0"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// SessionInput identifies a builder session
type SessionInput struct {
	ID string `path:"id" doc:"Session ID"`
}

// SetIntegrationInput replaces the integration held by a session
type SetIntegrationInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body model.Integration
}

// PatchIntegrationInput merges top-level fields into the held integration
type PatchIntegrationInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body model.IntegrationPatch
}

// OpenIntegrationInput loads a stored integration into a session
type OpenIntegrationInput struct {
	ID            string `path:"id" doc:"Session ID"`
	IntegrationID string `path:"integrationId" doc:"Integration ID"`
}

// AddItemInput appends an entity to one of the held integration's collections
type AddItemInput[T any] struct {
	ID   string `path:"id" doc:"Session ID"`
	Body T
}

// UpdateItemInput patches one entity of a collection
type UpdateItemInput[P any] struct {
	ID     string `path:"id" doc:"Session ID"`
	ItemID string `path:"itemId" doc:"Entity ID"`
	Body   P
}

// ItemInput identifies one entity of a collection
type ItemInput struct {
	ID     string `path:"id" doc:"Session ID"`
	ItemID string `path:"itemId" doc:"Entity ID"`
}

// DraftToolBody names the route to draft a tool from
type DraftToolBody struct {
	APIID   string `json:"apiId" doc:"API the route belongs to"`
	RouteID string `json:"routeId" doc:"Route to expose as a tool"`
}

// DraftToolInput represents a tool drafting request
type DraftToolInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body DraftToolBody
}

// SelectionBody names the canvas node to select. An empty id clears the selection.
type SelectionBody struct {
	NodeID string `json:"nodeId" required:"false" doc:"Flow node ID"`
}

// SelectNodeInput represents a selection change
type SelectNodeInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body SelectionBody
}

// SaveBody reports where a session's integration was saved
type SaveBody struct {
	Session apiv0.SessionState `json:"session"`
	Created bool               `json:"created" doc:"True when the integration did not exist in the repository yet"`
	Draft   bool               `json:"draft" doc:"True when a local draft copy was written"`
}

// collection binds one integration collection to its store operations
type collection[T, P any] struct {
	path     string
	singular string
	id       func(item T) string
	has      func(i *model.Integration, id string) bool
	add      func(s *store.Store, item T) *store.State
	update   func(s *store.Store, id string, patch P) *store.State
	remove   func(s *store.Store, id string) *store.State
}

// RegisterSessionsEndpoints registers the builder session endpoints
func RegisterSessionsEndpoints(
	api huma.API, sessions *store.Sessions, integrations service.IntegrationService, drafts *persistence.LocalStore,
) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-session",
		Method:        http.MethodPost,
		Path:          "/v0/sessions",
		Summary:       "Create builder session",
		Description:   "Open a session with an empty editing state",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusCreated,
	}, func(_ context.Context, _ *struct{}) (*Response[apiv0.SessionState], error) {
		id, st := sessions.Create()
		return stateResponse(id, st.State()), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/v0/sessions/{id}",
		Summary:     "Get builder session",
		Tags:        []string{"sessions"},
	}, func(_ context.Context, input *SessionInput) (*Response[apiv0.SessionState], error) {
		st, err := sessions.Get(input.ID)
		if err != nil {
			return nil, httpError(err, "Session", "get session")
		}
		return stateResponse(input.ID, st.State()), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-session",
		Method:        http.MethodDelete,
		Path:          "/v0/sessions/{id}",
		Summary:       "Close builder session",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusNoContent,
	}, func(_ context.Context, input *SessionInput) (*NoContent, error) {
		if err := sessions.Delete(input.ID); err != nil {
			return nil, httpError(err, "Session", "delete session")
		}
		return &NoContent{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-session-integration",
		Method:      http.MethodPut,
		Path:        "/v0/sessions/{id}/integration",
		Summary:     "Replace the edited integration",
		Description: "Replace the integration held by the session and clear the selection",
		Tags:        []string{"sessions"},
	}, func(_ context.Context, input *SetIntegrationInput) (*Response[apiv0.SessionState], error) {
		st, err := sessions.Get(input.ID)
		if err != nil {
			return nil, httpError(err, "Session", "get session")
		}
		return stateResponse(input.ID, st.SetCurrentIntegration(&input.Body)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "clear-session-integration",
		Method:        http.MethodDelete,
		Path:          "/v0/sessions/{id}/integration",
		Summary:       "Unload the edited integration",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusOK,
	}, func(_ context.Context, input *SessionInput) (*Response[apiv0.SessionState], error) {
		st, err := sessions.Get(input.ID)
		if err != nil {
			return nil, httpError(err, "Session", "get session")
		}
		return stateResponse(input.ID, st.SetCurrentIntegration(nil)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "patch-session-integration",
		Method:      http.MethodPatch,
		Path:        "/v0/sessions/{id}/integration",
		Summary:     "Update the edited integration",
		Description: "Shallow-merge top-level fields into the integration held by the session",
		Tags:        []string{"sessions"},
	}, func(_ context.Context, input *PatchIntegrationInput) (*Response[apiv0.SessionState], error) {
		st, _, err := loadedSession(sessions, input.ID)
		if err != nil {
			return nil, err
		}
		return stateResponse(input.ID, st.UpdateCurrentIntegration(input.Body)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "new-session-integration",
		Method:      http.MethodPost,
		Path:        "/v0/sessions/{id}/new",
		Summary:     "Start a new integration",
		Description: "Load a fresh integration with default values into the session",
		Tags:        []string{"sessions"},
	}, func(_ context.Context, input *SessionInput) (*Response[apiv0.SessionState], error) {
		st, err := sessions.Get(input.ID)
		if err != nil {
			return nil, httpError(err, "Session", "get session")
		}
		fresh := drafts.CreateNew()
		return stateResponse(input.ID, st.SetCurrentIntegration(&fresh)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "open-session-integration",
		Method:      http.MethodPost,
		Path:        "/v0/sessions/{id}/open/{integrationId}",
		Summary:     "Open an integration",
		Description: "Load an integration from the repository, or from local drafts when the repository does not have it",
		Tags:        []string{"sessions"},
	}, func(ctx context.Context, input *OpenIntegrationInput) (*Response[apiv0.SessionState], error) {
		st, err := sessions.Get(input.ID)
		if err != nil {
			return nil, httpError(err, "Session", "get session")
		}

		integration, err := integrations.GetByID(ctx, input.IntegrationID)
		if errors.Is(err, database.ErrNotFound) {
			integration = drafts.Load(ctx, input.IntegrationID)
			if integration == nil {
				return nil, huma.Error404NotFound("Integration not found")
			}
		} else if err != nil {
			return nil, httpError(err, "Integration", "get integration")
		}
		return stateResponse(input.ID, st.SetCurrentIntegration(integration)), nil
	})

	registerCollection(api, sessions, collection[model.APIConfig, model.APIPatch]{
		path:     "apis",
		singular: "API",
		id:       func(a model.APIConfig) string { return a.ID },
		has:      func(i *model.Integration, id string) bool { _, ok := i.FindAPI(id); return ok },
		add:      (*store.Store).AddAPI,
		update:   (*store.Store).UpdateAPI,
		remove:   (*store.Store).DeleteAPI,
	})
	registerCollection(api, sessions, collection[model.MCPTool, model.ToolPatch]{
		path:     "tools",
		singular: "Tool",
		id:       toolID,
		has:      func(i *model.Integration, id string) bool { return containsID(i.Tools, id, toolID) },
		add:      (*store.Store).AddTool,
		update:   (*store.Store).UpdateTool,
		remove:   (*store.Store).DeleteTool,
	})
	registerCollection(api, sessions, collection[model.MCPPrompt, model.PromptPatch]{
		path:     "prompts",
		singular: "Prompt",
		id:       promptID,
		has:      func(i *model.Integration, id string) bool { return containsID(i.Prompts, id, promptID) },
		add:      (*store.Store).AddPrompt,
		update:   (*store.Store).UpdatePrompt,
		remove:   (*store.Store).DeletePrompt,
	})
	registerCollection(api, sessions, collection[model.MCPResource, model.ResourcePatch]{
		path:     "resources",
		singular: "Resource",
		id:       resourceID,
		has:      func(i *model.Integration, id string) bool { return containsID(i.Resources, id, resourceID) },
		add:      (*store.Store).AddResource,
		update:   (*store.Store).UpdateResource,
		remove:   (*store.Store).DeleteResource,
	})

	huma.Register(api, huma.Operation{
		OperationID:   "draft-session-tool",
		Method:        http.MethodPost,
		Path:          "/v0/sessions/{id}/tools/draft",
		Summary:       "Draft a tool from a route",
		Description:   "Generate a tool for one route of an API and add it to the edited integration",
		Tags:          []string{"sessions", "tools"},
		DefaultStatus: http.StatusCreated,
	}, func(_ context.Context, input *DraftToolInput) (*Response[apiv0.SessionState], error) {
		st, current, err := loadedSession(sessions, input.ID)
		if err != nil {
			return nil, err
		}

		target, ok := current.FindAPI(input.Body.APIID)
		if !ok {
			return nil, huma.Error404NotFound("API not found")
		}
		for _, route := range target.Routes {
			if route.ID == input.Body.RouteID {
				tool := builder.DraftTool(model.NewID(time.Now()), target, route)
				return stateResponse(input.ID, st.AddTool(tool)), nil
			}
		}
		return nil, huma.Error404NotFound("Route not found")
	})

	huma.Register(api, huma.Operation{
		OperationID: "select-session-node",
		Method:      http.MethodPut,
		Path:        "/v0/sessions/{id}/selection",
		Summary:     "Select a canvas node",
		Tags:        []string{"sessions"},
	}, func(_ context.Context, input *SelectNodeInput) (*Response[apiv0.SessionState], error) {
		st, err := sessions.Get(input.ID)
		if err != nil {
			return nil, httpError(err, "Session", "get session")
		}
		if input.Body.NodeID == "" {
			return stateResponse(input.ID, st.SelectNode(nil)), nil
		}

		flow := builder.Flow(st.State().Integration)
		for _, node := range flow.Nodes {
			if node.ID == input.Body.NodeID {
				return stateResponse(input.ID, st.SelectNode(&node)), nil
			}
		}
		return nil, huma.Error404NotFound("Node not found")
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-session-flow",
		Method:      http.MethodGet,
		Path:        "/v0/sessions/{id}/flow",
		Summary:     "Get the canvas flow",
		Description: "Project the edited integration onto canvas nodes and edges",
		Tags:        []string{"sessions"},
	}, func(_ context.Context, input *SessionInput) (*Response[apiv0.Flow], error) {
		st, err := sessions.Get(input.ID)
		if err != nil {
			return nil, httpError(err, "Session", "get session")
		}
		return &Response[apiv0.Flow]{Body: builder.Flow(st.State().Integration)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-session-integration",
		Method:      http.MethodPost,
		Path:        "/v0/sessions/{id}/validate",
		Summary:     "Validate the edited integration",
		Tags:        []string{"sessions"},
	}, func(_ context.Context, input *SessionInput) (*Response[apiv0.ValidationResult], error) {
		_, current, err := loadedSession(sessions, input.ID)
		if err != nil {
			return nil, err
		}
		return &Response[apiv0.ValidationResult]{Body: validationResult(current)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-session-integration",
		Method:      http.MethodPost,
		Path:        "/v0/sessions/{id}/save",
		Summary:     "Save the edited integration",
		Description: "Validate the edited integration, store it in the repository and keep a local draft copy",
		Tags:        []string{"sessions"},
	}, func(ctx context.Context, input *SessionInput) (*Response[SaveBody], error) {
		st, current, err := loadedSession(sessions, input.ID)
		if err != nil {
			return nil, err
		}

		if err := validators.ValidateIntegration(current); err != nil {
			return nil, httpError(err, "Integration", "validate integration")
		}

		created := false
		saved, err := integrations.Update(ctx, current.ID, model.PatchFrom(*current))
		if errors.Is(err, database.ErrNotFound) {
			created = true
			saved, err = integrations.Create(ctx, model.PatchFrom(*current))
		}
		if err != nil {
			return nil, httpError(err, "Integration", "save integration")
		}

		draft := drafts.Save(ctx, saved)
		next := st.UpdateCurrentIntegration(model.PatchFrom(*saved))
		return &Response[SaveBody]{Body: SaveBody{
			Session: sessionState(input.ID, next),
			Created: created,
			Draft:   draft,
		}}, nil
	})
}

func registerCollection[T, P any](api huma.API, sessions *store.Sessions, c collection[T, P]) {
	base := "/v0/sessions/{id}/" + c.path

	huma.Register(api, huma.Operation{
		OperationID:   "add-session-" + c.path,
		Method:        http.MethodPost,
		Path:          base,
		Summary:       "Add " + c.singular,
		Tags:          []string{"sessions", c.path},
		DefaultStatus: http.StatusCreated,
	}, func(_ context.Context, input *AddItemInput[T]) (*Response[apiv0.SessionState], error) {
		st, current, err := loadedSession(sessions, input.ID)
		if err != nil {
			return nil, err
		}
		if c.has(current, c.id(input.Body)) {
			return nil, huma.Error409Conflict(c.singular + " with this ID already exists")
		}
		return stateResponse(input.ID, c.add(st, input.Body)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-session-" + c.path,
		Method:      http.MethodPatch,
		Path:        base + "/{itemId}",
		Summary:     "Update " + c.singular,
		Tags:        []string{"sessions", c.path},
	}, func(_ context.Context, input *UpdateItemInput[P]) (*Response[apiv0.SessionState], error) {
		st, current, err := loadedSession(sessions, input.ID)
		if err != nil {
			return nil, err
		}
		if !c.has(current, input.ItemID) {
			return nil, huma.Error404NotFound(c.singular + " not found")
		}
		return stateResponse(input.ID, c.update(st, input.ItemID, input.Body)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-session-" + c.path,
		Method:      http.MethodDelete,
		Path:        base + "/{itemId}",
		Summary:     "Delete " + c.singular,
		Tags:        []string{"sessions", c.path},
	}, func(_ context.Context, input *ItemInput) (*Response[apiv0.SessionState], error) {
		st, current, err := loadedSession(sessions, input.ID)
		if err != nil {
			return nil, err
		}
		if !c.has(current, input.ItemID) {
			return nil, huma.Error404NotFound(c.singular + " not found")
		}
		return stateResponse(input.ID, c.remove(st, input.ItemID)), nil
	})
}

// loadedSession returns the session's store and one snapshot of its integration,
// failing when no integration is loaded. Handlers read the snapshot rather than
// State() again, since another request may unload the integration meanwhile.
func loadedSession(sessions *store.Sessions, id string) (*store.Store, *model.Integration, error) {
	st, err := sessions.Get(id)
	if err != nil {
		return nil, nil, httpError(err, "Session", "get session")
	}
	current := st.State().Integration
	if current == nil {
		return nil, nil, huma.Error409Conflict("Session has no integration loaded")
	}
	return st, current, nil
}

func sessionState(id string, state *store.State) apiv0.SessionState {
	return apiv0.SessionState{
		SessionID:    id,
		Integration:  state.Integration,
		SelectedNode: state.SelectedNode,
	}
}

func stateResponse(id string, state *store.State) *Response[apiv0.SessionState] {
	return &Response[apiv0.SessionState]{Body: sessionState(id, state)}
}

func containsID[T any](items []T, id string, key func(T) string) bool {
	for _, item := range items {
		if key(item) == id {
			return true
		}
	}
	return false
}

func toolID(t model.MCPTool) string         { return t.ID }
func promptID(p model.MCPPrompt) string     { return p.ID }
func resourceID(r model.MCPResource) string { return r.ID }
