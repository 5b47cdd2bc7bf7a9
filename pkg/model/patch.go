package model

import "time"

// IntegrationPatch carries the top-level fields to overwrite on an integration. Nil fields are left alone.
type IntegrationPatch struct {
	ID            *string           `json:"id,omitempty"`
	Name          *string           `json:"name,omitempty"`
	Description   *string           `json:"description,omitempty"`
	Version       *string           `json:"version,omitempty"`
	Format        *string           `json:"format,omitempty"`
	Author        *string           `json:"author,omitempty"`
	CreatedAt     *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time        `json:"updatedAt,omitempty"`
	Published     *bool             `json:"published,omitempty"`
	Rating        *float64          `json:"rating,omitempty"`
	Reviews       *int              `json:"reviews,omitempty"`
	Usage         *int              `json:"usage,omitempty"`
	Emoji         *string           `json:"emoji,omitempty"`
	APIs          []APIConfig       `json:"apis,omitempty"`
	Tools         []MCPTool         `json:"tools,omitempty"`
	Prompts       []MCPPrompt       `json:"prompts,omitempty"`
	Resources     []MCPResource     `json:"resources,omitempty"`
	Configuration *MCPConfiguration `json:"configuration,omitempty"`
}

// Apply returns a copy of i with the patch shallow-merged on top
func (i Integration) Apply(p IntegrationPatch) Integration {
	out := i
	setIf(&out.ID, p.ID)
	setIf(&out.Name, p.Name)
	setIf(&out.Description, p.Description)
	setIf(&out.Version, p.Version)
	setIf(&out.Format, p.Format)
	setIf(&out.Author, p.Author)
	setIf(&out.CreatedAt, p.CreatedAt)
	setIf(&out.UpdatedAt, p.UpdatedAt)
	setIf(&out.Published, p.Published)
	setIf(&out.Emoji, p.Emoji)
	if p.Rating != nil {
		out.Rating = clonePtr(p.Rating)
	}
	if p.Reviews != nil {
		out.Reviews = clonePtr(p.Reviews)
	}
	if p.Usage != nil {
		out.Usage = clonePtr(p.Usage)
	}
	if p.APIs != nil {
		out.APIs = p.APIs
	}
	if p.Tools != nil {
		out.Tools = p.Tools
	}
	if p.Prompts != nil {
		out.Prompts = p.Prompts
	}
	if p.Resources != nil {
		out.Resources = p.Resources
	}
	setIf(&out.Configuration, p.Configuration)
	return out
}

// PatchFrom builds a patch that sets every field of i, used to overlay a whole document on defaults
func PatchFrom(i Integration) IntegrationPatch {
	c := i.Clone()
	return IntegrationPatch{
		ID:            &c.ID,
		Name:          &c.Name,
		Description:   &c.Description,
		Version:       &c.Version,
		Format:        &c.Format,
		Author:        &c.Author,
		CreatedAt:     &c.CreatedAt,
		UpdatedAt:     &c.UpdatedAt,
		Published:     &c.Published,
		Rating:        c.Rating,
		Reviews:       c.Reviews,
		Usage:         c.Usage,
		Emoji:         &c.Emoji,
		APIs:          c.APIs,
		Tools:         c.Tools,
		Prompts:       c.Prompts,
		Resources:     c.Resources,
		Configuration: &c.Configuration,
	}
}

// Child entity patches carry no ID field: an entity is addressed by its ID, so the ID
// itself is never patched. Re-keying is a delete followed by an add.

// APIPatch updates an APIConfig
type APIPatch struct {
	Name    *string           `json:"name,omitempty"`
	BaseURL *string           `json:"baseUrl,omitempty"`
	Auth    *AuthConfig       `json:"auth,omitempty"`
	Routes  []APIRoute        `json:"routes,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Timeout *int              `json:"timeout,omitempty"`
	Status  *ConnectionStatus `json:"status,omitempty"`
}

// Apply returns a copy of a with the patch merged on top
func (a APIConfig) Apply(p APIPatch) APIConfig {
	out := a
	setIf(&out.Name, p.Name)
	setIf(&out.BaseURL, p.BaseURL)
	setIf(&out.Auth, p.Auth)
	setIf(&out.Status, p.Status)
	if p.Routes != nil {
		out.Routes = p.Routes
	}
	if p.Headers != nil {
		out.Headers = p.Headers
	}
	if p.Timeout != nil {
		out.Timeout = clonePtr(p.Timeout)
	}
	return out
}

// ToolPatch updates an MCPTool
type ToolPatch struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	APIID           *string          `json:"apiId,omitempty"`
	Method          *HTTPMethod      `json:"method,omitempty"`
	Endpoint        *string          `json:"endpoint,omitempty"`
	InputSchema     map[string]any   `json:"inputSchema,omitempty"`
	ResponseMapping *ResponseMapping `json:"responseMapping,omitempty"`
}

// Apply returns a copy of t with the patch merged on top
func (t MCPTool) Apply(p ToolPatch) MCPTool {
	out := t
	setIf(&out.Name, p.Name)
	setIf(&out.Description, p.Description)
	setIf(&out.APIID, p.APIID)
	setIf(&out.Method, p.Method)
	setIf(&out.Endpoint, p.Endpoint)
	if p.InputSchema != nil {
		out.InputSchema = p.InputSchema
	}
	if p.ResponseMapping != nil {
		m := *p.ResponseMapping
		out.ResponseMapping = &m
	}
	return out
}

// PromptPatch updates an MCPPrompt
type PromptPatch struct {
	Name    *string     `json:"name,omitempty"`
	Type    *PromptType `json:"type,omitempty"`
	Content *string     `json:"content,omitempty"`
}

// Apply returns a copy of p with the patch merged on top
func (p MCPPrompt) Apply(patch PromptPatch) MCPPrompt {
	out := p
	setIf(&out.Name, patch.Name)
	setIf(&out.Type, patch.Type)
	setIf(&out.Content, patch.Content)
	return out
}

// ResourcePatch updates an MCPResource
type ResourcePatch struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
	URI  *string `json:"uri,omitempty"`
}

// Apply returns a copy of r with the patch merged on top
func (r MCPResource) Apply(patch ResourcePatch) MCPResource {
	out := r
	setIf(&out.Name, patch.Name)
	setIf(&out.Type, patch.Type)
	setIf(&out.URI, patch.URI)
	return out
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
