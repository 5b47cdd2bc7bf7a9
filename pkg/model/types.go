package model

import "time"

// HTTPMethod is one of the HTTP verbs a route may expose
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
	MethodPatch  HTTPMethod = "PATCH"
)

// AuthType tags the AuthConfig variant
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeAPIKey AuthType = "api-key"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeOAuth2 AuthType = "oauth2"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeCustom AuthType = "custom"
)

// ConnectionStatus reports whether an API was reachable the last time the builder checked
type ConnectionStatus string

const (
	ConnectionStatusConnected ConnectionStatus = "connected"
	ConnectionStatusError     ConnectionStatus = "error"
	ConnectionStatusNoKey     ConnectionStatus = "no-key"
)

// PromptType distinguishes system prompts from contextual fragments
type PromptType string

const (
	PromptTypeSystem     PromptType = "system"
	PromptTypeContextual PromptType = "contextual"
)

// ErrorPolicy decides what a tool returns when its success path does not match the response
type ErrorPolicy string

const (
	ErrorPolicyThrow       ErrorPolicy = "throw"
	ErrorPolicyReturnNull  ErrorPolicy = "return-null"
	ErrorPolicyPassthrough ErrorPolicy = "passthrough"
)

// Integration is the root document authored in the builder
type Integration struct {
	ID            string           `json:"id" bson:"id" validate:"required"`
	Name          string           `json:"name" bson:"name" validate:"required,max=200" minLength:"1" maxLength:"200"`
	Description   string           `json:"description" bson:"description" required:"false"`
	Version       string           `json:"version" bson:"version" validate:"required"`
	Format        string           `json:"format" bson:"format" required:"false"`
	Author        string           `json:"author" bson:"author" required:"false"`
	CreatedAt     time.Time        `json:"createdAt" bson:"created_at" required:"false"`
	UpdatedAt     time.Time        `json:"updatedAt" bson:"updated_at" required:"false"`
	Published     bool             `json:"published" bson:"published" required:"false"`
	Rating        *float64         `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Reviews       *int             `json:"reviews,omitempty" bson:"reviews,omitempty" validate:"omitempty,min=0"`
	Usage         *int             `json:"usage,omitempty" bson:"usage,omitempty" validate:"omitempty,min=0"`
	Emoji         string           `json:"emoji,omitempty" bson:"emoji,omitempty"`
	APIs          []APIConfig      `json:"apis" bson:"apis" required:"false" validate:"dive"`
	Tools         []MCPTool        `json:"tools" bson:"tools" required:"false" validate:"dive"`
	Prompts       []MCPPrompt      `json:"prompts" bson:"prompts" required:"false" validate:"dive"`
	Resources     []MCPResource    `json:"resources" bson:"resources" required:"false" validate:"dive"`
	Configuration MCPConfiguration `json:"configuration" bson:"configuration" required:"false"`
}

// APIConfig is one external API registered against an integration
// Empty Headers are omitted when encoded and decode as nil.
type APIConfig struct {
	ID      string            `json:"id" bson:"id" validate:"required"`
	Name    string            `json:"name" bson:"name" validate:"required"`
	BaseURL string            `json:"baseUrl" bson:"base_url" validate:"required"`
	Auth    AuthConfig        `json:"auth" bson:"auth" required:"false"`
	Routes  []APIRoute        `json:"routes" bson:"routes" required:"false" validate:"dive"`
	Headers map[string]string `json:"headers,omitempty" bson:"headers,omitempty"`
	Timeout *int              `json:"timeout,omitempty" bson:"timeout,omitempty" validate:"omitempty,min=0" doc:"Request timeout in milliseconds"`
	Status  ConnectionStatus  `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=connected error no-key" enum:"connected,error,no-key"`
}

// AuthConfig describes how requests to an API are authenticated. Config is opaque to the builder
// and decodes with JSON types (float64 numbers, []any arrays).
type AuthConfig struct {
	Type   AuthType       `json:"type" bson:"type" validate:"omitempty,oneof=none api-key bearer oauth2 basic custom" enum:"none,api-key,bearer,oauth2,basic,custom"`
	Config map[string]any `json:"config,omitempty" bson:"config,omitempty"`
}

// APIRoute is one HTTP operation exposed by an API
type APIRoute struct {
	ID          string     `json:"id" bson:"id" validate:"required"`
	Method      HTTPMethod `json:"method" bson:"method" validate:"required,oneof=GET POST PUT DELETE PATCH" enum:"GET,POST,PUT,DELETE,PATCH"`
	Path        string     `json:"path" bson:"path" validate:"required,startswith=/"`
	Description string     `json:"description" bson:"description" required:"false"`
}

// MCPTool is a callable unit exposed to the LLM, bound to one route of one API
// An empty InputSchema is omitted when encoded and decodes as nil.
type MCPTool struct {
	ID              string           `json:"id" bson:"id" validate:"required"`
	Name            string           `json:"name" bson:"name" validate:"required"`
	Description     string           `json:"description" bson:"description" required:"false"`
	APIID           string           `json:"apiId" bson:"api_id" validate:"required"`
	Method          HTTPMethod       `json:"method" bson:"method" validate:"required,oneof=GET POST PUT DELETE PATCH" enum:"GET,POST,PUT,DELETE,PATCH"`
	Endpoint        string           `json:"endpoint" bson:"endpoint" validate:"required"`
	InputSchema     map[string]any   `json:"inputSchema,omitempty" bson:"input_schema,omitempty"`
	ResponseMapping *ResponseMapping `json:"responseMapping,omitempty" bson:"response_mapping,omitempty"`
}

// ResponseMapping extracts the useful part of an API response for the LLM
type ResponseMapping struct {
	SuccessPath   string      `json:"successPath,omitempty" bson:"success_path,omitempty" doc:"JMESPath expression applied to the response body"`
	ErrorHandling ErrorPolicy `json:"errorHandling,omitempty" bson:"error_handling,omitempty" validate:"omitempty,oneof=throw return-null passthrough" enum:"throw,return-null,passthrough"`
}

// MCPPrompt is a prompt fragment attached to an integration
type MCPPrompt struct {
	ID      string     `json:"id" bson:"id" validate:"required"`
	Name    string     `json:"name" bson:"name" validate:"required"`
	Type    PromptType `json:"type" bson:"type" validate:"required,oneof=system contextual" enum:"system,contextual"`
	Content string     `json:"content" bson:"content" required:"false"`
}

// MCPResource is a named, typed, URI-addressed resource reference
type MCPResource struct {
	ID   string `json:"id" bson:"id" validate:"required"`
	Name string `json:"name" bson:"name" validate:"required"`
	Type string `json:"type" bson:"type" validate:"required"`
	URI  string `json:"uri" bson:"uri" validate:"required,uri"`
}

// MCPConfiguration holds the global generation parameters
type MCPConfiguration struct {
	GlobalPrompt string  `json:"globalPrompt" bson:"global_prompt" required:"false"`
	Model        string  `json:"model" bson:"model" required:"false"`
	Temperature  float64 `json:"temperature" bson:"temperature" required:"false" validate:"min=0,max=2"`
	MaxTokens    int     `json:"maxTokens" bson:"max_tokens" required:"false" validate:"min=0"`
}

// Position is a point on the builder canvas
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FlowNodeData is the label payload rendered inside a canvas node
type FlowNodeData struct {
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
	RefID  string `json:"refId,omitempty" doc:"ID of the integration entity this node projects"`
}

// FlowNode is a canvas node
type FlowNode struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Position Position     `json:"position"`
	Data     FlowNodeData `json:"data"`
}

// FlowEdge connects two canvas nodes
type FlowEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}
