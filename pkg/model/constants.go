package model

// Defaults applied by NewIntegration
const (
	DefaultName         = "Untitled MCP"
	DefaultVersion      = "1.0.0"
	DefaultFormat       = "mcp-v1"
	DefaultAuthor       = "current-user"
	DefaultGlobalPrompt = "You are a helpful assistant that can interact with external APIs."
	DefaultModel        = "gpt-4"
	DefaultTemperature  = 0.7
	DefaultMaxTokens    = 2000
)

// ForkSuffix is appended to the name of a forked integration
const ForkSuffix = " (Fork)"

// Flow node types
const (
	NodeTypeIntegration = "mcp"
	NodeTypeAPI         = "api"
	NodeTypeTool        = "tool"
	NodeTypePrompt      = "prompt"
	NodeTypeResource    = "resource"
)
