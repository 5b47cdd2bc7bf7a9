package database

import (
	"time"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// NewSeededMemoryDB creates an in-memory database holding the example integrations
func NewSeededMemoryDB(now time.Time) *MemoryDB {
	return NewMemoryDB(ExampleIntegrations(now)...)
}

// ExampleIntegrations returns the three integrations a fresh builder starts with
func ExampleIntegrations(now time.Time) []model.Integration {
	weather := model.NewIntegration("1", now.Add(-72*time.Hour))
	weather.Name = "Weather Assistant"
	weather.Description = "Answers questions about current conditions and forecasts"
	weather.Published = true
	weather.Rating = ptr(4.8)
	weather.Reviews = ptr(124)
	weather.Usage = ptr(15420)
	weather.Emoji = "🌤️"
	weather.UpdatedAt = now.Add(-24 * time.Hour)
	weather.APIs = []model.APIConfig{{
		ID:      "openweather",
		Name:    "OpenWeatherMap",
		BaseURL: "https://api.openweathermap.org/data/2.5",
		Auth:    model.AuthConfig{Type: model.AuthTypeAPIKey, Config: map[string]any{"in": "query", "name": "appid"}},
		Routes: []model.APIRoute{
			{ID: "current", Method: model.MethodGet, Path: "/weather", Description: "Current weather for a city"},
			{ID: "forecast", Method: model.MethodGet, Path: "/forecast", Description: "Five day forecast"},
		},
		Status: model.ConnectionStatusConnected,
	}}
	weather.Tools = []model.MCPTool{{
		ID:          "get_current_weather",
		Name:        "get_current_weather",
		Description: "Get the current weather for a city",
		APIID:       "openweather",
		Method:      model.MethodGet,
		Endpoint:    "/weather",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"q": map[string]any{"type": "string", "description": "City name"}},
			"required":   []any{"q"},
		},
		ResponseMapping: &model.ResponseMapping{SuccessPath: "main", ErrorHandling: model.ErrorPolicyThrow},
	}}
	weather.Prompts = []model.MCPPrompt{{
		ID:      "weather-system",
		Name:    "Weather persona",
		Type:    model.PromptTypeSystem,
		Content: "You are a concise weather assistant. Always state the unit of temperature.",
	}}

	github := model.NewIntegration("2", now.Add(-48*time.Hour))
	github.Name = "GitHub Helper"
	github.Description = "Lists repositories and opens issues"
	github.Published = true
	github.Rating = ptr(4.6)
	github.Reviews = ptr(89)
	github.Usage = ptr(8930)
	github.Emoji = "🐙"
	github.UpdatedAt = now.Add(-12 * time.Hour)
	github.APIs = []model.APIConfig{{
		ID:      "github",
		Name:    "GitHub REST",
		BaseURL: "https://api.github.com",
		Auth:    model.AuthConfig{Type: model.AuthTypeBearer},
		Routes: []model.APIRoute{
			{ID: "list-repos", Method: model.MethodGet, Path: "/user/repos", Description: "Repositories of the authenticated user"},
			{ID: "create-issue", Method: model.MethodPost, Path: "/repos/{owner}/{repo}/issues", Description: "Open an issue"},
		},
		Headers: map[string]string{"Accept": "application/vnd.github+json"},
		Status:  model.ConnectionStatusNoKey,
	}}
	github.Tools = []model.MCPTool{{
		ID:          "create_issue",
		Name:        "create_issue",
		Description: "Open an issue in a repository",
		APIID:       "github",
		Method:      model.MethodPost,
		Endpoint:    "/repos/{owner}/{repo}/issues",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"owner": map[string]any{"type": "string"},
				"repo":  map[string]any{"type": "string"},
				"title": map[string]any{"type": "string"},
			},
			"required": []any{"owner", "repo", "title"},
		},
		ResponseMapping: &model.ResponseMapping{SuccessPath: "html_url", ErrorHandling: model.ErrorPolicyPassthrough},
	}}
	github.Resources = []model.MCPResource{{
		ID:   "gh-docs",
		Name: "REST API docs",
		Type: "documentation",
		URI:  "https://docs.github.com/en/rest",
	}}

	slack := model.NewIntegration("3", now.Add(-6*time.Hour))
	slack.Name = "Slack Notifier"
	slack.Description = "Posts messages to Slack channels"
	slack.Emoji = "💬"
	slack.APIs = []model.APIConfig{{
		ID:      "slack",
		Name:    "Slack Web API",
		BaseURL: "https://slack.com/api",
		Auth:    model.AuthConfig{Type: model.AuthTypeOAuth2},
		Routes: []model.APIRoute{
			{ID: "post-message", Method: model.MethodPost, Path: "/chat.postMessage", Description: "Send a message"},
		},
		Status: model.ConnectionStatusError,
	}}

	return []model.Integration{weather, github, slack}
}

func ptr[T any](v T) *T {
	return &v
}
