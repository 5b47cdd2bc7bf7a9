package v0

import (
	"time"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// Metadata represents pagination metadata
type Metadata struct {
	NextCursor string `json:"nextCursor,omitempty"`
	Count      int    `json:"count,omitempty"`
}

// IntegrationListResponse represents the paginated integration list response
type IntegrationListResponse struct {
	Integrations []model.Integration `json:"integrations"`
	Metadata     *Metadata           `json:"metadata,omitempty"`
}

// ExecutionStep is one entry of an execution trace
type ExecutionStep struct {
	Step       int    `json:"step"`
	Action     string `json:"action"`
	Status     string `json:"status"`
	DurationMS int    `json:"durationMs"`
	Detail     string `json:"detail,omitempty"`
}

// ExecutionResult is returned by an integration test run
type ExecutionResult struct {
	Success       bool            `json:"success"`
	IntegrationID string          `json:"integrationId"`
	Query         string          `json:"query"`
	Result        string          `json:"result"`
	Steps         []ExecutionStep `json:"steps"`
	TokensUsed    int             `json:"tokensUsed"`
	Cost          float64         `json:"cost"`
	ExecutedAt    time.Time       `json:"executedAt"`
}

// UsageStats are the counters shown on the dashboard
type UsageStats struct {
	TotalRequests      int     `json:"totalRequests"`
	SuccessRate        float64 `json:"successRate"`
	AverageLatencyMS   int     `json:"averageLatencyMs"`
	ActiveIntegrations int     `json:"activeIntegrations"`
	TokensUsed         int     `json:"tokensUsed"`
	TotalCost          float64 `json:"totalCost"`
}

// SessionState is the editing state of one builder session
type SessionState struct {
	SessionID    string             `json:"sessionId"`
	Integration  *model.Integration `json:"integration"`
	SelectedNode *model.FlowNode    `json:"selectedNode"`
}

// Flow is the canvas projection of an integration
type Flow struct {
	Nodes []model.FlowNode `json:"nodes"`
	Edges []model.FlowEdge `json:"edges"`
}

// ValidationResult lists every problem found in an integration
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
