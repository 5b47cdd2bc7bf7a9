// Package builder projects integrations onto the builder canvas and drafts tools from API routes
package builder

import (
	"fmt"

	v0 "github.com/mcpbuilder/mcp-builder/pkg/api/v0"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

const (
	columnWidth = 300
	rowHeight   = 120
)

var columns = map[string]int{
	model.NodeTypeIntegration: 0,
	model.NodeTypePrompt:      1,
	model.NodeTypeAPI:         1,
	model.NodeTypeResource:    1,
	model.NodeTypeTool:        2,
}

// NodeID returns the canvas node id of an integration entity
func NodeID(nodeType, refID string) string {
	if nodeType == model.NodeTypeIntegration {
		return model.NodeTypeIntegration
	}
	return nodeType + "-" + refID
}

type layout struct {
	rows  map[int]int
	nodes []model.FlowNode
	edges []model.FlowEdge
}

func (l *layout) node(nodeType, refID, label, detail string) string {
	col := columns[nodeType]
	row := l.rows[col]
	l.rows[col]++

	id := NodeID(nodeType, refID)
	l.nodes = append(l.nodes, model.FlowNode{
		ID:       id,
		Type:     nodeType,
		Position: model.Position{X: float64(col * columnWidth), Y: float64(row * rowHeight)},
		Data:     model.FlowNodeData{Label: label, Detail: detail, RefID: refID},
	})
	return id
}

func (l *layout) edge(source, target string) {
	l.edges = append(l.edges, model.FlowEdge{
		ID:     fmt.Sprintf("e-%s-%s", source, target),
		Source: source,
		Target: target,
	})
}

// Flow lays out an integration as canvas nodes and edges. The integration node links
// to every API, prompt and resource; an API links to each tool that resolves to it.
// Tools with a dangling API reference are drawn without an edge.
func Flow(i *model.Integration) v0.Flow {
	if i == nil {
		return v0.Flow{Nodes: []model.FlowNode{}, Edges: []model.FlowEdge{}}
	}

	l := &layout{rows: make(map[int]int)}
	root := l.node(model.NodeTypeIntegration, i.ID, i.Name, i.Version)

	for _, api := range i.APIs {
		id := l.node(model.NodeTypeAPI, api.ID, api.Name, api.BaseURL)
		l.edge(root, id)
	}
	for _, tool := range i.Tools {
		id := l.node(model.NodeTypeTool, tool.ID, tool.Name, fmt.Sprintf("%s %s", tool.Method, tool.Endpoint))
		if _, ok := i.FindAPI(tool.APIID); ok {
			l.edge(NodeID(model.NodeTypeAPI, tool.APIID), id)
		}
	}
	for _, prompt := range i.Prompts {
		id := l.node(model.NodeTypePrompt, prompt.ID, prompt.Name, string(prompt.Type))
		l.edge(root, id)
	}
	for _, res := range i.Resources {
		id := l.node(model.NodeTypeResource, res.ID, res.Name, res.URI)
		l.edge(root, id)
	}

	if l.edges == nil {
		l.edges = []model.FlowEdge{}
	}
	return v0.Flow{Nodes: l.nodes, Edges: l.edges}
}
