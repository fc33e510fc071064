// Package web provides the REST API: workflow editing and execution,
// the directory, runbooks, boards and Slack configuration.
package web

import "github.com/opsdeck/opsdeck/pkg/models"

// WorkflowRequest is the request body for creating or replacing a
// workflow. The node and edge sets are replaced wholesale.
type WorkflowRequest struct {
	Name        string         `json:"name"        validate:"required,min=3"`
	Description string         `json:"description"`
	Nodes       []NodeRequest  `json:"nodes"       validate:"dive"`
	Edges       []EdgeRequest  `json:"edges"       validate:"dive"`
}

// NodeRequest is one node of a workflow graph.
type NodeRequest struct {
	ID        string         `json:"id"   validate:"required"`
	Type      string         `json:"type" validate:"required"`
	Data      map[string]any `json:"data"`
	PositionX int            `json:"position_x"`
	PositionY int            `json:"position_y"`
}

// EdgeRequest is one directed dependency of a workflow graph.
type EdgeRequest struct {
	ID     string `json:"id"`
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// ExecuteRequest is the body for synchronous and queued runs.
type ExecuteRequest struct {
	InitialData map[string]any `json:"initial_data"`
}

// ToModel converts the request into the domain representation.
func (r *WorkflowRequest) ToModel() *models.Workflow {
	nodes := make([]*models.Node, 0, len(r.Nodes))
	for _, node := range r.Nodes {
		data := node.Data
		if data == nil {
			data = map[string]any{}
		}

		nodes = append(nodes, &models.Node{
			ID:        node.ID,
			Type:      node.Type,
			Data:      data,
			PositionX: node.PositionX,
			PositionY: node.PositionY,
		})
	}

	edges := make([]*models.Edge, 0, len(r.Edges))
	for _, edge := range r.Edges {
		edges = append(edges, &models.Edge{
			ID:     edge.ID,
			Source: edge.Source,
			Target: edge.Target,
		})
	}

	return &models.Workflow{
		Name:        r.Name,
		Description: r.Description,
		Nodes:       nodes,
		Edges:       edges,
	}
}

// NodeTypeResponse describes one registered node type for the editor
// palette.
type NodeTypeResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Schema      map[string]any `json:"schema"`
}
