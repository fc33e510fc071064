// Package testutil provides test data builders shared by test suites.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdeck/opsdeck/pkg/models"
)

// CreateTestWorkflow builds a minimal valid workflow that can be
// overridden per test.
func CreateTestWorkflow(overrides ...func(*models.Workflow)) *models.Workflow {
	workflow := &models.Workflow{
		ID:          uuid.New().String(),
		Name:        "Test Workflow",
		Description: "A workflow for testing",
		Nodes:       []*models.Node{},
		Edges:       []*models.Edge{},
	}

	for _, override := range overrides {
		override(workflow)
	}

	return workflow
}

// WithNodes sets the workflow's node list.
func WithNodes(nodes ...*models.Node) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Nodes = nodes
	}
}

// WithEdges sets the workflow's edge list.
func WithEdges(edges ...*models.Edge) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Edges = edges
	}
}

// CreateTestNode builds a node with default values that can be
// overridden per test.
func CreateTestNode(id string, overrides ...func(*models.Node)) *models.Node {
	node := &models.Node{
		ID:   id,
		Type: models.NodeTypeComposeMessage,
		Data: map[string]any{"messageTemplate": "hello {{teamName}}"},
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// WithType sets the node type.
func WithType(nodeType string) func(*models.Node) {
	return func(n *models.Node) {
		n.Type = nodeType
	}
}

// WithData sets the node configuration.
func WithData(data map[string]any) func(*models.Node) {
	return func(n *models.Node) {
		n.Data = data
	}
}

// Edge builds a directed edge between two node ids.
func Edge(id, source, target string) *models.Edge {
	return &models.Edge{ID: id, Source: source, Target: target}
}

// CreateTestRun builds a running WorkflowRun for the given workflow.
func CreateTestRun(workflowID string, overrides ...func(*models.WorkflowRun)) *models.WorkflowRun {
	run := &models.WorkflowRun{
		ID:         uuid.New().String(),
		WorkflowID: workflowID,
		Status:     models.RunStatusRunning,
		Logs:       map[string]models.NodeLog{},
		StartedAt:  time.Now().UTC(),
	}

	for _, override := range overrides {
		override(run)
	}

	return run
}

// WithStatus sets the run status.
func WithStatus(status models.RunStatus) func(*models.WorkflowRun) {
	return func(r *models.WorkflowRun) {
		r.Status = status
	}
}
