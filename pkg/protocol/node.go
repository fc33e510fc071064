// Package protocol defines the contracts between the workflow engine
// and its node executors and collaborators.
package protocol

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/models"
)

// Node is one executable step instance. Execute consumes the current
// execution context and returns the output mapping to merge into it.
// Any returned error is fatal to the run.
type Node interface {
	// ID returns the node's id within its workflow
	ID() string

	// Type returns the node type identifier
	Type() string

	// Execute performs the node's effect and returns context updates
	Execute(ctx context.Context, execCtx models.ExecutionContext) (map[string]any, error)
}

// NodeFactory creates node instances and provides metadata about the
// node type.
type NodeFactory interface {
	// Create creates a new node instance with the given configuration
	Create(ctx context.Context, id string, config map[string]any) (Node, error)

	// ID returns the unique identifier for this node type
	ID() string

	// Name returns the human-readable name for this node type
	Name() string

	// Description returns a description of what this node does
	Description() string

	// Schema returns the JSON schema for configuring this node
	Schema() map[string]any
}
