// Package registry dispatches node types to their factories.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opsdeck/opsdeck/pkg/protocol"
)

// Registry maps node type identifiers to factories. The set of types
// is fixed at startup; execution never mutates it.
type Registry struct {
	logger        *slog.Logger
	nodeFactories map[string]protocol.NodeFactory
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger:        log,
		nodeFactories: make(map[string]protocol.NodeFactory),
	}
}

func (r *Registry) RegisterNode(factory protocol.NodeFactory) {
	r.nodeFactories[factory.ID()] = factory
}

// CreateNode instantiates a node of the given type. An unregistered
// type is an error naming the type, which the executor surfaces as a
// failed run.
func (r *Registry) CreateNode(ctx context.Context, nodeType, nodeID string, config map[string]any) (protocol.Node, error) {
	factory, ok := r.nodeFactories[nodeType]
	if !ok {
		return nil, fmt.Errorf("unknown node type: %s", nodeType)
	}

	return factory.Create(ctx, nodeID, config)
}

// Factory returns the factory registered for a node type.
func (r *Registry) Factory(nodeType string) (protocol.NodeFactory, error) {
	factory, ok := r.nodeFactories[nodeType]
	if !ok {
		return nil, fmt.Errorf("unknown node type: %s", nodeType)
	}

	return factory, nil
}

// NodeTypes returns the registered type identifiers.
func (r *Registry) NodeTypes() []string {
	types := make([]string, 0, len(r.nodeFactories))
	for nodeType := range r.nodeFactories {
		types = append(types, nodeType)
	}

	return types
}

// HealthCheck reports whether the registry has any factories.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.nodeFactories) == 0 {
		return "no node factories registered", false
	}

	return fmt.Sprintf("%d node types registered", len(r.nodeFactories)), true
}
