package selectengineer

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/protocol"
)

// Factory creates SelectEngineerNode instances bound to a directory
// lookup.
type Factory struct {
	directory protocol.DirectoryLookup
}

func NewFactory(directory protocol.DirectoryLookup) protocol.NodeFactory {
	return &Factory{directory: directory}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewSelectEngineerNode(id, config, f.directory)
}

func (f *Factory) ID() string {
	return models.NodeTypeSelectEngineer
}

func (f *Factory) Name() string {
	return "Select Engineer"
}

func (f *Factory) Description() string {
	return "Resolves an engineer from the directory, including their Slack user id for direct messages"
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"engineerId": map[string]any{
				"type":        "string",
				"description": "Identifier of the engineer to resolve",
				"minLength":   1,
			},
		},
		"required": []string{"engineerId"},
	}
}
