package selectteam

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/protocol"
)

// Factory creates SelectTeamNode instances bound to a directory lookup.
type Factory struct {
	directory protocol.DirectoryLookup
}

func NewFactory(directory protocol.DirectoryLookup) protocol.NodeFactory {
	return &Factory{directory: directory}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewSelectTeamNode(id, config, f.directory)
}

func (f *Factory) ID() string {
	return models.NodeTypeSelectTeam
}

func (f *Factory) Name() string {
	return "Select Team"
}

func (f *Factory) Description() string {
	return "Resolves a team from the directory and exposes teamId and teamName to later nodes"
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"teamId": map[string]any{
				"type":        "string",
				"description": "Identifier of the team to resolve",
				"minLength":   1,
			},
		},
		"required": []string{"teamId"},
	}
}
