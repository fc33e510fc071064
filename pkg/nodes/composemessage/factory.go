package composemessage

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/protocol"
)

type Factory struct{}

func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewComposeMessageNode(id, config)
}

func (f *Factory) ID() string {
	return models.NodeTypeComposeMessage
}

func (f *Factory) Name() string {
	return "Compose Message"
}

func (f *Factory) Description() string {
	return "Renders a message template, replacing {{key}} placeholders with execution context values"
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"messageTemplate": map[string]any{
				"type":        "string",
				"description": "Template text. Placeholders like {{teamName}} are replaced from context.",
				"examples": []string{
					"Team: {{teamName}}",
					"{{engineerName}} is on call for {{teamName}}",
				},
			},
		},
	}
}
