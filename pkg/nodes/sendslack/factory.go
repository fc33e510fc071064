package sendslack

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/protocol"
)

// Factory creates SendSlackMessageNode instances bound to a notifier.
type Factory struct {
	notifier protocol.Notifier
}

func NewFactory(notifier protocol.Notifier) protocol.NodeFactory {
	return &Factory{notifier: notifier}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewSendSlackMessageNode(id, config, f.notifier)
}

func (f *Factory) ID() string {
	return models.NodeTypeSendSlackMessage
}

func (f *Factory) Name() string {
	return "Send Slack Message"
}

func (f *Factory) Description() string {
	return "Delivers the composed message to a Slack channel or as a direct message"
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "Fallback text when the context has no composedMessage",
			},
			"slackUserId": map[string]any{
				"type":        "string",
				"description": "Fallback direct-message recipient when the context has no engineerSlackId",
			},
			"channel": map[string]any{
				"type":        "string",
				"description": "Channel to post to when no direct-message recipient resolves",
			},
		},
	}
}
