// Package composemessage implements the node that renders a message
// template against the execution context.
package composemessage

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/template"
)

// ComposeMessageNode expands {{key}} placeholders in its template using
// the current context and stores the result as composedMessage. An
// empty template is valid and composes an empty message.
type ComposeMessageNode struct {
	id              string
	messageTemplate string
}

func NewComposeMessageNode(id string, config map[string]any) (*ComposeMessageNode, error) {
	messageTemplate, _ := config["messageTemplate"].(string)

	return &ComposeMessageNode{
		id:              id,
		messageTemplate: messageTemplate,
	}, nil
}

func (n *ComposeMessageNode) ID() string {
	return n.id
}

func (n *ComposeMessageNode) Type() string {
	return models.NodeTypeComposeMessage
}

func (n *ComposeMessageNode) Execute(_ context.Context, execCtx models.ExecutionContext) (map[string]any, error) {
	return map[string]any{
		"composedMessage": template.Expand(n.messageTemplate, execCtx.Data),
	}, nil
}
