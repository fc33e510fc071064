// Package sendslack implements the node that delivers the composed
// message through the notifier.
package sendslack

import (
	"context"
	"errors"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/protocol"
)

// SendSlackMessageNode resolves message text and recipient, preferring
// context over node configuration, and dispatches via the notifier.
//
// Text: context composedMessage, else config message.
// Recipient: context engineerSlackId (direct), else config slackUserId
// (direct), else config channel. Empty strings count as absent.
//
// Delivery is a terminal side effect: it is not undone when a later
// node in the same run fails.
type SendSlackMessageNode struct {
	id          string
	message     string
	slackUserID string
	channel     string
	notifier    protocol.Notifier
}

func NewSendSlackMessageNode(id string, config map[string]any, notifier protocol.Notifier) (*SendSlackMessageNode, error) {
	message, _ := config["message"].(string)
	slackUserID, _ := config["slackUserId"].(string)
	channel, _ := config["channel"].(string)

	return &SendSlackMessageNode{
		id:          id,
		message:     message,
		slackUserID: slackUserID,
		channel:     channel,
		notifier:    notifier,
	}, nil
}

func (n *SendSlackMessageNode) ID() string {
	return n.id
}

func (n *SendSlackMessageNode) Type() string {
	return models.NodeTypeSendSlackMessage
}

func (n *SendSlackMessageNode) Execute(ctx context.Context, execCtx models.ExecutionContext) (map[string]any, error) {
	message := n.message
	if composed, ok := execCtx.Data["composedMessage"].(string); ok && composed != "" {
		message = composed
	}

	if message == "" {
		return nil, errors.New("no message to send")
	}

	if n.notifier == nil {
		return nil, errors.New("slack notifier is not configured")
	}

	slackUserID := n.slackUserID
	if contextSlackID, ok := execCtx.Data["engineerSlackId"].(string); ok && contextSlackID != "" {
		slackUserID = contextSlackID
	}

	var (
		result map[string]any
		err    error
	)

	switch {
	case slackUserID != "":
		result, err = n.notifier.SendDirect(ctx, slackUserID, message)
	case n.channel != "":
		result, err = n.notifier.SendToChannel(ctx, n.channel, message)
	default:
		return nil, errors.New("no recipient specified (slackUserId or channel)")
	}

	if err != nil {
		return nil, err
	}

	return map[string]any{
		"slackMessageSent": true,
		"slackResponse":    result,
	}, nil
}
