package sendslack

import (
	"context"
	"errors"
	"testing"

	"github.com/opsdeck/opsdeck/pkg/mocks"
	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSendSlackMessageNode_DirectFromContext(t *testing.T) {
	notifier := &mocks.MockNotifier{}
	notifier.On("SendDirect", mock.Anything, "U123", "hello").
		Return(map[string]any{"ok": true, "channel": "D1"}, nil)

	node, err := NewSendSlackMessageNode("n1", map[string]any{}, notifier)
	require.NoError(t, err)

	execCtx := models.NewExecutionContext("run-1", "wf-1", map[string]any{
		"composedMessage": "hello",
		"engineerSlackId": "U123",
	})

	output, err := node.Execute(context.Background(), execCtx)
	require.NoError(t, err)

	assert.Equal(t, true, output["slackMessageSent"])
	assert.NotNil(t, output["slackResponse"])
	notifier.AssertExpectations(t)
}

func TestSendSlackMessageNode_ContextSlackIDBeatsConfig(t *testing.T) {
	notifier := &mocks.MockNotifier{}
	notifier.On("SendDirect", mock.Anything, "U-context", "hi").
		Return(map[string]any{"ok": true}, nil)

	node, err := NewSendSlackMessageNode("n1", map[string]any{"slackUserId": "U-config"}, notifier)
	require.NoError(t, err)

	execCtx := models.NewExecutionContext("run-1", "wf-1", map[string]any{
		"composedMessage": "hi",
		"engineerSlackId": "U-context",
	})

	_, err = node.Execute(context.Background(), execCtx)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestSendSlackMessageNode_ChannelFallback(t *testing.T) {
	notifier := &mocks.MockNotifier{}
	notifier.On("SendToChannel", mock.Anything, "#oncall", "configured text").
		Return(map[string]any{"ok": true}, nil)

	node, err := NewSendSlackMessageNode("n1", map[string]any{
		"message": "configured text",
		"channel": "#oncall",
	}, notifier)
	require.NoError(t, err)

	output, err := node.Execute(context.Background(), models.NewExecutionContext("run-1", "wf-1", nil))
	require.NoError(t, err)
	assert.Equal(t, true, output["slackMessageSent"])
	notifier.AssertExpectations(t)
}

func TestSendSlackMessageNode_NoMessage(t *testing.T) {
	node, err := NewSendSlackMessageNode("n1", map[string]any{"channel": "#oncall"}, &mocks.MockNotifier{})
	require.NoError(t, err)

	_, err = node.Execute(context.Background(), models.NewExecutionContext("run-1", "wf-1", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no message to send")
}

func TestSendSlackMessageNode_NoRecipient(t *testing.T) {
	node, err := NewSendSlackMessageNode("n1", map[string]any{"message": "orphan"}, &mocks.MockNotifier{})
	require.NoError(t, err)

	_, err = node.Execute(context.Background(), models.NewExecutionContext("run-1", "wf-1", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recipient specified")
}

func TestSendSlackMessageNode_EmptyContextSlackIDIsAbsent(t *testing.T) {
	// selectEngineer merges engineerSlackId even when the engineer has
	// no Slack account; an empty value must not be used as a recipient.
	notifier := &mocks.MockNotifier{}
	notifier.On("SendToChannel", mock.Anything, "#oncall", "hi").
		Return(map[string]any{"ok": true}, nil)

	node, err := NewSendSlackMessageNode("n1", map[string]any{"channel": "#oncall"}, notifier)
	require.NoError(t, err)

	execCtx := models.NewExecutionContext("run-1", "wf-1", map[string]any{
		"composedMessage": "hi",
		"engineerSlackId": "",
	})

	_, err = node.Execute(context.Background(), execCtx)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestSendSlackMessageNode_DeliveryFailurePropagates(t *testing.T) {
	notifier := &mocks.MockNotifier{}
	notifier.On("SendToChannel", mock.Anything, "#oncall", "hi").
		Return(nil, errors.New("slack chat.postMessage returned error: channel_not_found"))

	node, err := NewSendSlackMessageNode("n1", map[string]any{
		"message": "hi",
		"channel": "#oncall",
	}, notifier)
	require.NoError(t, err)

	_, err = node.Execute(context.Background(), models.NewExecutionContext("run-1", "wf-1", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}
