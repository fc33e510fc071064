package protocol

import "context"

// Notifier delivers a text message to an outbound channel. The Slack
// client implements it; tests substitute a mock. Sends are terminal
// side effects: a delivered message is not undone when a later node in
// the same run fails.
type Notifier interface {
	// SendToChannel posts text to a channel identifier
	SendToChannel(ctx context.Context, channel, text string) (map[string]any, error)

	// SendDirect posts text to a user's direct-message channel
	SendDirect(ctx context.Context, userID, text string) (map[string]any, error)
}
