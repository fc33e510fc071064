// Package slack implements the outbound notifier against the Slack
// Web API (chat.postMessage, conversations.open).
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://slack.com/api"

const requestTimeout = 30 * time.Second

// Client posts messages on behalf of a bot token. It is constructed
// once at startup and injected wherever a protocol.Notifier is needed;
// there is no lazy global instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *slog.Logger
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(token string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New("slack bot token is required")
	}

	client := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		token:      token,
		logger:     logger.With("module", "slack"),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// SendToChannel posts text to a channel identifier.
func (c *Client) SendToChannel(ctx context.Context, channel, text string) (map[string]any, error) {
	result, err := c.call(ctx, "chat.postMessage", map[string]any{
		"channel": channel,
		"text":    text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send Slack message: %w", err)
	}

	return result, nil
}

// SendDirect opens a DM channel with the user and posts text to it.
func (c *Client) SendDirect(ctx context.Context, userID, text string) (map[string]any, error) {
	opened, err := c.call(ctx, "conversations.open", map[string]any{
		"users": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open DM channel: %w", err)
	}

	dmChannel, ok := opened["channel"].(map[string]any)
	if !ok {
		return nil, errors.New("failed to open DM channel: no channel in response")
	}

	channelID, ok := dmChannel["id"].(string)
	if !ok || channelID == "" {
		return nil, errors.New("failed to open DM channel: missing channel id")
	}

	result, err := c.call(ctx, "chat.postMessage", map[string]any{
		"channel": channelID,
		"text":    text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send DM: %w", err)
	}

	return result, nil
}

func (c *Client) call(ctx context.Context, method string, payload map[string]any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", "method", method, "error", err)
		}
	}()

	var result map[string]any

	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	if okFlag, _ := result["ok"].(bool); !okFlag {
		apiError, _ := result["error"].(string)
		if apiError == "" {
			apiError = fmt.Sprintf("status %d", resp.StatusCode)
		}

		return nil, fmt.Errorf("slack %s returned error: %s", method, apiError)
	}

	return result, nil
}
