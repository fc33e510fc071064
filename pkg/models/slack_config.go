package models

import "time"

// SlackConfig holds a workspace bot token. The most recently created
// config is the default when no token is supplied at startup.
type SlackConfig struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"      validate:"required"`
	BotToken       string    `json:"bot_token" validate:"required"`
	DefaultChannel string    `json:"default_channel,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
