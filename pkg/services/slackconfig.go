package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// SlackSettings manages stored workspace bot tokens.
type SlackSettings struct {
	persistence persistence.Persistence
	validate    *validator.Validate
}

func NewSlackSettings(persistence persistence.Persistence) *SlackSettings {
	return &SlackSettings{
		persistence: persistence,
		validate:    validator.New(),
	}
}

// List returns stored configs with tokens redacted. Tokens only leave
// the store toward the Slack client, never toward API consumers.
func (s *SlackSettings) List(ctx context.Context) ([]*models.SlackConfig, error) {
	configs, err := s.persistence.SlackConfigRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list slack configs: %w", err)
	}

	redacted := make([]*models.SlackConfig, 0, len(configs))
	for _, config := range configs {
		redacted = append(redacted, redact(config))
	}

	return redacted, nil
}

func (s *SlackSettings) Create(ctx context.Context, config *models.SlackConfig) (*models.SlackConfig, error) {
	err := s.validate.Struct(config)
	if err != nil {
		return nil, NewValidationError("CreateSlackConfig", "INVALID_SLACK_CONFIG", err.Error(), ErrInvalidRequest)
	}

	now := time.Now().UTC()
	config.ID = uuid.New().String()
	config.CreatedAt = now
	config.UpdatedAt = now

	err = s.persistence.SlackConfigRepository().Save(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create slack config: %w", err)
	}

	return redact(config), nil
}

// Fetch returns one config by id with the token redacted.
func (s *SlackSettings) Fetch(ctx context.Context, id string) (*models.SlackConfig, error) {
	config, err := s.persistence.SlackConfigRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return redact(config), nil
}

// Update replaces a stored config. An empty or redacted bot token keeps
// the existing one, so clients may echo back what List returned.
func (s *SlackSettings) Update(ctx context.Context, id string, config *models.SlackConfig) (*models.SlackConfig, error) {
	existing, err := s.persistence.SlackConfigRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if config.BotToken == "" || config.BotToken == redactedToken {
		config.BotToken = existing.BotToken
	}

	err = s.validate.Struct(config)
	if err != nil {
		return nil, NewValidationError("UpdateSlackConfig", "INVALID_SLACK_CONFIG", err.Error(), ErrInvalidRequest)
	}

	config.ID = id
	config.CreatedAt = existing.CreatedAt
	config.UpdatedAt = time.Now().UTC()

	err = s.persistence.SlackConfigRepository().Save(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to update slack config: %w", err)
	}

	return redact(config), nil
}

func (s *SlackSettings) Delete(ctx context.Context, id string) error {
	_, err := s.persistence.SlackConfigRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.persistence.SlackConfigRepository().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete slack config: %w", err)
	}

	return nil
}

// DefaultToken returns the bot token of the default config, used at
// startup when no token flag is supplied.
func (s *SlackSettings) DefaultToken(ctx context.Context) (string, error) {
	config, err := s.persistence.SlackConfigRepository().GetDefault(ctx)
	if err != nil {
		return "", err
	}

	return config.BotToken, nil
}

const redactedToken = "***"

func redact(config *models.SlackConfig) *models.SlackConfig {
	clone := *config
	clone.BotToken = redactedToken

	return &clone
}
