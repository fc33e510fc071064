package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// SlackConfigRepository stores Slack workspace configurations.
type SlackConfigRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *SlackConfigRepository) GetAll(ctx context.Context) ([]*models.SlackConfig, error) {
	query := `
		SELECT id, name, bot_token, default_channel, created_at, updated_at
		FROM slack_configs
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query slack configs: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	configs := make([]*models.SlackConfig, 0)

	for rows.Next() {
		var config models.SlackConfig

		err = rows.Scan(
			&config.ID,
			&config.Name,
			&config.BotToken,
			&config.DefaultChannel,
			&config.CreatedAt,
			&config.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slack config: %w", err)
		}

		configs = append(configs, &config)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating slack configs: %w", err)
	}

	return configs, nil
}

func (r *SlackConfigRepository) GetByID(ctx context.Context, id string) (*models.SlackConfig, error) {
	query := `
		SELECT id, name, bot_token, default_channel, created_at, updated_at
		FROM slack_configs
		WHERE id = $1
	`

	var config models.SlackConfig

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&config.ID,
		&config.Name,
		&config.BotToken,
		&config.DefaultChannel,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("get slack config", id, persistence.ErrSlackConfigNotFound)
		}

		return nil, fmt.Errorf("failed to scan slack config: %w", err)
	}

	return &config, nil
}

// GetDefault returns the most recently created configuration.
func (r *SlackConfigRepository) GetDefault(ctx context.Context) (*models.SlackConfig, error) {
	query := `
		SELECT id, name, bot_token, default_channel, created_at, updated_at
		FROM slack_configs
		ORDER BY created_at DESC
		LIMIT 1
	`

	var config models.SlackConfig

	err := r.db.QueryRowContext(ctx, query).Scan(
		&config.ID,
		&config.Name,
		&config.BotToken,
		&config.DefaultChannel,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("get default slack config", "", persistence.ErrSlackConfigNotFound)
		}

		return nil, fmt.Errorf("failed to scan slack config: %w", err)
	}

	return &config, nil
}

func (r *SlackConfigRepository) Save(ctx context.Context, config *models.SlackConfig) error {
	now := time.Now().UTC()
	if config.CreatedAt.IsZero() {
		config.CreatedAt = now
	}

	config.UpdatedAt = now

	query := `
		INSERT INTO slack_configs (id, name, bot_token, default_channel, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			bot_token = EXCLUDED.bot_token,
			default_channel = EXCLUDED.default_channel,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		config.ID,
		config.Name,
		config.BotToken,
		config.DefaultChannel,
		config.CreatedAt,
		config.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save slack config: %w", err)
	}

	return nil
}

func (r *SlackConfigRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM slack_configs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete slack config: %w", err)
	}

	return nil
}
