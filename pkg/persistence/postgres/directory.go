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

// TeamRepository stores directory teams.
type TeamRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *TeamRepository) GetAll(ctx context.Context) ([]*models.Team, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM teams
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	teams := make([]*models.Team, 0)

	for rows.Next() {
		var team models.Team

		err = rows.Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt, &team.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}

		teams = append(teams, &team)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	var team models.Team

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("get team", id, persistence.ErrTeamNotFound)
		}

		return nil, fmt.Errorf("failed to scan team: %w", err)
	}

	return &team, nil
}

func (r *TeamRepository) Save(ctx context.Context, team *models.Team) error {
	now := time.Now().UTC()
	if team.CreatedAt.IsZero() {
		team.CreatedAt = now
	}

	team.UpdatedAt = now

	query := `
		INSERT INTO teams (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		team.ID, team.Name, team.Description, team.CreatedAt, team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save team: %w", err)
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM teams WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// EngineerRepository stores directory engineers.
type EngineerRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// GetAll returns engineers, filtered to one team when teamID is
// non-empty.
func (r *EngineerRepository) GetAll(ctx context.Context, teamID string) ([]*models.Engineer, error) {
	query := `
		SELECT id, name, email, slack_user_id, team_id, created_at, updated_at
		FROM engineers
		WHERE $1 = '' OR team_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query engineers: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	engineers := make([]*models.Engineer, 0)

	for rows.Next() {
		var engineer models.Engineer

		err = rows.Scan(
			&engineer.ID,
			&engineer.Name,
			&engineer.Email,
			&engineer.SlackUserID,
			&engineer.TeamID,
			&engineer.CreatedAt,
			&engineer.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan engineer: %w", err)
		}

		engineers = append(engineers, &engineer)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating engineers: %w", err)
	}

	return engineers, nil
}

func (r *EngineerRepository) GetByID(ctx context.Context, id string) (*models.Engineer, error) {
	query := `
		SELECT id, name, email, slack_user_id, team_id, created_at, updated_at
		FROM engineers
		WHERE id = $1
	`

	var engineer models.Engineer

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&engineer.ID,
		&engineer.Name,
		&engineer.Email,
		&engineer.SlackUserID,
		&engineer.TeamID,
		&engineer.CreatedAt,
		&engineer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("get engineer", id, persistence.ErrEngineerNotFound)
		}

		return nil, fmt.Errorf("failed to scan engineer: %w", err)
	}

	return &engineer, nil
}

func (r *EngineerRepository) Save(ctx context.Context, engineer *models.Engineer) error {
	now := time.Now().UTC()
	if engineer.CreatedAt.IsZero() {
		engineer.CreatedAt = now
	}

	engineer.UpdatedAt = now

	query := `
		INSERT INTO engineers (id, name, email, slack_user_id, team_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			slack_user_id = EXCLUDED.slack_user_id,
			team_id = EXCLUDED.team_id,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		engineer.ID,
		engineer.Name,
		engineer.Email,
		engineer.SlackUserID,
		engineer.TeamID,
		engineer.CreatedAt,
		engineer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save engineer: %w", err)
	}

	return nil
}

func (r *EngineerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM engineers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete engineer: %w", err)
	}

	return nil
}
