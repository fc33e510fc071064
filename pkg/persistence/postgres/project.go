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

// ProjectRepository stores kanban boards, columns and cards.
type ProjectRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM projects
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	projects := make([]*models.Project, 0)

	for rows.Next() {
		var project models.Project

		err = rows.Scan(&project.ID, &project.Name, &project.Description, &project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}

		projects = append(projects, &project)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project models.Project

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&project.ID, &project.Name, &project.Description, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("get project", id, persistence.ErrProjectNotFound)
		}

		return nil, fmt.Errorf("failed to scan project: %w", err)
	}

	return &project, nil
}

func (r *ProjectRepository) Save(ctx context.Context, project *models.Project) error {
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}

	project.UpdatedAt = now

	query := `
		INSERT INTO projects (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	return nil
}

// Delete removes the project together with its columns and their
// cards.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	cardsQuery := `
		DELETE FROM board_cards
		WHERE column_id IN (SELECT id FROM board_columns WHERE project_id = $1)
	`

	_, err = tx.ExecContext(ctx, cardsQuery, id)
	if err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("failed to delete project cards: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM board_columns WHERE project_id = $1", id)
	if err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("failed to delete project columns: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("failed to delete project: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit project delete: %w", err)
	}

	return nil
}

// Columns returns the project's columns in board order.
func (r *ProjectRepository) Columns(ctx context.Context, projectID string) ([]*models.Column, error) {
	query := `
		SELECT id, project_id, name, position, created_at, updated_at
		FROM board_columns
		WHERE project_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	columns := make([]*models.Column, 0)

	for rows.Next() {
		var column models.Column

		err = rows.Scan(
			&column.ID,
			&column.ProjectID,
			&column.Name,
			&column.Position,
			&column.CreatedAt,
			&column.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}

		columns = append(columns, &column)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	return columns, nil
}

func (r *ProjectRepository) SaveColumn(ctx context.Context, column *models.Column) error {
	now := time.Now().UTC()
	if column.CreatedAt.IsZero() {
		column.CreatedAt = now
	}

	column.UpdatedAt = now

	query := `
		INSERT INTO board_columns (id, project_id, name, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			project_id = EXCLUDED.project_id,
			name = EXCLUDED.name,
			position = EXCLUDED.position,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		column.ID, column.ProjectID, column.Name, column.Position, column.CreatedAt, column.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save column: %w", err)
	}

	return nil
}

// DeleteColumn removes the column and its cards.
func (r *ProjectRepository) DeleteColumn(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM board_cards WHERE column_id = $1", id)
	if err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("failed to delete column cards: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM board_columns WHERE id = $1", id)
	if err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("failed to delete column: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit column delete: %w", err)
	}

	return nil
}

// Cards returns the column's cards in board order.
func (r *ProjectRepository) Cards(ctx context.Context, columnID string) ([]*models.Card, error) {
	query := `
		SELECT id, column_id, title, description, position, assignee_id, created_at, updated_at
		FROM board_cards
		WHERE column_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	cards := make([]*models.Card, 0)

	for rows.Next() {
		var card models.Card

		err = rows.Scan(
			&card.ID,
			&card.ColumnID,
			&card.Title,
			&card.Description,
			&card.Position,
			&card.AssigneeID,
			&card.CreatedAt,
			&card.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}

		cards = append(cards, &card)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return cards, nil
}

func (r *ProjectRepository) SaveCard(ctx context.Context, card *models.Card) error {
	now := time.Now().UTC()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}

	card.UpdatedAt = now

	query := `
		INSERT INTO board_cards (id, column_id, title, description, position, assignee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			column_id = EXCLUDED.column_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			position = EXCLUDED.position,
			assignee_id = EXCLUDED.assignee_id,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		card.ID,
		card.ColumnID,
		card.Title,
		card.Description,
		card.Position,
		card.AssigneeID,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}

	return nil
}

func (r *ProjectRepository) DeleteCard(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM board_cards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	return nil
}
