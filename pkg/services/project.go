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

// Board manages kanban projects, their columns and cards.
type Board struct {
	persistence persistence.Persistence
	validate    *validator.Validate
}

func NewBoard(persistence persistence.Persistence) *Board {
	return &Board{
		persistence: persistence,
		validate:    validator.New(),
	}
}

func (b *Board) ListProjects(ctx context.Context) ([]*models.Project, error) {
	projects, err := b.persistence.ProjectRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func (b *Board) FetchProject(ctx context.Context, id string) (*models.Project, error) {
	return b.persistence.ProjectRepository().GetByID(ctx, id)
}

func (b *Board) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	err := b.validate.Struct(project)
	if err != nil {
		return nil, NewValidationError("CreateProject", "INVALID_PROJECT", err.Error(), ErrInvalidRequest)
	}

	now := time.Now().UTC()
	project.ID = uuid.New().String()
	project.CreatedAt = now
	project.UpdatedAt = now

	err = b.persistence.ProjectRepository().Save(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

func (b *Board) UpdateProject(ctx context.Context, id string, project *models.Project) (*models.Project, error) {
	existing, err := b.persistence.ProjectRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = b.validate.Struct(project)
	if err != nil {
		return nil, NewValidationError("UpdateProject", "INVALID_PROJECT", err.Error(), ErrInvalidRequest)
	}

	project.ID = id
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = time.Now().UTC()

	err = b.persistence.ProjectRepository().Save(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

func (b *Board) DeleteProject(ctx context.Context, id string) error {
	_, err := b.persistence.ProjectRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = b.persistence.ProjectRepository().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func (b *Board) ListColumns(ctx context.Context, projectID string) ([]*models.Column, error) {
	_, err := b.persistence.ProjectRepository().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	columns, err := b.persistence.ProjectRepository().Columns(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	return columns, nil
}

func (b *Board) CreateColumn(ctx context.Context, column *models.Column) (*models.Column, error) {
	err := b.validate.Struct(column)
	if err != nil {
		return nil, NewValidationError("CreateColumn", "INVALID_COLUMN", err.Error(), ErrInvalidRequest)
	}

	_, err = b.persistence.ProjectRepository().GetByID(ctx, column.ProjectID)
	if err != nil {
		if persistence.IsNotFound(err) {
			return nil, NewValidationError("CreateColumn", "UNKNOWN_PROJECT",
				fmt.Sprintf("project %s does not exist", column.ProjectID), ErrColumnProjectMissing)
		}

		return nil, err
	}

	now := time.Now().UTC()
	column.ID = uuid.New().String()
	column.CreatedAt = now
	column.UpdatedAt = now

	err = b.persistence.ProjectRepository().SaveColumn(ctx, column)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	return column, nil
}

func (b *Board) UpdateColumn(ctx context.Context, id string, column *models.Column) (*models.Column, error) {
	err := b.validate.Struct(column)
	if err != nil {
		return nil, NewValidationError("UpdateColumn", "INVALID_COLUMN", err.Error(), ErrInvalidRequest)
	}

	column.ID = id
	column.UpdatedAt = time.Now().UTC()

	err = b.persistence.ProjectRepository().SaveColumn(ctx, column)
	if err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}

	return column, nil
}

func (b *Board) DeleteColumn(ctx context.Context, id string) error {
	err := b.persistence.ProjectRepository().DeleteColumn(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	return nil
}

func (b *Board) ListCards(ctx context.Context, columnID string) ([]*models.Card, error) {
	cards, err := b.persistence.ProjectRepository().Cards(ctx, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return cards, nil
}

func (b *Board) CreateCard(ctx context.Context, card *models.Card) (*models.Card, error) {
	err := b.validate.Struct(card)
	if err != nil {
		return nil, NewValidationError("CreateCard", "INVALID_CARD", err.Error(), ErrInvalidRequest)
	}

	now := time.Now().UTC()
	card.ID = uuid.New().String()
	card.CreatedAt = now
	card.UpdatedAt = now

	err = b.persistence.ProjectRepository().SaveCard(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return card, nil
}

// UpdateCard rewrites a card, including moves between columns: the
// client sends the destination column and position.
func (b *Board) UpdateCard(ctx context.Context, id string, card *models.Card) (*models.Card, error) {
	err := b.validate.Struct(card)
	if err != nil {
		return nil, NewValidationError("UpdateCard", "INVALID_CARD", err.Error(), ErrInvalidRequest)
	}

	card.ID = id
	card.UpdatedAt = time.Now().UTC()

	err = b.persistence.ProjectRepository().SaveCard(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return card, nil
}

// ColumnOrder is one column's card ordering in a batch reorder.
type ColumnOrder struct {
	ColumnID string   `json:"column_id" validate:"required"`
	CardIDs  []string `json:"card_ids"`
}

// ReorderCards applies a drag-drop result in one call: every listed
// column gets its cards re-positioned in the given order. Cards moving
// between columns are handled as long as both columns are listed.
func (b *Board) ReorderCards(ctx context.Context, orders []ColumnOrder) error {
	known := map[string]*models.Card{}

	for _, order := range orders {
		err := b.validate.Struct(order)
		if err != nil {
			return NewValidationError("ReorderCards", "INVALID_ORDER", err.Error(), ErrInvalidRequest)
		}

		cards, err := b.persistence.ProjectRepository().Cards(ctx, order.ColumnID)
		if err != nil {
			return fmt.Errorf("failed to load cards: %w", err)
		}

		for _, card := range cards {
			known[card.ID] = card
		}
	}

	now := time.Now().UTC()

	for _, order := range orders {
		for position, cardID := range order.CardIDs {
			card, ok := known[cardID]
			if !ok {
				return NewValidationError("ReorderCards", "UNKNOWN_CARD",
					fmt.Sprintf("card %s is not in any listed column", cardID), ErrInvalidRequest)
			}

			card.ColumnID = order.ColumnID
			card.Position = position
			card.UpdatedAt = now

			err := b.persistence.ProjectRepository().SaveCard(ctx, card)
			if err != nil {
				return fmt.Errorf("failed to reorder card %s: %w", cardID, err)
			}
		}
	}

	return nil
}

func (b *Board) DeleteCard(ctx context.Context, id string) error {
	err := b.persistence.ProjectRepository().DeleteCard(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	return nil
}
