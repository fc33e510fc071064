package file

import (
	"context"
	"sort"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// ProjectRepository stores boards, columns and cards as JSON
// documents.
type ProjectRepository struct {
	projects collection[models.Project]
	columns  collection[models.Column]
	cards    collection[models.Card]
}

func NewProjectRepository(root string) *ProjectRepository {
	return &ProjectRepository{
		projects: newCollection[models.Project](root, "projects"),
		columns:  newCollection[models.Column](root, "columns"),
		cards:    newCollection[models.Card](root, "cards"),
	}
}

func (pr *ProjectRepository) GetAll(_ context.Context) ([]*models.Project, error) {
	projects, err := pr.projects.loadAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})

	return projects, nil
}

func (pr *ProjectRepository) GetByID(_ context.Context, id string) (*models.Project, error) {
	project, err := pr.projects.load(id)
	if err != nil {
		return nil, err
	}

	if project == nil {
		return nil, persistence.NewStoreError("get project", id, persistence.ErrProjectNotFound)
	}

	return project, nil
}

func (pr *ProjectRepository) Save(_ context.Context, project *models.Project) error {
	return pr.projects.store(project.ID, project)
}

// Delete removes a project and cascades to its columns and cards.
func (pr *ProjectRepository) Delete(ctx context.Context, id string) error {
	columns, err := pr.Columns(ctx, id)
	if err != nil {
		return err
	}

	for _, column := range columns {
		err = pr.DeleteColumn(ctx, column.ID)
		if err != nil {
			return err
		}
	}

	return pr.projects.remove(id)
}

// Columns returns a project's columns ordered by position.
func (pr *ProjectRepository) Columns(_ context.Context, projectID string) ([]*models.Column, error) {
	all, err := pr.columns.loadAll()
	if err != nil {
		return nil, err
	}

	columns := make([]*models.Column, 0)

	for _, column := range all {
		if column.ProjectID == projectID {
			columns = append(columns, column)
		}
	}

	sort.Slice(columns, func(i, j int) bool {
		return columns[i].Position < columns[j].Position
	})

	return columns, nil
}

func (pr *ProjectRepository) SaveColumn(_ context.Context, column *models.Column) error {
	return pr.columns.store(column.ID, column)
}

// DeleteColumn removes a column and cascades to its cards.
func (pr *ProjectRepository) DeleteColumn(ctx context.Context, id string) error {
	cards, err := pr.Cards(ctx, id)
	if err != nil {
		return err
	}

	for _, card := range cards {
		err = pr.cards.remove(card.ID)
		if err != nil {
			return err
		}
	}

	return pr.columns.remove(id)
}

// Cards returns a column's cards ordered by position.
func (pr *ProjectRepository) Cards(_ context.Context, columnID string) ([]*models.Card, error) {
	all, err := pr.cards.loadAll()
	if err != nil {
		return nil, err
	}

	cards := make([]*models.Card, 0)

	for _, card := range all {
		if card.ColumnID == columnID {
			cards = append(cards, card)
		}
	}

	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Position < cards[j].Position
	})

	return cards, nil
}

func (pr *ProjectRepository) SaveCard(_ context.Context, card *models.Card) error {
	return pr.cards.store(card.ID, card)
}

func (pr *ProjectRepository) DeleteCard(_ context.Context, id string) error {
	return pr.cards.remove(id)
}
