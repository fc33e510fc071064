// Package persistence defines the storage abstraction for opsdeck
// domain records. Implementations live in the file and postgres
// subpackages.
package persistence

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/models"
)

// WorkflowRepository stores workflow definitions.
type WorkflowRepository interface {
	GetAll(ctx context.Context) ([]*models.Workflow, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error
}

// RunRepository stores workflow run audit records. Create persists the
// initial running state; Update writes the single terminal transition.
type RunRepository interface {
	Create(ctx context.Context, run *models.WorkflowRun) error
	Update(ctx context.Context, run *models.WorkflowRun) error
	GetByID(ctx context.Context, id string) (*models.WorkflowRun, error)
	GetByWorkflow(ctx context.Context, workflowID string) ([]*models.WorkflowRun, error)
}

// TeamRepository stores directory teams.
type TeamRepository interface {
	GetAll(ctx context.Context) ([]*models.Team, error)
	GetByID(ctx context.Context, id string) (*models.Team, error)
	Save(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id string) error
}

// EngineerRepository stores directory engineers.
type EngineerRepository interface {
	GetAll(ctx context.Context, teamID string) ([]*models.Engineer, error)
	GetByID(ctx context.Context, id string) (*models.Engineer, error)
	Save(ctx context.Context, engineer *models.Engineer) error
	Delete(ctx context.Context, id string) error
}

// RunbookRepository stores wiki pages plus their folders and tags.
type RunbookRepository interface {
	GetAll(ctx context.Context) ([]*models.Runbook, error)
	GetByID(ctx context.Context, id string) (*models.Runbook, error)
	Save(ctx context.Context, runbook *models.Runbook) error
	Delete(ctx context.Context, id string) error

	Folders(ctx context.Context) ([]*models.Folder, error)
	SaveFolder(ctx context.Context, folder *models.Folder) error
	DeleteFolder(ctx context.Context, id string) error

	Tags(ctx context.Context) ([]*models.Tag, error)
	SaveTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, id string) error
}

// ProjectRepository stores kanban boards, columns and cards.
type ProjectRepository interface {
	GetAll(ctx context.Context) ([]*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Save(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error

	Columns(ctx context.Context, projectID string) ([]*models.Column, error)
	SaveColumn(ctx context.Context, column *models.Column) error
	DeleteColumn(ctx context.Context, id string) error

	Cards(ctx context.Context, columnID string) ([]*models.Card, error)
	SaveCard(ctx context.Context, card *models.Card) error
	DeleteCard(ctx context.Context, id string) error
}

// SlackConfigRepository stores Slack workspace configurations.
type SlackConfigRepository interface {
	GetAll(ctx context.Context) ([]*models.SlackConfig, error)
	GetByID(ctx context.Context, id string) (*models.SlackConfig, error)
	GetDefault(ctx context.Context) (*models.SlackConfig, error)
	Save(ctx context.Context, config *models.SlackConfig) error
	Delete(ctx context.Context, id string) error
}

// Persistence bundles every repository behind one connection handle.
type Persistence interface {
	WorkflowRepository() WorkflowRepository
	RunRepository() RunRepository
	TeamRepository() TeamRepository
	EngineerRepository() EngineerRepository
	RunbookRepository() RunbookRepository
	ProjectRepository() ProjectRepository
	SlackConfigRepository() SlackConfigRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
