// Package file provides file-based persistence for local development
// and tests. Each collection is a directory of JSON documents under
// the configured root.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// Persistence implements persistence.Persistence on the file system.
type Persistence struct {
	root string

	workflows    *WorkflowRepository
	runs         *RunRepository
	teams        *TeamRepository
	engineers    *EngineerRepository
	runbooks     *RunbookRepository
	projects     *ProjectRepository
	slackConfigs *SlackConfigRepository
}

// NewPersistence creates a file-backed persistence rooted at the given
// directory. A file:// prefix is accepted and stripped.
func NewPersistence(root string) persistence.Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:         cleanRoot,
		workflows:    NewWorkflowRepository(cleanRoot),
		runs:         NewRunRepository(cleanRoot),
		teams:        NewTeamRepository(cleanRoot),
		engineers:    NewEngineerRepository(cleanRoot),
		runbooks:     NewRunbookRepository(cleanRoot),
		projects:     NewProjectRepository(cleanRoot),
		slackConfigs: NewSlackConfigRepository(cleanRoot),
	}
}

// Close performs any necessary cleanup. Nothing to do for files.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return fp.workflows
}

func (fp *Persistence) RunRepository() persistence.RunRepository {
	return fp.runs
}

func (fp *Persistence) TeamRepository() persistence.TeamRepository {
	return fp.teams
}

func (fp *Persistence) EngineerRepository() persistence.EngineerRepository {
	return fp.engineers
}

func (fp *Persistence) RunbookRepository() persistence.RunbookRepository {
	return fp.runbooks
}

func (fp *Persistence) ProjectRepository() persistence.ProjectRepository {
	return fp.projects
}

func (fp *Persistence) SlackConfigRepository() persistence.SlackConfigRepository {
	return fp.slackConfigs
}
