package file

import (
	"context"
	"sort"
	"time"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// WorkflowRepository stores workflow definitions as JSON documents.
type WorkflowRepository struct {
	workflows collection[models.Workflow]
}

func NewWorkflowRepository(root string) *WorkflowRepository {
	return &WorkflowRepository{
		workflows: newCollection[models.Workflow](root, "workflows"),
	}
}

func (wr *WorkflowRepository) GetAll(_ context.Context) ([]*models.Workflow, error) {
	workflows, err := wr.workflows.loadAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].CreatedAt.Before(workflows[j].CreatedAt)
	})

	return workflows, nil
}

func (wr *WorkflowRepository) GetByID(_ context.Context, id string) (*models.Workflow, error) {
	workflow, err := wr.workflows.load(id)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		return nil, persistence.NewStoreError("get workflow", id, persistence.ErrWorkflowNotFound)
	}

	return workflow, nil
}

func (wr *WorkflowRepository) Save(_ context.Context, workflow *models.Workflow) error {
	now := time.Now().UTC()
	if workflow.CreatedAt.IsZero() {
		workflow.CreatedAt = now
	}

	workflow.UpdatedAt = now

	return wr.workflows.store(workflow.ID, workflow)
}

func (wr *WorkflowRepository) Delete(_ context.Context, id string) error {
	return wr.workflows.remove(id)
}

// RunRepository stores run audit records as JSON documents.
type RunRepository struct {
	runs collection[models.WorkflowRun]
}

func NewRunRepository(root string) *RunRepository {
	return &RunRepository{
		runs: newCollection[models.WorkflowRun](root, "runs"),
	}
}

func (rr *RunRepository) Create(_ context.Context, run *models.WorkflowRun) error {
	return rr.runs.store(run.ID, run)
}

func (rr *RunRepository) Update(_ context.Context, run *models.WorkflowRun) error {
	if !rr.runs.exists(run.ID) {
		return persistence.NewStoreError("update run", run.ID, persistence.ErrRunNotFound)
	}

	return rr.runs.store(run.ID, run)
}

func (rr *RunRepository) GetByID(_ context.Context, id string) (*models.WorkflowRun, error) {
	run, err := rr.runs.load(id)
	if err != nil {
		return nil, err
	}

	if run == nil {
		return nil, persistence.NewStoreError("get run", id, persistence.ErrRunNotFound)
	}

	return run, nil
}

func (rr *RunRepository) GetByWorkflow(_ context.Context, workflowID string) ([]*models.WorkflowRun, error) {
	all, err := rr.runs.loadAll()
	if err != nil {
		return nil, err
	}

	matched := make([]*models.WorkflowRun, 0)

	for _, run := range all {
		if run.WorkflowID == workflowID {
			matched = append(matched, run)
		}
	}

	// Newest first, matching the run history view.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartedAt.After(matched[j].StartedAt)
	})

	return matched, nil
}
