package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
	"github.com/opsdeck/opsdeck/pkg/registry"
)

// ErrWorkflowNotFound is returned when a workflow is not found.
var ErrWorkflowNotFound = persistence.ErrWorkflowNotFound

// Workflow edits and validates workflow definitions. Validation runs
// at save time so a broken graph fails in the editor, not mid-run.
type Workflow struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	validate    *validator.Validate
}

// NewWorkflow creates a new workflow service.
func NewWorkflow(persistence persistence.Persistence, reg *registry.Registry) *Workflow {
	return &Workflow{
		persistence: persistence,
		registry:    reg,
		validate:    validator.New(),
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := w.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List retrieves every stored workflow.
func (w *Workflow) List(ctx context.Context) ([]*models.Workflow, error) {
	workflows, err := w.persistence.WorkflowRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	return workflows, nil
}

// FetchByID retrieves a workflow by its ID.
func (w *Workflow) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := w.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return workflow, nil
}

// Create validates and stores a new workflow.
func (w *Workflow) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow == nil {
		return nil, ErrWorkflowNil
	}

	err := w.validateWorkflow(workflow)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	workflow.ID = uuid.New().String()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	err = w.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	return workflow, nil
}

// Update replaces an existing workflow's definition. The node and edge
// sets are replaced wholesale.
func (w *Workflow) Update(ctx context.Context, workflowID string, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow == nil {
		return nil, ErrWorkflowNil
	}

	existing, err := w.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	err = w.validateWorkflow(workflow)
	if err != nil {
		return nil, err
	}

	workflow.ID = workflowID
	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC()

	err = w.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to update workflow: %w", err)
	}

	return workflow, nil
}

// Delete removes a workflow by its ID.
func (w *Workflow) Delete(ctx context.Context, workflowID string) error {
	_, err := w.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return err
	}

	err = w.persistence.WorkflowRepository().Delete(ctx, workflowID)
	if err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}

	return nil
}

// Runs retrieves the run history of one workflow.
func (w *Workflow) Runs(ctx context.Context, workflowID string) ([]*models.WorkflowRun, error) {
	_, err := w.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	runs, err := w.persistence.RunRepository().GetByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

// FetchRun retrieves one run by its ID.
func (w *Workflow) FetchRun(ctx context.Context, runID string) (*models.WorkflowRun, error) {
	run, err := w.persistence.RunRepository().GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// validateWorkflow checks structural integrity: struct-level rules,
// unique node IDs, known node types, per-node config schemas, and edge
// endpoints. Cycles are allowed at edit time; the editor may hold a
// graph mid-rewire. The executor rejects them at run time.
func (w *Workflow) validateWorkflow(workflow *models.Workflow) error {
	err := w.validate.Struct(workflow)
	if err != nil {
		return NewValidationError("validateWorkflow", "INVALID_WORKFLOW", err.Error(), ErrInvalidRequest)
	}

	nodeIDs := make(map[string]bool, len(workflow.Nodes))

	for _, node := range workflow.Nodes {
		if nodeIDs[node.ID] {
			return NewValidationError("validateWorkflow", "DUPLICATE_NODE_ID",
				fmt.Sprintf("node id %s appears more than once", node.ID), ErrDuplicateNodeID)
		}

		nodeIDs[node.ID] = true

		err := w.registry.ValidateNodeConfig(node.Type, node.Data)
		if err != nil {
			return NewValidationError("validateWorkflow", "INVALID_NODE_CONFIG",
				fmt.Sprintf("node %s: %v", node.ID, err), ErrInvalidNodeConfig)
		}
	}

	for _, edge := range workflow.Edges {
		if !nodeIDs[edge.Source] {
			return NewValidationError("validateWorkflow", "INVALID_EDGE",
				fmt.Sprintf("edge %s references unknown source node %s", edge.ID, edge.Source), ErrInvalidEdge)
		}

		if !nodeIDs[edge.Target] {
			return NewValidationError("validateWorkflow", "INVALID_EDGE",
				fmt.Sprintf("edge %s references unknown target node %s", edge.ID, edge.Target), ErrInvalidEdge)
		}
	}

	return nil
}
