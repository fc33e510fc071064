package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/pkg/eventbus"
	"github.com/opsdeck/opsdeck/pkg/events"
	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/otelhelper"
	"github.com/opsdeck/opsdeck/pkg/persistence"
	"github.com/opsdeck/opsdeck/pkg/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Result is what the caller of Execute receives on success.
type Result struct {
	RunID  string                    `json:"run_id"`
	Status models.RunStatus          `json:"status"`
	Logs   map[string]models.NodeLog `json:"logs"`
}

// Executor orchestrates one workflow run: it resolves the stored
// graph, computes the execution order, drives the node executors
// sequentially against a shared execution context, and guarantees the
// run record reaches a terminal status.
//
// Nodes execute strictly one at a time; independent branches are not
// fanned out. Concurrent Execute calls are independent: each gets its
// own run record and context.
type Executor struct {
	workflows persistence.WorkflowRepository
	runs      persistence.RunRepository
	registry  *registry.Registry
	eventBus  eventbus.EventPublisher
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewExecutor wires the orchestrator. eventBus may be nil, in which
// case lifecycle events are skipped.
func NewExecutor(
	workflows persistence.WorkflowRepository,
	runs persistence.RunRepository,
	reg *registry.Registry,
	eventBus eventbus.EventPublisher,
	logger *slog.Logger,
) *Executor {
	return &Executor{
		workflows: workflows,
		runs:      runs,
		registry:  reg,
		eventBus:  eventBus,
		tracer:    otel.Tracer("opsdeck/workflow"),
		logger:    logger.With("module", "workflow_executor"),
	}
}

// Execute runs workflow workflowID with the given seed data.
//
// A missing workflow fails before any run record exists. Once the run
// record is created it always reaches success or failed, even when the
// orderer rejects the graph. Node failures stop execution immediately;
// already-delivered notifications are not undone.
func (e *Executor) Execute(ctx context.Context, workflowID string, initialData map[string]any) (*Result, error) {
	logger := e.logger.With("workflow_id", workflowID)

	wf, err := e.workflows.GetByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workflow %s: %w", workflowID, err)
	}

	run := &models.WorkflowRun{
		ID:         uuid.New().String(),
		WorkflowID: workflowID,
		Status:     models.RunStatusRunning,
		Logs:       make(map[string]models.NodeLog),
		StartedAt:  time.Now().UTC(),
	}

	err = e.runs.Create(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("failed to create run record: %w", err)
	}

	logger = logger.With("run_id", run.ID)
	logger.InfoContext(ctx, "Starting workflow run",
		"nodes", len(wf.Nodes), "edges", len(wf.Edges))

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "workflow.run",
		attribute.String(otelhelper.WorkflowIDKey, workflowID),
		attribute.String(otelhelper.RunIDKey, run.ID),
	)
	defer span.End()

	e.publishStarted(ctx, run)

	err = e.runNodes(ctx, wf, run, initialData)
	if err != nil {
		otelhelper.SetError(span, err)
		e.finalize(ctx, logger, run, models.RunStatusFailed, err.Error())
		e.publishFailed(ctx, run, err)

		return nil, err
	}

	e.finalize(ctx, logger, run, models.RunStatusSuccess, "")
	e.publishFinished(ctx, run)

	return &Result{
		RunID:  run.ID,
		Status: run.Status,
		Logs:   run.Logs,
	}, nil
}

// runNodes executes the ordered graph, accumulating per-node logs on
// the run. A failing node leaves no log entry of its own; earlier
// entries stay on the run so the audit trail shows what did execute.
func (e *Executor) runNodes(ctx context.Context, wf *models.Workflow, run *models.WorkflowRun, initialData map[string]any) error {
	order, err := ExecutionOrder(wf.Nodes, wf.Edges)
	if err != nil {
		return fmt.Errorf("failed to order workflow graph: %w", err)
	}

	execCtx := models.NewExecutionContext(run.ID, wf.ID, initialData)

	for _, nodeID := range order {
		node := wf.NodeByID(nodeID)
		if node == nil {
			// Stale edge referencing a removed node.
			continue
		}

		output, err := e.executeNode(ctx, node, execCtx)
		if err != nil {
			return fmt.Errorf("node %s failed: %w", node.ID, err)
		}

		run.Logs[node.ID] = models.NodeLog{
			Type:      node.Type,
			Input:     execCtx.Snapshot(),
			Output:    output,
			Timestamp: time.Now().UTC(),
		}

		execCtx.Merge(output)
	}

	return nil
}

func (e *Executor) executeNode(ctx context.Context, node *models.Node, execCtx models.ExecutionContext) (map[string]any, error) {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "node.execute",
		attribute.String(otelhelper.NodeIDKey, node.ID),
		attribute.String(otelhelper.NodeTypeKey, node.Type),
	)
	defer span.End()

	instance, err := e.registry.CreateNode(ctx, node.Type, node.ID, node.Data)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	output, err := instance.Execute(ctx, execCtx)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	return output, nil
}

// finalize writes the single terminal transition. A failed update is
// logged, not raised: the caller's error (if any) is the one that
// matters.
func (e *Executor) finalize(ctx context.Context, logger *slog.Logger, run *models.WorkflowRun, status models.RunStatus, errMessage string) {
	now := time.Now().UTC()
	run.Status = status
	run.FinishedAt = &now
	run.Error = errMessage

	err := e.runs.Update(ctx, run)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to persist terminal run status",
			"status", status, "error", err)

		return
	}

	logger.InfoContext(ctx, "Workflow run finished",
		"status", status, "logged_nodes", len(run.Logs))
}

func (e *Executor) publishStarted(ctx context.Context, run *models.WorkflowRun) {
	if e.eventBus == nil {
		return
	}

	e.publish(ctx, run, events.WorkflowRunStarted{
		BaseEvent: e.baseEvent(events.WorkflowRunStartedEvent, run),
	})
}

func (e *Executor) publishFinished(ctx context.Context, run *models.WorkflowRun) {
	if e.eventBus == nil {
		return
	}

	e.publish(ctx, run, events.WorkflowRunFinished{
		BaseEvent: e.baseEvent(events.WorkflowRunFinishedEvent, run),
		NodeCount: len(run.Logs),
		Duration:  run.FinishedAt.Sub(run.StartedAt),
	})
}

func (e *Executor) publishFailed(ctx context.Context, run *models.WorkflowRun, runErr error) {
	if e.eventBus == nil {
		return
	}

	e.publish(ctx, run, events.WorkflowRunFailed{
		BaseEvent: e.baseEvent(events.WorkflowRunFailedEvent, run),
		Error:     runErr.Error(),
	})
}

func (e *Executor) publish(ctx context.Context, run *models.WorkflowRun, event eventbus.Event) {
	err := e.eventBus.Publish(ctx, run.WorkflowID, event)
	if err != nil {
		e.logger.WarnContext(ctx, "Failed to publish run event",
			"event_type", event.GetType(), "run_id", run.ID, "error", err)
	}
}

func (e *Executor) baseEvent(eventType events.EventType, run *models.WorkflowRun) events.BaseEvent {
	return events.BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: run.WorkflowID,
		RunID:      run.ID,
	}
}
