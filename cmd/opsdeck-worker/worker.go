// Package main provides the opsdeck run worker.
package main

import (
	"context"
	"log/slog"

	"github.com/opsdeck/opsdeck/pkg/queue"
	"github.com/opsdeck/opsdeck/pkg/workflow"
)

// Worker drains the run queue and executes workflows. A failed run is
// recorded on the run itself, so the handler only logs it.
type Worker struct {
	id       string
	logger   *slog.Logger
	runQueue *queue.Queue
	executor *workflow.Executor
}

func NewWorker(id string, logger *slog.Logger, runQueue *queue.Queue, executor *workflow.Executor) *Worker {
	return &Worker{
		id:       id,
		logger:   logger,
		runQueue: runQueue,
		executor: executor,
	}
}

// Run consumes the queue until the context is cancelled, then drains
// in-flight handlers.
func (w *Worker) Run(ctx context.Context) error {
	w.runQueue.Start(ctx, w.handle)

	w.logger.InfoContext(ctx, "Worker started, waiting for queued runs")

	<-ctx.Done()

	w.logger.Info("Shutting down worker")

	return w.runQueue.Stop(context.WithoutCancel(ctx))
}

func (w *Worker) handle(ctx context.Context, req queue.RunRequest) error {
	result, err := w.executor.Execute(ctx, req.WorkflowID, req.InitialData)
	if err != nil {
		w.logger.ErrorContext(ctx, "Queued run failed",
			"workflow_id", req.WorkflowID, "error", err)

		return err
	}

	w.logger.InfoContext(ctx, "Queued run finished",
		"workflow_id", req.WorkflowID, "run_id", result.RunID, "status", result.Status)

	return nil
}
