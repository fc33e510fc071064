package models

import "maps"

// ExecutionContext is the accumulating key-value state passed between
// nodes during one run. It lives for exactly one run and is never
// shared between concurrent runs.
type ExecutionContext struct {
	RunID      string         `json:"run_id"`
	WorkflowID string         `json:"workflow_id"`
	Data       map[string]any `json:"data"`
}

// NewExecutionContext seeds a context with a shallow copy of the
// caller-supplied initial data.
func NewExecutionContext(runID, workflowID string, initialData map[string]any) ExecutionContext {
	data := make(map[string]any, len(initialData))
	maps.Copy(data, initialData)

	return ExecutionContext{
		RunID:      runID,
		WorkflowID: workflowID,
		Data:       data,
	}
}

// Snapshot returns a shallow copy of the current data, safe to keep in
// a log entry while execution continues to mutate the live context.
func (ec ExecutionContext) Snapshot() map[string]any {
	snapshot := make(map[string]any, len(ec.Data))
	maps.Copy(snapshot, ec.Data)

	return snapshot
}

// Merge folds a node's output into the context. Later keys overwrite
// earlier ones of the same name (last-write-wins in execution order).
func (ec ExecutionContext) Merge(output map[string]any) {
	maps.Copy(ec.Data, output)
}
