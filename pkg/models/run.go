package models

import "time"

// RunStatus is the lifecycle state of a workflow run. A run is created
// as running and transitions exactly once to success or failed.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// NodeLog is the audit entry for one executed node: the context as it
// was before the node ran, and the node's own output.
type NodeLog struct {
	Type      string         `json:"type"`
	Input     map[string]any `json:"input"`
	Output    map[string]any `json:"output"`
	Timestamp time.Time      `json:"timestamp"`
}

// WorkflowRun is the audit record of one workflow execution. It is
// immutable after the terminal status write. Logs are keyed by node id;
// a node that failed has no entry (the failure is in Error).
type WorkflowRun struct {
	ID         string             `json:"id"`
	WorkflowID string             `json:"workflow_id"`
	Status     RunStatus          `json:"status"`
	Logs       map[string]NodeLog `json:"logs"`
	Error      string             `json:"error,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt *time.Time         `json:"finished_at,omitempty"`
}
