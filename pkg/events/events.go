// Package events defines the run lifecycle notifications published on
// the event bus.
package events

import "time"

type EventType string

// Kafka topic for run lifecycle events.
const Topic = "opsdeck.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	WorkflowRunStartedEvent  EventType = "workflow.run.started"
	WorkflowRunFinishedEvent EventType = "workflow.run.finished"
	WorkflowRunFailedEvent   EventType = "workflow.run.failed"
)

type BaseEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflow_id"`
	RunID      string    `json:"run_id"`
}

type WorkflowRunStarted struct {
	BaseEvent
}

func (e WorkflowRunStarted) GetType() EventType {
	return WorkflowRunStartedEvent
}

type WorkflowRunFinished struct {
	BaseEvent

	NodeCount int           `json:"node_count"`
	Duration  time.Duration `json:"duration"`
}

func (e WorkflowRunFinished) GetType() EventType {
	return WorkflowRunFinishedEvent
}

type WorkflowRunFailed struct {
	BaseEvent

	Error string `json:"error"`
}

func (e WorkflowRunFailed) GetType() EventType {
	return WorkflowRunFailedEvent
}
