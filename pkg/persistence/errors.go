// Package persistence provides standardized error types shared by all
// storage implementations.
package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkflowNotFound indicates a workflow was not found by the given identifier.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrRunNotFound indicates a workflow run was not found by the given identifier.
	ErrRunNotFound = errors.New("workflow run not found")

	// ErrTeamNotFound indicates a team was not found by the given identifier.
	ErrTeamNotFound = errors.New("team not found")

	// ErrEngineerNotFound indicates an engineer was not found by the given identifier.
	ErrEngineerNotFound = errors.New("engineer not found")

	// ErrRunbookNotFound indicates a runbook was not found by the given identifier.
	ErrRunbookNotFound = errors.New("runbook not found")

	// ErrFolderNotFound indicates a runbook folder was not found.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrTagNotFound indicates a runbook tag was not found.
	ErrTagNotFound = errors.New("tag not found")

	// ErrProjectNotFound indicates a project was not found by the given identifier.
	ErrProjectNotFound = errors.New("project not found")

	// ErrColumnNotFound indicates a board column was not found.
	ErrColumnNotFound = errors.New("column not found")

	// ErrCardNotFound indicates a board card was not found.
	ErrCardNotFound = errors.New("card not found")

	// ErrSlackConfigNotFound indicates no Slack configuration exists.
	ErrSlackConfigNotFound = errors.New("slack config not found")
)

// StoreError wraps a storage error with the operation and record it
// concerned.
type StoreError struct {
	Op  string // Operation being performed (e.g. "GetByID", "Save")
	ID  string // Record ID if applicable
	Err error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s failed for %s: %v", e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a new storage error with context.
func NewStoreError(op, id string, err error) *StoreError {
	return &StoreError{Op: op, ID: id, Err: err}
}

// IsNotFound reports whether the error is any of the not-found
// sentinels above.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound) ||
		errors.Is(err, ErrRunNotFound) ||
		errors.Is(err, ErrTeamNotFound) ||
		errors.Is(err, ErrEngineerNotFound) ||
		errors.Is(err, ErrRunbookNotFound) ||
		errors.Is(err, ErrFolderNotFound) ||
		errors.Is(err, ErrTagNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrSlackConfigNotFound)
}
