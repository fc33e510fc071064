// Package services implements the business operations behind the HTTP
// surface: workflow editing and validation, the directory, runbooks,
// boards and Slack configuration.
package services

import (
	"errors"
	"fmt"

	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// Validation errors map to 400 responses at the HTTP layer.
var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrWorkflowNil          = errors.New("workflow cannot be nil")
	ErrUnknownNodeType      = errors.New("unknown node type")
	ErrInvalidNodeConfig    = errors.New("invalid node configuration")
	ErrInvalidEdge          = errors.New("invalid edge")
	ErrDuplicateNodeID      = errors.New("duplicate node id")
	ErrEngineerTeamMissing  = errors.New("engineer references unknown team")
	ErrRunbookFolderMissing = errors.New("runbook references unknown folder")
	ErrCardColumnMissing    = errors.New("card references unknown column")
	ErrColumnProjectMissing = errors.New("column references unknown project")
)

// ServiceError carries the operation and a stable code alongside the
// underlying cause.
type ServiceError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewValidationError creates a validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsValidationError reports whether an error should surface as HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrWorkflowNil) ||
		errors.Is(err, ErrUnknownNodeType) ||
		errors.Is(err, ErrInvalidNodeConfig) ||
		errors.Is(err, ErrInvalidEdge) ||
		errors.Is(err, ErrDuplicateNodeID) ||
		errors.Is(err, ErrEngineerTeamMissing) ||
		errors.Is(err, ErrRunbookFolderMissing) ||
		errors.Is(err, ErrCardColumnMissing) ||
		errors.Is(err, ErrColumnProjectMissing)
}

// IsNotFoundError reports whether an error should surface as HTTP 404.
func IsNotFoundError(err error) bool {
	return persistence.IsNotFound(err)
}
