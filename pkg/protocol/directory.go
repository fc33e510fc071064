package protocol

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/models"
)

// DirectoryLookup resolves directory identifiers for node executors.
// The directory package provides the repository-backed implementation.
type DirectoryLookup interface {
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	GetEngineer(ctx context.Context, id string) (*models.Engineer, error)
}
