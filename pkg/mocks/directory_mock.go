// Package mocks provides testify mock implementations of the engine's
// collaborator contracts.
package mocks

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockDirectory is a mock implementation of protocol.DirectoryLookup.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockDirectory) GetEngineer(ctx context.Context, id string) (*models.Engineer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Engineer), args.Error(1)
}
