// Package directory resolves team and engineer identifiers to their
// stored records for the workflow node executors.
package directory

import (
	"context"
	"fmt"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// Service is the lookup facade over the directory repositories.
type Service struct {
	teams     persistence.TeamRepository
	engineers persistence.EngineerRepository
}

func NewService(teams persistence.TeamRepository, engineers persistence.EngineerRepository) *Service {
	return &Service{teams: teams, engineers: engineers}
}

// GetTeam resolves a team id. A missing team is
// persistence.ErrTeamNotFound, which node executors treat as fatal.
func (s *Service) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up team %s: %w", id, err)
	}

	return team, nil
}

// GetEngineer resolves an engineer id.
func (s *Service) GetEngineer(ctx context.Context, id string) (*models.Engineer, error) {
	engineer, err := s.engineers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up engineer %s: %w", id, err)
	}

	return engineer, nil
}
