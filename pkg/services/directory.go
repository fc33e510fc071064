package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// Directory manages the teams and engineers the workflow nodes select
// from.
type Directory struct {
	persistence persistence.Persistence
	validate    *validator.Validate
}

func NewDirectory(persistence persistence.Persistence) *Directory {
	return &Directory{
		persistence: persistence,
		validate:    validator.New(),
	}
}

func (d *Directory) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := d.persistence.TeamRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	return teams, nil
}

func (d *Directory) FetchTeam(ctx context.Context, id string) (*models.Team, error) {
	return d.persistence.TeamRepository().GetByID(ctx, id)
}

func (d *Directory) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	err := d.validate.Struct(team)
	if err != nil {
		return nil, NewValidationError("CreateTeam", "INVALID_TEAM", err.Error(), ErrInvalidRequest)
	}

	now := time.Now().UTC()
	team.ID = uuid.New().String()
	team.CreatedAt = now
	team.UpdatedAt = now

	err = d.persistence.TeamRepository().Save(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

func (d *Directory) UpdateTeam(ctx context.Context, id string, team *models.Team) (*models.Team, error) {
	existing, err := d.persistence.TeamRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = d.validate.Struct(team)
	if err != nil {
		return nil, NewValidationError("UpdateTeam", "INVALID_TEAM", err.Error(), ErrInvalidRequest)
	}

	team.ID = id
	team.CreatedAt = existing.CreatedAt
	team.UpdatedAt = time.Now().UTC()

	err = d.persistence.TeamRepository().Save(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// DeleteTeam removes a team. Engineers on the team keep their record
// but lose the association.
func (d *Directory) DeleteTeam(ctx context.Context, id string) error {
	_, err := d.persistence.TeamRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}

	engineers, err := d.persistence.EngineerRepository().GetAll(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list team engineers: %w", err)
	}

	for _, engineer := range engineers {
		engineer.TeamID = ""
		engineer.UpdatedAt = time.Now().UTC()

		err = d.persistence.EngineerRepository().Save(ctx, engineer)
		if err != nil {
			return fmt.Errorf("failed to detach engineer %s: %w", engineer.ID, err)
		}
	}

	err = d.persistence.TeamRepository().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// ListEngineers retrieves engineers, optionally filtered to one team.
func (d *Directory) ListEngineers(ctx context.Context, teamID string) ([]*models.Engineer, error) {
	engineers, err := d.persistence.EngineerRepository().GetAll(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list engineers: %w", err)
	}

	return engineers, nil
}

func (d *Directory) FetchEngineer(ctx context.Context, id string) (*models.Engineer, error) {
	return d.persistence.EngineerRepository().GetByID(ctx, id)
}

func (d *Directory) CreateEngineer(ctx context.Context, engineer *models.Engineer) (*models.Engineer, error) {
	err := d.validate.Struct(engineer)
	if err != nil {
		return nil, NewValidationError("CreateEngineer", "INVALID_ENGINEER", err.Error(), ErrInvalidRequest)
	}

	err = d.checkTeamExists(ctx, engineer.TeamID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	engineer.ID = uuid.New().String()
	engineer.CreatedAt = now
	engineer.UpdatedAt = now

	err = d.persistence.EngineerRepository().Save(ctx, engineer)
	if err != nil {
		return nil, fmt.Errorf("failed to create engineer: %w", err)
	}

	return engineer, nil
}

func (d *Directory) UpdateEngineer(ctx context.Context, id string, engineer *models.Engineer) (*models.Engineer, error) {
	existing, err := d.persistence.EngineerRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = d.validate.Struct(engineer)
	if err != nil {
		return nil, NewValidationError("UpdateEngineer", "INVALID_ENGINEER", err.Error(), ErrInvalidRequest)
	}

	err = d.checkTeamExists(ctx, engineer.TeamID)
	if err != nil {
		return nil, err
	}

	engineer.ID = id
	engineer.CreatedAt = existing.CreatedAt
	engineer.UpdatedAt = time.Now().UTC()

	err = d.persistence.EngineerRepository().Save(ctx, engineer)
	if err != nil {
		return nil, fmt.Errorf("failed to update engineer: %w", err)
	}

	return engineer, nil
}

func (d *Directory) DeleteEngineer(ctx context.Context, id string) error {
	_, err := d.persistence.EngineerRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = d.persistence.EngineerRepository().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete engineer: %w", err)
	}

	return nil
}

func (d *Directory) checkTeamExists(ctx context.Context, teamID string) error {
	if teamID == "" {
		return nil
	}

	_, err := d.persistence.TeamRepository().GetByID(ctx, teamID)
	if err != nil {
		if persistence.IsNotFound(err) {
			return NewValidationError("checkTeamExists", "UNKNOWN_TEAM",
				fmt.Sprintf("team %s does not exist", teamID), ErrEngineerTeamMissing)
		}

		return err
	}

	return nil
}
