package file

import (
	"context"
	"sort"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// TeamRepository stores directory teams as JSON documents.
type TeamRepository struct {
	teams collection[models.Team]
}

func NewTeamRepository(root string) *TeamRepository {
	return &TeamRepository{
		teams: newCollection[models.Team](root, "teams"),
	}
}

func (tr *TeamRepository) GetAll(_ context.Context) ([]*models.Team, error) {
	teams, err := tr.teams.loadAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(teams, func(i, j int) bool {
		return teams[i].Name < teams[j].Name
	})

	return teams, nil
}

func (tr *TeamRepository) GetByID(_ context.Context, id string) (*models.Team, error) {
	team, err := tr.teams.load(id)
	if err != nil {
		return nil, err
	}

	if team == nil {
		return nil, persistence.NewStoreError("get team", id, persistence.ErrTeamNotFound)
	}

	return team, nil
}

func (tr *TeamRepository) Save(_ context.Context, team *models.Team) error {
	return tr.teams.store(team.ID, team)
}

func (tr *TeamRepository) Delete(_ context.Context, id string) error {
	return tr.teams.remove(id)
}

// EngineerRepository stores directory engineers as JSON documents.
type EngineerRepository struct {
	engineers collection[models.Engineer]
}

func NewEngineerRepository(root string) *EngineerRepository {
	return &EngineerRepository{
		engineers: newCollection[models.Engineer](root, "engineers"),
	}
}

// GetAll returns engineers, filtered to one team when teamID is
// non-empty.
func (er *EngineerRepository) GetAll(_ context.Context, teamID string) ([]*models.Engineer, error) {
	all, err := er.engineers.loadAll()
	if err != nil {
		return nil, err
	}

	engineers := make([]*models.Engineer, 0, len(all))

	for _, engineer := range all {
		if teamID != "" && engineer.TeamID != teamID {
			continue
		}

		engineers = append(engineers, engineer)
	}

	sort.Slice(engineers, func(i, j int) bool {
		return engineers[i].Name < engineers[j].Name
	})

	return engineers, nil
}

func (er *EngineerRepository) GetByID(_ context.Context, id string) (*models.Engineer, error) {
	engineer, err := er.engineers.load(id)
	if err != nil {
		return nil, err
	}

	if engineer == nil {
		return nil, persistence.NewStoreError("get engineer", id, persistence.ErrEngineerNotFound)
	}

	return engineer, nil
}

func (er *EngineerRepository) Save(_ context.Context, engineer *models.Engineer) error {
	return er.engineers.store(engineer.ID, engineer)
}

func (er *EngineerRepository) Delete(_ context.Context, id string) error {
	return er.engineers.remove(id)
}
