// Package selectteam implements the node that resolves a configured
// team and exposes it to the execution context.
package selectteam

import (
	"context"
	"errors"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/protocol"
)

// SelectTeamNode looks up the configured team via the directory and
// merges selectedTeam, teamId and teamName into the context.
type SelectTeamNode struct {
	id        string
	teamID    string
	directory protocol.DirectoryLookup
}

func NewSelectTeamNode(id string, config map[string]any, directory protocol.DirectoryLookup) (*SelectTeamNode, error) {
	teamID, _ := config["teamId"].(string)
	if teamID == "" {
		return nil, errors.New("team not selected in node configuration")
	}

	return &SelectTeamNode{
		id:        id,
		teamID:    teamID,
		directory: directory,
	}, nil
}

func (n *SelectTeamNode) ID() string {
	return n.id
}

func (n *SelectTeamNode) Type() string {
	return models.NodeTypeSelectTeam
}

func (n *SelectTeamNode) Execute(ctx context.Context, _ models.ExecutionContext) (map[string]any, error) {
	team, err := n.directory.GetTeam(ctx, n.teamID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"selectedTeam": team.AsContextRecord(),
		"teamId":       team.ID,
		"teamName":     team.Name,
	}, nil
}
