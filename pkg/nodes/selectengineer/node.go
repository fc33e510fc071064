// Package selectengineer implements the node that resolves a
// configured engineer and exposes them to the execution context.
package selectengineer

import (
	"context"
	"errors"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/protocol"
)

// SelectEngineerNode looks up the configured engineer via the
// directory. engineerSlackId in its output is what makes a later
// sendSlackMessage node deliver as a direct message.
type SelectEngineerNode struct {
	id         string
	engineerID string
	directory  protocol.DirectoryLookup
}

func NewSelectEngineerNode(id string, config map[string]any, directory protocol.DirectoryLookup) (*SelectEngineerNode, error) {
	engineerID, _ := config["engineerId"].(string)
	if engineerID == "" {
		return nil, errors.New("engineer not selected in node configuration")
	}

	return &SelectEngineerNode{
		id:         id,
		engineerID: engineerID,
		directory:  directory,
	}, nil
}

func (n *SelectEngineerNode) ID() string {
	return n.id
}

func (n *SelectEngineerNode) Type() string {
	return models.NodeTypeSelectEngineer
}

func (n *SelectEngineerNode) Execute(ctx context.Context, _ models.ExecutionContext) (map[string]any, error) {
	engineer, err := n.directory.GetEngineer(ctx, n.engineerID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"selectedEngineer": engineer.AsContextRecord(),
		"engineerId":       engineer.ID,
		"engineerName":     engineer.Name,
		"engineerEmail":    engineer.Email,
		"engineerSlackId":  engineer.SlackUserID,
	}, nil
}
