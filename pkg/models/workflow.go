// Package models defines the core domain models for the opsdeck backend.
package models

import "time"

// Node types form a closed set. Adding a type means adding a node
// package and a registration point, not configuration.
const (
	NodeTypeSelectTeam       = "selectTeam"
	NodeTypeSelectEngineer   = "selectEngineer"
	NodeTypeComposeMessage   = "composeMessage"
	NodeTypeSendSlackMessage = "sendSlackMessage"
)

// Workflow is a user-authored notification automation: a directed
// graph of typed nodes. Updates replace the whole node/edge set.
type Workflow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"        validate:"required,min=3"`
	Description string    `json:"description"`
	Nodes       []*Node   `json:"nodes"`
	Edges       []*Edge   `json:"edges"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Node is one step in a workflow graph. Data holds the type-specific
// configuration (teamId, messageTemplate, channel, ...). Position is
// editor state and has no effect on execution.
type Node struct {
	ID        string         `json:"id"   validate:"required"`
	Type      string         `json:"type" validate:"required"`
	Data      map[string]any `json:"data"`
	PositionX int            `json:"position_x"`
	PositionY int            `json:"position_y"`
}

// Edge is a directed dependency: Target executes only after Source.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// NodeByID returns the node with the given id, or nil.
func (w *Workflow) NodeByID(id string) *Node {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}
