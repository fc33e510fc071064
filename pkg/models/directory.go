package models

import "time"

// Team is a directory record grouping engineers.
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Engineer is a directory record for one person. SlackUserID is empty
// when the engineer has no linked Slack account.
type Engineer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"  validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	SlackUserID string    `json:"slack_user_id,omitempty"`
	TeamID      string    `json:"team_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AsContextRecord returns the representation merged into an execution
// context by the selectTeam node.
func (t *Team) AsContextRecord() map[string]any {
	return map[string]any{
		"id":          t.ID,
		"name":        t.Name,
		"description": t.Description,
	}
}

// AsContextRecord returns the representation merged into an execution
// context by the selectEngineer node.
func (e *Engineer) AsContextRecord() map[string]any {
	return map[string]any{
		"id":            e.ID,
		"name":          e.Name,
		"email":         e.Email,
		"slack_user_id": e.SlackUserID,
		"team_id":       e.TeamID,
	}
}
