package models

import "time"

// Project is a kanban board.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Column is one lane of a board, ordered by Position.
type Column struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id" validate:"required"`
	Name      string    `json:"name"       validate:"required"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Card is one item in a column, ordered by Position within the column.
type Card struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"column_id" validate:"required"`
	Title       string    `json:"title"     validate:"required"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	AssigneeID  string    `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
