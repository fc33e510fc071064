package models

import "time"

// Runbook is a rich-text wiki page. Content is the editor's document
// tree, stored as-is.
type Runbook struct {
	ID        string         `json:"id"`
	Title     string         `json:"title" validate:"required"`
	Content   map[string]any `json:"content"`
	FolderID  string         `json:"folder_id,omitempty"`
	TagIDs    []string       `json:"tag_ids"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Folder groups runbooks. ParentID is empty for top-level folders.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tag labels runbooks.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
