package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// RunbookRepository stores wiki pages plus their folders and tags. The
// editor document and the tag id list are JSONB columns.
type RunbookRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// GetAll returns runbooks, most recently edited first.
func (r *RunbookRepository) GetAll(ctx context.Context) ([]*models.Runbook, error) {
	query := `
		SELECT id, title, content, folder_id, tag_ids, created_at, updated_at
		FROM runbooks
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runbooks: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	runbooks := make([]*models.Runbook, 0)

	for rows.Next() {
		runbook, err := scanRunbook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan runbook: %w", err)
		}

		runbooks = append(runbooks, runbook)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating runbooks: %w", err)
	}

	return runbooks, nil
}

func (r *RunbookRepository) GetByID(ctx context.Context, id string) (*models.Runbook, error) {
	query := `
		SELECT id, title, content, folder_id, tag_ids, created_at, updated_at
		FROM runbooks
		WHERE id = $1
	`

	runbook, err := scanRunbook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("get runbook", id, persistence.ErrRunbookNotFound)
		}

		return nil, fmt.Errorf("failed to scan runbook: %w", err)
	}

	return runbook, nil
}

func (r *RunbookRepository) Save(ctx context.Context, runbook *models.Runbook) error {
	now := time.Now().UTC()
	if runbook.CreatedAt.IsZero() {
		runbook.CreatedAt = now
	}

	runbook.UpdatedAt = now

	contentJSON, err := json.Marshal(runbook.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal runbook content: %w", err)
	}

	tagIDsJSON, err := json.Marshal(runbook.TagIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal runbook tags: %w", err)
	}

	query := `
		INSERT INTO runbooks (id, title, content, folder_id, tag_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			folder_id = EXCLUDED.folder_id,
			tag_ids = EXCLUDED.tag_ids,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		runbook.ID,
		runbook.Title,
		contentJSON,
		runbook.FolderID,
		tagIDsJSON,
		runbook.CreatedAt,
		runbook.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save runbook: %w", err)
	}

	return nil
}

func (r *RunbookRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM runbooks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete runbook: %w", err)
	}

	return nil
}

func (r *RunbookRepository) Folders(ctx context.Context) ([]*models.Folder, error) {
	query := `
		SELECT id, name, parent_id, created_at, updated_at
		FROM folders
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	folders := make([]*models.Folder, 0)

	for rows.Next() {
		var folder models.Folder

		err = rows.Scan(&folder.ID, &folder.Name, &folder.ParentID, &folder.CreatedAt, &folder.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}

		folders = append(folders, &folder)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating folders: %w", err)
	}

	return folders, nil
}

func (r *RunbookRepository) SaveFolder(ctx context.Context, folder *models.Folder) error {
	now := time.Now().UTC()
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}

	folder.UpdatedAt = now

	query := `
		INSERT INTO folders (id, name, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			parent_id = EXCLUDED.parent_id,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		folder.ID, folder.Name, folder.ParentID, folder.CreatedAt, folder.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save folder: %w", err)
	}

	return nil
}

func (r *RunbookRepository) DeleteFolder(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM folders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}

	if affected == 0 {
		return persistence.NewStoreError("delete folder", id, persistence.ErrFolderNotFound)
	}

	return nil
}

func (r *RunbookRepository) Tags(ctx context.Context) ([]*models.Tag, error) {
	query := `
		SELECT id, name, color, created_at
		FROM tags
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	tags := make([]*models.Tag, 0)

	for rows.Next() {
		var tag models.Tag

		err = rows.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}

		tags = append(tags, &tag)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

func (r *RunbookRepository) SaveTag(ctx context.Context, tag *models.Tag) error {
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tags (id, name, color, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			color = EXCLUDED.color
	`

	_, err := r.db.ExecContext(ctx, query, tag.ID, tag.Name, tag.Color, tag.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save tag: %w", err)
	}

	return nil
}

func (r *RunbookRepository) DeleteTag(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}

	if affected == 0 {
		return persistence.NewStoreError("delete tag", id, persistence.ErrTagNotFound)
	}

	return nil
}

func scanRunbook(row interface{ Scan(...any) error }) (*models.Runbook, error) {
	var (
		runbook     models.Runbook
		contentJSON []byte
		tagIDsJSON  []byte
	)

	err := row.Scan(
		&runbook.ID,
		&runbook.Title,
		&contentJSON,
		&runbook.FolderID,
		&tagIDsJSON,
		&runbook.CreatedAt,
		&runbook.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(contentJSON, &runbook.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal runbook content: %w", err)
	}

	err = json.Unmarshal(tagIDsJSON, &runbook.TagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal runbook tags: %w", err)
	}

	return &runbook, nil
}
