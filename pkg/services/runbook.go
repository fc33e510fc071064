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

// Wiki manages runbook pages plus their folder tree and tags.
type Wiki struct {
	persistence persistence.Persistence
	validate    *validator.Validate
}

func NewWiki(persistence persistence.Persistence) *Wiki {
	return &Wiki{
		persistence: persistence,
		validate:    validator.New(),
	}
}

func (s *Wiki) ListRunbooks(ctx context.Context) ([]*models.Runbook, error) {
	runbooks, err := s.persistence.RunbookRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list runbooks: %w", err)
	}

	return runbooks, nil
}

func (s *Wiki) FetchRunbook(ctx context.Context, id string) (*models.Runbook, error) {
	return s.persistence.RunbookRepository().GetByID(ctx, id)
}

func (s *Wiki) CreateRunbook(ctx context.Context, runbook *models.Runbook) (*models.Runbook, error) {
	err := s.validate.Struct(runbook)
	if err != nil {
		return nil, NewValidationError("CreateRunbook", "INVALID_RUNBOOK", err.Error(), ErrInvalidRequest)
	}

	err = s.checkFolderExists(ctx, runbook.FolderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	runbook.ID = uuid.New().String()
	runbook.CreatedAt = now
	runbook.UpdatedAt = now

	err = s.persistence.RunbookRepository().Save(ctx, runbook)
	if err != nil {
		return nil, fmt.Errorf("failed to create runbook: %w", err)
	}

	return runbook, nil
}

func (s *Wiki) UpdateRunbook(ctx context.Context, id string, runbook *models.Runbook) (*models.Runbook, error) {
	existing, err := s.persistence.RunbookRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.validate.Struct(runbook)
	if err != nil {
		return nil, NewValidationError("UpdateRunbook", "INVALID_RUNBOOK", err.Error(), ErrInvalidRequest)
	}

	err = s.checkFolderExists(ctx, runbook.FolderID)
	if err != nil {
		return nil, err
	}

	runbook.ID = id
	runbook.CreatedAt = existing.CreatedAt
	runbook.UpdatedAt = time.Now().UTC()

	err = s.persistence.RunbookRepository().Save(ctx, runbook)
	if err != nil {
		return nil, fmt.Errorf("failed to update runbook: %w", err)
	}

	return runbook, nil
}

func (s *Wiki) DeleteRunbook(ctx context.Context, id string) error {
	_, err := s.persistence.RunbookRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.persistence.RunbookRepository().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete runbook: %w", err)
	}

	return nil
}

func (s *Wiki) ListFolders(ctx context.Context) ([]*models.Folder, error) {
	folders, err := s.persistence.RunbookRepository().Folders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	return folders, nil
}

func (s *Wiki) CreateFolder(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	err := s.validate.Struct(folder)
	if err != nil {
		return nil, NewValidationError("CreateFolder", "INVALID_FOLDER", err.Error(), ErrInvalidRequest)
	}

	err = s.checkFolderExists(ctx, folder.ParentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	folder.ID = uuid.New().String()
	folder.CreatedAt = now
	folder.UpdatedAt = now

	err = s.persistence.RunbookRepository().SaveFolder(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return folder, nil
}

// DeleteFolder removes a folder. Runbooks inside move to the wiki
// root.
func (s *Wiki) DeleteFolder(ctx context.Context, id string) error {
	runbooks, err := s.persistence.RunbookRepository().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runbooks: %w", err)
	}

	for _, runbook := range runbooks {
		if runbook.FolderID != id {
			continue
		}

		runbook.FolderID = ""
		runbook.UpdatedAt = time.Now().UTC()

		err = s.persistence.RunbookRepository().Save(ctx, runbook)
		if err != nil {
			return fmt.Errorf("failed to detach runbook %s: %w", runbook.ID, err)
		}
	}

	err = s.persistence.RunbookRepository().DeleteFolder(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	return nil
}

func (s *Wiki) ListTags(ctx context.Context) ([]*models.Tag, error) {
	tags, err := s.persistence.RunbookRepository().Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

func (s *Wiki) CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	err := s.validate.Struct(tag)
	if err != nil {
		return nil, NewValidationError("CreateTag", "INVALID_TAG", err.Error(), ErrInvalidRequest)
	}

	tag.ID = uuid.New().String()
	tag.CreatedAt = time.Now().UTC()

	err = s.persistence.RunbookRepository().SaveTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

func (s *Wiki) DeleteTag(ctx context.Context, id string) error {
	err := s.persistence.RunbookRepository().DeleteTag(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return nil
}

func (s *Wiki) checkFolderExists(ctx context.Context, folderID string) error {
	if folderID == "" {
		return nil
	}

	folders, err := s.persistence.RunbookRepository().Folders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list folders: %w", err)
	}

	for _, folder := range folders {
		if folder.ID == folderID {
			return nil
		}
	}

	return NewValidationError("checkFolderExists", "UNKNOWN_FOLDER",
		fmt.Sprintf("folder %s does not exist", folderID), ErrRunbookFolderMissing)
}
