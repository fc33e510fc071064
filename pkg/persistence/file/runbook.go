package file

import (
	"context"
	"sort"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// RunbookRepository stores wiki pages, folders and tags as JSON
// documents.
type RunbookRepository struct {
	runbooks collection[models.Runbook]
	folders  collection[models.Folder]
	tags     collection[models.Tag]
}

func NewRunbookRepository(root string) *RunbookRepository {
	return &RunbookRepository{
		runbooks: newCollection[models.Runbook](root, "runbooks"),
		folders:  newCollection[models.Folder](root, "folders"),
		tags:     newCollection[models.Tag](root, "tags"),
	}
}

func (rr *RunbookRepository) GetAll(_ context.Context) ([]*models.Runbook, error) {
	runbooks, err := rr.runbooks.loadAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(runbooks, func(i, j int) bool {
		return runbooks[i].UpdatedAt.After(runbooks[j].UpdatedAt)
	})

	return runbooks, nil
}

func (rr *RunbookRepository) GetByID(_ context.Context, id string) (*models.Runbook, error) {
	runbook, err := rr.runbooks.load(id)
	if err != nil {
		return nil, err
	}

	if runbook == nil {
		return nil, persistence.NewStoreError("get runbook", id, persistence.ErrRunbookNotFound)
	}

	return runbook, nil
}

func (rr *RunbookRepository) Save(_ context.Context, runbook *models.Runbook) error {
	return rr.runbooks.store(runbook.ID, runbook)
}

func (rr *RunbookRepository) Delete(_ context.Context, id string) error {
	return rr.runbooks.remove(id)
}

func (rr *RunbookRepository) Folders(_ context.Context) ([]*models.Folder, error) {
	folders, err := rr.folders.loadAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})

	return folders, nil
}

func (rr *RunbookRepository) SaveFolder(_ context.Context, folder *models.Folder) error {
	return rr.folders.store(folder.ID, folder)
}

func (rr *RunbookRepository) DeleteFolder(_ context.Context, id string) error {
	if !rr.folders.exists(id) {
		return persistence.NewStoreError("delete folder", id, persistence.ErrFolderNotFound)
	}

	return rr.folders.remove(id)
}

func (rr *RunbookRepository) Tags(_ context.Context) ([]*models.Tag, error) {
	tags, err := rr.tags.loadAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	return tags, nil
}

func (rr *RunbookRepository) SaveTag(_ context.Context, tag *models.Tag) error {
	return rr.tags.store(tag.ID, tag)
}

func (rr *RunbookRepository) DeleteTag(_ context.Context, id string) error {
	if !rr.tags.exists(id) {
		return persistence.NewStoreError("delete tag", id, persistence.ErrTagNotFound)
	}

	return rr.tags.remove(id)
}
