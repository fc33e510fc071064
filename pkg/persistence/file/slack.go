package file

import (
	"context"
	"sort"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
)

// SlackConfigRepository stores workspace bot configurations as JSON
// documents.
type SlackConfigRepository struct {
	configs collection[models.SlackConfig]
}

func NewSlackConfigRepository(root string) *SlackConfigRepository {
	return &SlackConfigRepository{
		configs: newCollection[models.SlackConfig](root, "slack_configs"),
	}
}

func (sr *SlackConfigRepository) GetAll(_ context.Context) ([]*models.SlackConfig, error) {
	configs, err := sr.configs.loadAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].CreatedAt.Before(configs[j].CreatedAt)
	})

	return configs, nil
}

func (sr *SlackConfigRepository) GetByID(_ context.Context, id string) (*models.SlackConfig, error) {
	config, err := sr.configs.load(id)
	if err != nil {
		return nil, err
	}

	if config == nil {
		return nil, persistence.NewStoreError("get slack config", id, persistence.ErrSlackConfigNotFound)
	}

	return config, nil
}

// GetDefault returns the most recently created configuration.
func (sr *SlackConfigRepository) GetDefault(ctx context.Context) (*models.SlackConfig, error) {
	configs, err := sr.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(configs) == 0 {
		return nil, persistence.NewStoreError("get default slack config", "", persistence.ErrSlackConfigNotFound)
	}

	return configs[len(configs)-1], nil
}

func (sr *SlackConfigRepository) Save(_ context.Context, config *models.SlackConfig) error {
	return sr.configs.store(config.ID, config)
}

func (sr *SlackConfigRepository) Delete(_ context.Context, id string) error {
	return sr.configs.remove(id)
}
