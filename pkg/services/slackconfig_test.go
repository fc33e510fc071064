package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence/file"
)

func testSlackService(t *testing.T) *SlackSettings {
	t.Helper()

	return NewSlackSettings(file.NewPersistence(t.TempDir()))
}

func TestSlackSettings_FetchRedactsToken(t *testing.T) {
	service := testSlackService(t)

	created, err := service.Create(t.Context(), &models.SlackConfig{
		Name: "prod", BotToken: "xoxb-secret",
	})
	require.NoError(t, err)

	fetched, err := service.Fetch(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "prod", fetched.Name)
	assert.Equal(t, "***", fetched.BotToken)
}

func TestSlackSettings_UpdateKeepsTokenWhenRedacted(t *testing.T) {
	service := testSlackService(t)

	created, err := service.Create(t.Context(), &models.SlackConfig{
		Name: "prod", BotToken: "xoxb-secret",
	})
	require.NoError(t, err)

	updated, err := service.Update(t.Context(), created.ID, &models.SlackConfig{
		Name: "prod-eu", BotToken: "***", DefaultChannel: "#ops",
	})
	require.NoError(t, err)
	assert.Equal(t, "prod-eu", updated.Name)
	assert.Equal(t, "***", updated.BotToken)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)

	token, err := service.DefaultToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "xoxb-secret", token)
}

func TestSlackSettings_UpdateReplacesToken(t *testing.T) {
	service := testSlackService(t)

	created, err := service.Create(t.Context(), &models.SlackConfig{
		Name: "prod", BotToken: "xoxb-old",
	})
	require.NoError(t, err)

	_, err = service.Update(t.Context(), created.ID, &models.SlackConfig{
		Name: "prod", BotToken: "xoxb-new",
	})
	require.NoError(t, err)

	token, err := service.DefaultToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "xoxb-new", token)
}

func TestSlackSettings_UpdateMissingConfig(t *testing.T) {
	service := testSlackService(t)

	_, err := service.Update(t.Context(), "ghost", &models.SlackConfig{
		Name: "prod", BotToken: "xoxb-secret",
	})
	assert.True(t, IsNotFoundError(err))
}
