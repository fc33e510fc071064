package file

import (
	"testing"
	"time"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	p := NewPersistence(t.TempDir())
	require.NoError(t, p.HealthCheck(t.Context()))

	missing := NewPersistence("/nonexistent/opsdeck-data")
	require.Error(t, missing.HealthCheck(t.Context()))
}

func TestFilePrefixStripped(t *testing.T) {
	dir := t.TempDir()
	p := NewPersistence("file://" + dir)
	require.NoError(t, p.HealthCheck(t.Context()))
}

func TestWorkflowRoundTrip(t *testing.T) {
	p := NewPersistence(t.TempDir())
	repo := p.WorkflowRepository()

	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Escalation",
		Nodes: []*models.Node{
			{ID: "n1", Type: models.NodeTypeSelectTeam, Data: map[string]any{"teamId": "t-1"}},
		},
		Edges: []*models.Edge{},
	}

	require.NoError(t, repo.Save(t.Context(), workflow))

	loaded, err := repo.GetByID(t.Context(), "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "Escalation", loaded.Name)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, "t-1", loaded.Nodes[0].Data["teamId"])
	assert.False(t, loaded.CreatedAt.IsZero())
}

func TestWorkflowNotFound(t *testing.T) {
	p := NewPersistence(t.TempDir())

	_, err := p.WorkflowRepository().GetByID(t.Context(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, persistence.ErrWorkflowNotFound)
	assert.True(t, persistence.IsNotFound(err))
}

func TestWorkflowDeleteIsIdempotent(t *testing.T) {
	p := NewPersistence(t.TempDir())
	repo := p.WorkflowRepository()

	require.NoError(t, repo.Save(t.Context(), &models.Workflow{ID: "wf-1", Name: "x"}))
	require.NoError(t, repo.Delete(t.Context(), "wf-1"))
	require.NoError(t, repo.Delete(t.Context(), "wf-1"))
}

func TestRunLifecycle(t *testing.T) {
	p := NewPersistence(t.TempDir())
	repo := p.RunRepository()

	run := &models.WorkflowRun{
		ID:         "run-1",
		WorkflowID: "wf-1",
		Status:     models.RunStatusRunning,
		Logs:       map[string]models.NodeLog{},
		StartedAt:  time.Now().UTC(),
	}

	require.NoError(t, repo.Create(t.Context(), run))

	now := time.Now().UTC()
	run.Status = models.RunStatusSuccess
	run.FinishedAt = &now
	run.Logs["n1"] = models.NodeLog{
		Type:      models.NodeTypeComposeMessage,
		Input:     map[string]any{},
		Output:    map[string]any{"composedMessage": "hi"},
		Timestamp: now,
	}

	require.NoError(t, repo.Update(t.Context(), run))

	loaded, err := repo.GetByID(t.Context(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusSuccess, loaded.Status)
	assert.Equal(t, "hi", loaded.Logs["n1"].Output["composedMessage"])
	require.NotNil(t, loaded.FinishedAt)
}

func TestRunUpdateMissing(t *testing.T) {
	p := NewPersistence(t.TempDir())

	err := p.RunRepository().Update(t.Context(), &models.WorkflowRun{ID: "ghost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, persistence.ErrRunNotFound)
}

func TestRunsByWorkflowNewestFirst(t *testing.T) {
	p := NewPersistence(t.TempDir())
	repo := p.RunRepository()

	base := time.Now().UTC()
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, repo.Create(t.Context(), &models.WorkflowRun{
			ID:         id,
			WorkflowID: "wf-1",
			Status:     models.RunStatusSuccess,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	require.NoError(t, repo.Create(t.Context(), &models.WorkflowRun{
		ID: "run-other", WorkflowID: "wf-2", StartedAt: base,
	}))

	runs, err := repo.GetByWorkflow(t.Context(), "wf-1")
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-a", runs[2].ID)
}

func TestEngineersFilteredByTeam(t *testing.T) {
	p := NewPersistence(t.TempDir())
	repo := p.EngineerRepository()

	require.NoError(t, repo.Save(t.Context(), &models.Engineer{ID: "e1", Name: "Ada", Email: "ada@example.com", TeamID: "t-1"}))
	require.NoError(t, repo.Save(t.Context(), &models.Engineer{ID: "e2", Name: "Grace", Email: "grace@example.com", TeamID: "t-2"}))

	all, err := repo.GetAll(t.Context(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	team1, err := repo.GetAll(t.Context(), "t-1")
	require.NoError(t, err)
	require.Len(t, team1, 1)
	assert.Equal(t, "Ada", team1[0].Name)
}

func TestBoardCascadeDelete(t *testing.T) {
	p := NewPersistence(t.TempDir())
	repo := p.ProjectRepository()

	require.NoError(t, repo.Save(t.Context(), &models.Project{ID: "p1", Name: "Ops"}))
	require.NoError(t, repo.SaveColumn(t.Context(), &models.Column{ID: "c1", ProjectID: "p1", Name: "Todo", Position: 0}))
	require.NoError(t, repo.SaveColumn(t.Context(), &models.Column{ID: "c2", ProjectID: "p1", Name: "Done", Position: 1}))
	require.NoError(t, repo.SaveCard(t.Context(), &models.Card{ID: "k1", ColumnID: "c1", Title: "Rotate keys"}))

	require.NoError(t, repo.Delete(t.Context(), "p1"))

	columns, err := repo.Columns(t.Context(), "p1")
	require.NoError(t, err)
	assert.Empty(t, columns)

	cards, err := repo.Cards(t.Context(), "c1")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestColumnsOrderedByPosition(t *testing.T) {
	p := NewPersistence(t.TempDir())
	repo := p.ProjectRepository()

	require.NoError(t, repo.SaveColumn(t.Context(), &models.Column{ID: "c2", ProjectID: "p1", Name: "Doing", Position: 1}))
	require.NoError(t, repo.SaveColumn(t.Context(), &models.Column{ID: "c1", ProjectID: "p1", Name: "Todo", Position: 0}))

	columns, err := repo.Columns(t.Context(), "p1")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "Todo", columns[0].Name)
}

func TestSlackConfigDefaultIsNewest(t *testing.T) {
	p := NewPersistence(t.TempDir())
	repo := p.SlackConfigRepository()

	_, err := repo.GetDefault(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, persistence.ErrSlackConfigNotFound)

	base := time.Now().UTC()
	require.NoError(t, repo.Save(t.Context(), &models.SlackConfig{ID: "s1", Name: "old", BotToken: "xoxb-old", CreatedAt: base}))
	require.NoError(t, repo.Save(t.Context(), &models.SlackConfig{ID: "s2", Name: "new", BotToken: "xoxb-new", CreatedAt: base.Add(time.Minute)}))

	config, err := repo.GetDefault(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "xoxb-new", config.BotToken)
}
