package services

import (
	"log/slog"
	"testing"

	"github.com/opsdeck/opsdeck/pkg/mocks"
	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/nodes/composemessage"
	"github.com/opsdeck/opsdeck/pkg/nodes/selectengineer"
	"github.com/opsdeck/opsdeck/pkg/nodes/selectteam"
	"github.com/opsdeck/opsdeck/pkg/nodes/sendslack"
	"github.com/opsdeck/opsdeck/pkg/persistence/file"
	"github.com/opsdeck/opsdeck/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *registry.Registry {
	reg := registry.NewRegistry(slog.Default())
	reg.RegisterNode(selectteam.NewFactory(&mocks.MockDirectory{}))
	reg.RegisterNode(selectengineer.NewFactory(&mocks.MockDirectory{}))
	reg.RegisterNode(composemessage.NewFactory())
	reg.RegisterNode(sendslack.NewFactory(&mocks.MockNotifier{}))

	return reg
}

func testWorkflowService(t *testing.T) *Workflow {
	t.Helper()

	return NewWorkflow(file.NewPersistence(t.TempDir()), testRegistry())
}

func validWorkflow() *models.Workflow {
	return &models.Workflow{
		Name: "Escalation ping",
		Nodes: []*models.Node{
			{ID: "pick-team", Type: models.NodeTypeSelectTeam, Data: map[string]any{"teamId": "t-1"}},
			{ID: "compose", Type: models.NodeTypeComposeMessage, Data: map[string]any{"messageTemplate": "Hi {{teamName}}"}},
			{ID: "send", Type: models.NodeTypeSendSlackMessage, Data: map[string]any{"channel": "#ops"}},
		},
		Edges: []*models.Edge{
			{ID: "e1", Source: "pick-team", Target: "compose"},
			{ID: "e2", Source: "compose", Target: "send"},
		},
	}
}

func TestWorkflow_CreateAndFetch(t *testing.T) {
	service := testWorkflowService(t)

	created, err := service.Create(t.Context(), validWorkflow())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	loaded, err := service.FetchByID(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Escalation ping", loaded.Name)
	assert.Len(t, loaded.Nodes, 3)
}

func TestWorkflow_CreateNil(t *testing.T) {
	service := testWorkflowService(t)

	_, err := service.Create(t.Context(), nil)
	require.ErrorIs(t, err, ErrWorkflowNil)
	assert.True(t, IsValidationError(err))
}

func TestWorkflow_CreateRejectsShortName(t *testing.T) {
	service := testWorkflowService(t)

	workflow := validWorkflow()
	workflow.Name = "ab"

	_, err := service.Create(t.Context(), workflow)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestWorkflow_CreateRejectsUnknownNodeType(t *testing.T) {
	service := testWorkflowService(t)

	workflow := validWorkflow()
	workflow.Nodes = append(workflow.Nodes, &models.Node{ID: "x", Type: "approveChange"})

	_, err := service.Create(t.Context(), workflow)
	require.ErrorIs(t, err, ErrInvalidNodeConfig)
	assert.Contains(t, err.Error(), "approveChange")
}

func TestWorkflow_CreateRejectsBadNodeConfig(t *testing.T) {
	service := testWorkflowService(t)

	workflow := validWorkflow()
	// selectTeam requires teamId.
	workflow.Nodes[0].Data = map[string]any{}

	_, err := service.Create(t.Context(), workflow)
	require.ErrorIs(t, err, ErrInvalidNodeConfig)
	assert.Contains(t, err.Error(), "pick-team")
}

func TestWorkflow_CreateRejectsDuplicateNodeIDs(t *testing.T) {
	service := testWorkflowService(t)

	workflow := validWorkflow()
	workflow.Nodes = append(workflow.Nodes, &models.Node{
		ID: "compose", Type: models.NodeTypeComposeMessage, Data: map[string]any{},
	})

	_, err := service.Create(t.Context(), workflow)
	require.ErrorIs(t, err, ErrDuplicateNodeID)
}

func TestWorkflow_CreateRejectsDanglingEdge(t *testing.T) {
	service := testWorkflowService(t)

	workflow := validWorkflow()
	workflow.Edges = append(workflow.Edges, &models.Edge{ID: "e3", Source: "send", Target: "ghost"})

	_, err := service.Create(t.Context(), workflow)
	require.ErrorIs(t, err, ErrInvalidEdge)
	assert.Contains(t, err.Error(), "ghost")
}

func TestWorkflow_CreateAllowsCycles(t *testing.T) {
	// Cycles are caught at run time, not edit time: the editor may
	// save a half-rewired graph.
	service := testWorkflowService(t)

	workflow := validWorkflow()
	workflow.Edges = append(workflow.Edges, &models.Edge{ID: "e3", Source: "send", Target: "pick-team"})

	_, err := service.Create(t.Context(), workflow)
	require.NoError(t, err)
}

func TestWorkflow_UpdateReplacesGraph(t *testing.T) {
	service := testWorkflowService(t)

	created, err := service.Create(t.Context(), validWorkflow())
	require.NoError(t, err)

	replacement := &models.Workflow{
		Name: "Just compose",
		Nodes: []*models.Node{
			{ID: "only", Type: models.NodeTypeComposeMessage, Data: map[string]any{"messageTemplate": "hello"}},
		},
	}

	updated, err := service.Update(t.Context(), created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Len(t, updated.Nodes, 1)
}

func TestWorkflow_UpdateMissing(t *testing.T) {
	service := testWorkflowService(t)

	_, err := service.Update(t.Context(), "ghost", validWorkflow())
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestWorkflow_Delete(t *testing.T) {
	service := testWorkflowService(t)

	created, err := service.Create(t.Context(), validWorkflow())
	require.NoError(t, err)

	require.NoError(t, service.Delete(t.Context(), created.ID))

	_, err = service.FetchByID(t.Context(), created.ID)
	assert.True(t, IsNotFoundError(err))

	err = service.Delete(t.Context(), created.ID)
	assert.True(t, IsNotFoundError(err))
}

func TestWorkflow_List(t *testing.T) {
	service := testWorkflowService(t)

	list, err := service.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = service.Create(t.Context(), validWorkflow())
	require.NoError(t, err)

	list, err = service.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestWorkflow_RunsRequireExistingWorkflow(t *testing.T) {
	service := testWorkflowService(t)

	_, err := service.Runs(t.Context(), "ghost")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}
