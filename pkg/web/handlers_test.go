package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/opsdeck/opsdeck/pkg/mocks"
	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/nodes/composemessage"
	"github.com/opsdeck/opsdeck/pkg/nodes/selectengineer"
	"github.com/opsdeck/opsdeck/pkg/nodes/selectteam"
	"github.com/opsdeck/opsdeck/pkg/nodes/sendslack"
	"github.com/opsdeck/opsdeck/pkg/persistence"
	"github.com/opsdeck/opsdeck/pkg/persistence/file"
	"github.com/opsdeck/opsdeck/pkg/registry"
	"github.com/opsdeck/opsdeck/pkg/services"
	"github.com/opsdeck/opsdeck/pkg/web"
	"github.com/opsdeck/opsdeck/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app       *fiber.App
	directory *mocks.MockDirectory
	notifier  *mocks.MockNotifier
	store     persistence.Persistence
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()

	store := file.NewPersistence(t.TempDir())
	directory := &mocks.MockDirectory{}
	notifier := &mocks.MockNotifier{}

	reg := registry.NewRegistry(slog.Default())
	reg.RegisterNode(selectteam.NewFactory(directory))
	reg.RegisterNode(selectengineer.NewFactory(directory))
	reg.RegisterNode(composemessage.NewFactory())
	reg.RegisterNode(sendslack.NewFactory(notifier))

	executor := workflow.NewExecutor(
		store.WorkflowRepository(), store.RunRepository(), reg, nil, slog.Default())

	handlers := web.NewAPIHandlers(
		services.NewWorkflow(store, reg),
		services.NewDirectory(store),
		services.NewWiki(store),
		services.NewBoard(store),
		services.NewSlackSettings(store),
		executor,
		nil,
		reg,
	)

	app := fiber.New()
	handlers.RegisterRoutes(app)

	return &testEnv{app: app, directory: directory, notifier: notifier, store: store}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()

	var out T

	err := json.NewDecoder(resp.Body).Decode(&out)
	require.NoError(t, err)

	return out
}

func TestCreateWorkflow(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/workflows", web.WorkflowRequest{
		Name: "Escalation ping",
		Nodes: []web.NodeRequest{
			{ID: "compose", Type: models.NodeTypeComposeMessage, Data: map[string]any{"messageTemplate": "hi"}},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[models.Workflow](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Escalation ping", created.Name)
}

func TestCreateWorkflowValidation(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/workflows", web.WorkflowRequest{Name: "ab"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	problem := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "validation_error", problem["type"])
}

func TestCreateWorkflowUnknownNodeType(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/workflows", web.WorkflowRequest{
		Name: "Bad graph",
		Nodes: []web.NodeRequest{
			{ID: "n1", Type: "approveChange"},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetWorkflowNotFound(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodGet, "/workflows/ghost", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	problem := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "not_found", problem["type"])
}

func TestWorkflowLifecycle(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/workflows", web.WorkflowRequest{
		Name: "Escalation ping",
		Nodes: []web.NodeRequest{
			{ID: "compose", Type: models.NodeTypeComposeMessage, Data: map[string]any{"messageTemplate": "hi"}},
		},
	})
	created := decodeBody[models.Workflow](t, resp)

	resp = doJSON(t, env.app, http.MethodPut, "/workflows/"+created.ID, web.WorkflowRequest{
		Name: "Renamed ping",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decodeBody[models.Workflow](t, resp)
	assert.Equal(t, "Renamed ping", updated.Name)

	resp = doJSON(t, env.app, http.MethodDelete, "/workflows/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/workflows/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExecuteWorkflowEndToEnd(t *testing.T) {
	env := setupTestApp(t)

	env.directory.On("GetTeam", mock.Anything, "t-1").Return(&models.Team{
		ID: "t-1", Name: "Platform",
	}, nil)
	env.notifier.On("SendToChannel", mock.Anything, "#ops", "Platform needs a review").
		Return(map[string]any{"ok": true, "channel": "#ops"}, nil)

	resp := doJSON(t, env.app, http.MethodPost, "/workflows", web.WorkflowRequest{
		Name: "Review ping",
		Nodes: []web.NodeRequest{
			{ID: "pick", Type: models.NodeTypeSelectTeam, Data: map[string]any{"teamId": "t-1"}},
			{ID: "compose", Type: models.NodeTypeComposeMessage, Data: map[string]any{"messageTemplate": "{{teamName}} needs a review"}},
			{ID: "send", Type: models.NodeTypeSendSlackMessage, Data: map[string]any{"channel": "#ops"}},
		},
		Edges: []web.EdgeRequest{
			{ID: "e1", Source: "pick", Target: "compose"},
			{ID: "e2", Source: "compose", Target: "send"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.Workflow](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/workflows/"+created.ID+"/execute", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[workflow.Result](t, resp)
	assert.Equal(t, models.RunStatusSuccess, result.Status)
	assert.Len(t, result.Logs, 3)
	assert.Equal(t, "Platform needs a review", result.Logs["compose"].Output["composedMessage"])

	env.notifier.AssertExpectations(t)

	// Run history is queryable afterwards.
	resp = doJSON(t, env.app, http.MethodGet, "/workflows/"+created.ID+"/runs", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	runs := decodeBody[[]models.WorkflowRun](t, resp)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunStatusSuccess, runs[0].Status)

	resp = doJSON(t, env.app, http.MethodGet, "/runs/"+runs[0].ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExecuteWorkflowFailureReturnsRunError(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/workflows", web.WorkflowRequest{
		Name: "Cyclic",
		Nodes: []web.NodeRequest{
			{ID: "a", Type: models.NodeTypeComposeMessage, Data: map[string]any{}},
			{ID: "b", Type: models.NodeTypeComposeMessage, Data: map[string]any{}},
		},
		Edges: []web.EdgeRequest{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "b", Target: "a"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.Workflow](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/workflows/"+created.ID+"/execute", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "failed", result["status"])
	assert.Contains(t, result["error"], "cycle")
}

func TestExecuteMissingWorkflow(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/workflows/ghost/execute", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEnqueueWithoutQueue(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/workflows", web.WorkflowRequest{
		Name: "Queued ping",
		Nodes: []web.NodeRequest{
			{ID: "compose", Type: models.NodeTypeComposeMessage, Data: map[string]any{}},
		},
	})
	created := decodeBody[models.Workflow](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/workflows/"+created.ID+"/runs", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestTeamCRUD(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/teams", models.Team{Name: "Platform"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	team := decodeBody[models.Team](t, resp)

	resp = doJSON(t, env.app, http.MethodGet, "/teams/"+team.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/engineers", models.Engineer{
		Name: "Ada", Email: "ada@example.com", TeamID: team.ID, SlackUserID: "U123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/engineers/?team_id="+team.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	engineers := decodeBody[[]models.Engineer](t, resp)
	require.Len(t, engineers, 1)
	assert.Equal(t, "Ada", engineers[0].Name)

	resp = doJSON(t, env.app, http.MethodDelete, "/teams/"+team.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestEngineerValidation(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/engineers", models.Engineer{Name: "NoEmail"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRunbookAndFolderFlow(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/folders", models.Folder{Name: "Incidents"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	folder := decodeBody[models.Folder](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/runbooks", models.Runbook{
		Title:    "Postgres failover",
		FolderID: folder.ID,
		Content:  map[string]any{"type": "doc"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	runbook := decodeBody[models.Runbook](t, resp)

	// Deleting the folder moves its runbooks to the root.
	resp = doJSON(t, env.app, http.MethodDelete, "/folders/"+folder.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/runbooks/"+runbook.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	moved := decodeBody[models.Runbook](t, resp)
	assert.Empty(t, moved.FolderID)
}

func TestBoardFlow(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/projects", models.Project{Name: "Ops board"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	project := decodeBody[models.Project](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/projects/"+project.ID+"/columns", models.Column{Name: "Todo"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	column := decodeBody[models.Column](t, resp)
	assert.Equal(t, project.ID, column.ProjectID)

	resp = doJSON(t, env.app, http.MethodPost, "/columns/"+column.ID+"/cards", models.Card{Title: "Rotate keys"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/columns/"+column.ID+"/cards", nil)
	cards := decodeBody[[]models.Card](t, resp)
	require.Len(t, cards, 1)
	assert.Equal(t, "Rotate keys", cards[0].Title)
}

func TestSlackConfigRedaction(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/slack-configs", models.SlackConfig{
		Name: "prod", BotToken: "xoxb-secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[models.SlackConfig](t, resp)
	assert.Equal(t, "***", created.BotToken)

	resp = doJSON(t, env.app, http.MethodGet, "/slack-configs/", nil)
	configs := decodeBody[[]models.SlackConfig](t, resp)
	require.Len(t, configs, 1)
	assert.Equal(t, "***", configs[0].BotToken)
}

func TestSlackConfigGetAndUpdate(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/slack-configs", models.SlackConfig{
		Name: "prod", BotToken: "xoxb-secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.SlackConfig](t, resp)

	resp = doJSON(t, env.app, http.MethodGet, "/slack-configs/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	fetched := decodeBody[models.SlackConfig](t, resp)
	assert.Equal(t, "prod", fetched.Name)
	assert.Equal(t, "***", fetched.BotToken)

	resp = doJSON(t, env.app, http.MethodPut, "/slack-configs/"+created.ID, models.SlackConfig{
		Name: "prod-eu", BotToken: "***", DefaultChannel: "#ops",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decodeBody[models.SlackConfig](t, resp)
	assert.Equal(t, "prod-eu", updated.Name)
	assert.Equal(t, "#ops", updated.DefaultChannel)
	assert.Equal(t, "***", updated.BotToken)

	// The redacted placeholder sent back must not clobber the token.
	stored, err := env.store.SlackConfigRepository().GetByID(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "xoxb-secret", stored.BotToken)

	resp = doJSON(t, env.app, http.MethodGet, "/slack-configs/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReorderCardsEndpoint(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/projects", models.Project{Name: "Board"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	project := decodeBody[models.Project](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/projects/"+project.ID+"/columns", models.Column{Name: "To do"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	todo := decodeBody[models.Column](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/projects/"+project.ID+"/columns", models.Column{Name: "Doing", Position: 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doing := decodeBody[models.Column](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/columns/"+todo.ID+"/cards", models.Card{Title: "First"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decodeBody[models.Card](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/columns/"+todo.ID+"/cards", models.Card{Title: "Second", Position: 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	second := decodeBody[models.Card](t, resp)

	resp = doJSON(t, env.app, http.MethodPost, "/cards/reorder", web.ReorderCardsRequest{
		Columns: []services.ColumnOrder{
			{ColumnID: todo.ID, CardIDs: []string{first.ID}},
			{ColumnID: doing.ID, CardIDs: []string{second.ID}},
		},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/columns/"+doing.ID+"/cards", nil)
	cards := decodeBody[[]models.Card](t, resp)
	require.Len(t, cards, 1)
	assert.Equal(t, "Second", cards[0].Title)
	assert.Equal(t, 0, cards[0].Position)
}

func TestNodeTypesEndpoint(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodGet, "/node-types", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	types := decodeBody[[]web.NodeTypeResponse](t, resp)
	assert.Len(t, types, 4)
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestApp(t)

	resp := doJSON(t, env.app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "healthy", health["status"])
}
