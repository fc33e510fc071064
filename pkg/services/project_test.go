package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence/file"
)

func testBoardService(t *testing.T) *Board {
	t.Helper()

	return NewBoard(file.NewPersistence(t.TempDir()))
}

func TestBoard_ProjectLifecycle(t *testing.T) {
	service := testBoardService(t)

	project, err := service.CreateProject(t.Context(), &models.Project{Name: "Q3 Migration"})
	require.NoError(t, err)
	require.NotEmpty(t, project.ID)

	project.Description = "Move everything off the old cluster"
	updated, err := service.UpdateProject(t.Context(), project.ID, project)
	require.NoError(t, err)
	assert.Equal(t, "Move everything off the old cluster", updated.Description)

	projects, err := service.ListProjects(t.Context())
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	require.NoError(t, service.DeleteProject(t.Context(), project.ID))

	_, err = service.FetchProject(t.Context(), project.ID)
	assert.True(t, IsNotFoundError(err))
}

func TestBoard_ColumnNeedsExistingProject(t *testing.T) {
	service := testBoardService(t)

	_, err := service.CreateColumn(t.Context(), &models.Column{
		ProjectID: "ghost",
		Name:      "To do",
	})
	require.ErrorIs(t, err, ErrColumnProjectMissing)
	assert.True(t, IsValidationError(err))
}

func TestBoard_ListColumnsRequiresProject(t *testing.T) {
	service := testBoardService(t)

	_, err := service.ListColumns(t.Context(), "ghost")
	assert.True(t, IsNotFoundError(err))
}

func TestBoard_CardMovesBetweenColumns(t *testing.T) {
	service := testBoardService(t)

	project, err := service.CreateProject(t.Context(), &models.Project{Name: "Q3 Migration"})
	require.NoError(t, err)

	todo, err := service.CreateColumn(t.Context(), &models.Column{ProjectID: project.ID, Name: "To do", Position: 0})
	require.NoError(t, err)

	doing, err := service.CreateColumn(t.Context(), &models.Column{ProjectID: project.ID, Name: "Doing", Position: 1})
	require.NoError(t, err)

	card, err := service.CreateCard(t.Context(), &models.Card{
		ColumnID: todo.ID,
		Title:    "Drain replicas",
	})
	require.NoError(t, err)

	card.ColumnID = doing.ID
	card.Position = 0
	moved, err := service.UpdateCard(t.Context(), card.ID, card)
	require.NoError(t, err)
	assert.Equal(t, doing.ID, moved.ColumnID)

	todoCards, err := service.ListCards(t.Context(), todo.ID)
	require.NoError(t, err)
	assert.Empty(t, todoCards)

	doingCards, err := service.ListCards(t.Context(), doing.ID)
	require.NoError(t, err)
	require.Len(t, doingCards, 1)
	assert.Equal(t, "Drain replicas", doingCards[0].Title)
}

func TestBoard_ReorderCardsAcrossColumns(t *testing.T) {
	service := testBoardService(t)

	project, err := service.CreateProject(t.Context(), &models.Project{Name: "Board"})
	require.NoError(t, err)

	todo, err := service.CreateColumn(t.Context(), &models.Column{ProjectID: project.ID, Name: "To do"})
	require.NoError(t, err)

	doing, err := service.CreateColumn(t.Context(), &models.Column{ProjectID: project.ID, Name: "Doing", Position: 1})
	require.NoError(t, err)

	first, err := service.CreateCard(t.Context(), &models.Card{ColumnID: todo.ID, Title: "First"})
	require.NoError(t, err)

	second, err := service.CreateCard(t.Context(), &models.Card{ColumnID: todo.ID, Title: "Second", Position: 1})
	require.NoError(t, err)

	third, err := service.CreateCard(t.Context(), &models.Card{ColumnID: todo.ID, Title: "Third", Position: 2})
	require.NoError(t, err)

	// One drag: "Second" moves to Doing, the rest of To do flips.
	err = service.ReorderCards(t.Context(), []ColumnOrder{
		{ColumnID: todo.ID, CardIDs: []string{third.ID, first.ID}},
		{ColumnID: doing.ID, CardIDs: []string{second.ID}},
	})
	require.NoError(t, err)

	todoCards, err := service.ListCards(t.Context(), todo.ID)
	require.NoError(t, err)
	require.Len(t, todoCards, 2)
	assert.Equal(t, "Third", todoCards[0].Title)
	assert.Equal(t, "First", todoCards[1].Title)

	doingCards, err := service.ListCards(t.Context(), doing.ID)
	require.NoError(t, err)
	require.Len(t, doingCards, 1)
	assert.Equal(t, "Second", doingCards[0].Title)
}

func TestBoard_ReorderCardsRejectsUnknownCard(t *testing.T) {
	service := testBoardService(t)

	project, err := service.CreateProject(t.Context(), &models.Project{Name: "Board"})
	require.NoError(t, err)

	column, err := service.CreateColumn(t.Context(), &models.Column{ProjectID: project.ID, Name: "To do"})
	require.NoError(t, err)

	err = service.ReorderCards(t.Context(), []ColumnOrder{
		{ColumnID: column.ID, CardIDs: []string{"ghost"}},
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestBoard_DeleteProjectRemovesColumnsAndCards(t *testing.T) {
	service := testBoardService(t)

	project, err := service.CreateProject(t.Context(), &models.Project{Name: "Cleanup"})
	require.NoError(t, err)

	column, err := service.CreateColumn(t.Context(), &models.Column{ProjectID: project.ID, Name: "To do"})
	require.NoError(t, err)

	_, err = service.CreateCard(t.Context(), &models.Card{ColumnID: column.ID, Title: "Archive repos"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProject(t.Context(), project.ID))

	cards, err := service.ListCards(t.Context(), column.ID)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
