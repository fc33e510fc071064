package selectengineer

import (
	"context"
	"testing"

	"github.com/opsdeck/opsdeck/pkg/mocks"
	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSelectEngineerNode_Execute(t *testing.T) {
	directory := &mocks.MockDirectory{}
	directory.On("GetEngineer", mock.Anything, "eng-1").Return(&models.Engineer{
		ID:          "eng-1",
		Name:        "Grace",
		Email:       "grace@example.com",
		SlackUserID: "U123",
	}, nil)

	node, err := NewSelectEngineerNode("n1", map[string]any{"engineerId": "eng-1"}, directory)
	require.NoError(t, err)

	output, err := node.Execute(context.Background(), models.ExecutionContext{})
	require.NoError(t, err)

	assert.Equal(t, "eng-1", output["engineerId"])
	assert.Equal(t, "Grace", output["engineerName"])
	assert.Equal(t, "grace@example.com", output["engineerEmail"])
	assert.Equal(t, "U123", output["engineerSlackId"])

	directory.AssertExpectations(t)
}

func TestSelectEngineerNode_MissingEngineerID(t *testing.T) {
	_, err := NewSelectEngineerNode("n1", map[string]any{}, &mocks.MockDirectory{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not selected")
}

func TestSelectEngineerNode_NotFound(t *testing.T) {
	directory := &mocks.MockDirectory{}
	directory.On("GetEngineer", mock.Anything, "gone").Return(nil, persistence.ErrEngineerNotFound)

	node, err := NewSelectEngineerNode("n1", map[string]any{"engineerId": "gone"}, directory)
	require.NoError(t, err)

	_, err = node.Execute(context.Background(), models.ExecutionContext{})
	require.ErrorIs(t, err, persistence.ErrEngineerNotFound)
}
