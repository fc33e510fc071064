package workflow

import (
	"testing"

	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string) *models.Node {
	return &models.Node{ID: id, Type: models.NodeTypeComposeMessage, Data: map[string]any{}}
}

func edge(id, source, target string) *models.Edge {
	return &models.Edge{ID: id, Source: source, Target: target}
}

func TestExecutionOrder_LinearChain(t *testing.T) {
	nodes := []*models.Node{node("a"), node("b"), node("c")}
	edges := []*models.Edge{edge("e1", "a", "b"), edge("e2", "b", "c")}

	order, err := ExecutionOrder(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestExecutionOrder_DiamondIsDeterministic(t *testing.T) {
	nodes := []*models.Node{node("a"), node("b"), node("c"), node("d")}
	edges := []*models.Edge{
		edge("e1", "a", "b"),
		edge("e2", "a", "c"),
		edge("e3", "b", "d"),
		edge("e4", "c", "d"),
	}

	first, err := ExecutionOrder(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, first)

	for range 20 {
		again, err := ExecutionOrder(nodes, edges)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestExecutionOrder_IsolatedNodesIncluded(t *testing.T) {
	nodes := []*models.Node{node("a"), node("lonely"), node("b")}
	edges := []*models.Edge{edge("e1", "a", "b")}

	order, err := ExecutionOrder(nodes, edges)
	require.NoError(t, err)
	assert.Len(t, order, 3)
	assert.Contains(t, order, "lonely")
}

func TestExecutionOrder_EmptyGraph(t *testing.T) {
	order, err := ExecutionOrder(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestExecutionOrder_Cycle(t *testing.T) {
	nodes := []*models.Node{node("a"), node("b"), node("c")}
	edges := []*models.Edge{
		edge("e1", "a", "b"),
		edge("e2", "b", "c"),
		edge("e3", "c", "a"),
	}

	_, err := ExecutionOrder(nodes, edges)
	require.ErrorIs(t, err, ErrCyclicGraph)
}

func TestExecutionOrder_SelfLoop(t *testing.T) {
	nodes := []*models.Node{node("a")}
	edges := []*models.Edge{edge("e1", "a", "a")}

	_, err := ExecutionOrder(nodes, edges)
	require.ErrorIs(t, err, ErrCyclicGraph)
}

func TestExecutionOrder_PartialCycleBehindValidPrefix(t *testing.T) {
	// a feeds a two-node cycle; only a is orderable.
	nodes := []*models.Node{node("a"), node("b"), node("c")}
	edges := []*models.Edge{
		edge("e1", "a", "b"),
		edge("e2", "b", "c"),
		edge("e3", "c", "b"),
	}

	_, err := ExecutionOrder(nodes, edges)
	require.ErrorIs(t, err, ErrCyclicGraph)
}

func TestExecutionOrder_UnknownEdgeEndpoints(t *testing.T) {
	nodes := []*models.Node{node("a")}

	_, err := ExecutionOrder(nodes, []*models.Edge{edge("e1", "ghost", "a")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source node ghost")

	_, err = ExecutionOrder(nodes, []*models.Edge{edge("e1", "a", "ghost")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target node ghost")
}

func TestExecutionOrder_DuplicateEdgesCollapse(t *testing.T) {
	nodes := []*models.Node{node("a"), node("b")}
	edges := []*models.Edge{
		edge("e1", "a", "b"),
		edge("e2", "a", "b"),
		edge("e3", "a", "b"),
	}

	order, err := ExecutionOrder(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}
