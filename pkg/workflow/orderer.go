// Package workflow contains the execution engine: the graph orderer
// and the run orchestrator.
package workflow

import (
	"errors"
	"fmt"

	"github.com/opsdeck/opsdeck/pkg/models"
)

// ErrCyclicGraph is returned when no topological order exists for the
// reachable node set.
var ErrCyclicGraph = errors.New("workflow contains cycles")

// ExecutionOrder computes a linear order over the workflow graph using
// Kahn's algorithm, or fails when none exists.
//
// The order is deterministic: the zero in-degree seed queue and each
// adjacency list follow node/edge declaration order, so repeated runs
// of the same stored graph execute identically. Duplicate edges
// between the same pair collapse to one dependency (set semantics): a
// node behind two parallel edges from one predecessor is schedulable
// after a single arrival.
func ExecutionOrder(nodes []*models.Node, edges []*models.Edge) ([]string, error) {
	adjacency := make(map[string][]string, len(nodes))
	inDegree := make(map[string]int, len(nodes))

	for _, node := range nodes {
		adjacency[node.ID] = nil
		inDegree[node.ID] = 0
	}

	seen := make(map[[2]string]bool, len(edges))

	for _, edge := range edges {
		if _, ok := inDegree[edge.Source]; !ok {
			return nil, fmt.Errorf("edge %s references unknown source node %s", edge.ID, edge.Source)
		}

		if _, ok := inDegree[edge.Target]; !ok {
			return nil, fmt.Errorf("edge %s references unknown target node %s", edge.ID, edge.Target)
		}

		pair := [2]string{edge.Source, edge.Target}
		if seen[pair] {
			continue
		}

		seen[pair] = true

		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
		inDegree[edge.Target]++
	}

	// Seed with zero in-degree nodes in declaration order.
	queue := make([]string, 0, len(nodes))

	for _, node := range nodes {
		if inDegree[node.ID] == 0 {
			queue = append(queue, node.ID)
		}
	}

	order := make([]string, 0, len(nodes))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, successor := range adjacency[current] {
			inDegree[successor]--
			if inDegree[successor] == 0 {
				queue = append(queue, successor)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, ErrCyclicGraph
	}

	return order, nil
}
