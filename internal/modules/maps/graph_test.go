package maps

import (
	"testing"

	"roadside-dispatch/internal/models"

	"github.com/stretchr/testify/assert"
)

func buildGraph(nodeIDs []int, edges []models.Edge) *Graph {
	g := NewGraph()
	for _, id := range nodeIDs {
		g.AddNode(models.Node{ID: id, AreaID: 1})
	}
	for _, e := range edges {
		g.AddEdge(e)
	}
	return g
}

func TestShortestPath(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		g := buildGraph([]int{1}, nil)
		assert.Equal(t, 0, g.ShortestPath(1, 1))
	})

	t.Run("single edge is symmetric", func(t *testing.T) {
		g := buildGraph([]int{1, 2}, []models.Edge{
			{NodeAID: 1, NodeBID: 2, Weight: 7},
		})
		assert.Equal(t, 7, g.ShortestPath(1, 2))
		assert.Equal(t, 7, g.ShortestPath(2, 1))
	})

	t.Run("multi hop path", func(t *testing.T) {
		g := buildGraph([]int{1, 2, 3}, []models.Edge{
			{NodeAID: 1, NodeBID: 2, Weight: 5},
			{NodeAID: 2, NodeBID: 3, Weight: 3},
		})
		assert.Equal(t, 8, g.ShortestPath(1, 3))
	})

	t.Run("shorter edge wins over existing path", func(t *testing.T) {
		g := buildGraph([]int{1, 2, 3}, []models.Edge{
			{NodeAID: 1, NodeBID: 2, Weight: 5},
			{NodeAID: 2, NodeBID: 3, Weight: 3},
		})
		assert.Equal(t, 8, g.ShortestPath(1, 3))

		g.AddEdge(models.Edge{NodeAID: 1, NodeBID: 3, Weight: 4})
		assert.Equal(t, 4, g.ShortestPath(1, 3))
	})

	t.Run("disconnected nodes are unreachable", func(t *testing.T) {
		g := buildGraph([]int{1, 2, 3}, []models.Edge{
			{NodeAID: 1, NodeBID: 2, Weight: 5},
		})
		assert.Equal(t, Unreachable, g.ShortestPath(1, 3))
	})

	t.Run("unknown nodes are unreachable", func(t *testing.T) {
		g := buildGraph([]int{1}, nil)
		assert.Equal(t, Unreachable, g.ShortestPath(1, 99))
		assert.Equal(t, Unreachable, g.ShortestPath(99, 1))
	})

	t.Run("duplicate edges keep the cheaper path", func(t *testing.T) {
		g := buildGraph([]int{1, 2}, []models.Edge{
			{NodeAID: 1, NodeBID: 2, Weight: 9},
			{NodeAID: 1, NodeBID: 2, Weight: 4},
		})
		assert.Equal(t, 4, g.ShortestPath(1, 2))
	})

	t.Run("self loop does not change distances", func(t *testing.T) {
		g := buildGraph([]int{1, 2}, []models.Edge{
			{NodeAID: 1, NodeBID: 1, Weight: 3},
			{NodeAID: 1, NodeBID: 2, Weight: 6},
		})
		assert.Equal(t, 0, g.ShortestPath(1, 1))
		assert.Equal(t, 6, g.ShortestPath(1, 2))
	})

	t.Run("repeated queries are deterministic", func(t *testing.T) {
		g := buildGraph([]int{1, 2, 3, 4}, []models.Edge{
			{NodeAID: 1, NodeBID: 2, Weight: 2},
			{NodeAID: 1, NodeBID: 3, Weight: 2},
			{NodeAID: 2, NodeBID: 4, Weight: 2},
			{NodeAID: 3, NodeBID: 4, Weight: 2},
		})
		first := g.ShortestPath(1, 4)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, g.ShortestPath(1, 4))
		}
		assert.Equal(t, 4, first)
	})
}
