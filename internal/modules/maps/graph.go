package maps

import (
	"container/heap"
	"math"

	"roadside-dispatch/internal/models"
)

// Unreachable is the distance reported when no route exists between two
// nodes, or when either node is missing from the graph. Callers must treat
// it as "no route", never as a real distance.
const Unreachable = math.MaxInt32

// Graph is an in-memory weighted undirected graph over one area's nodes.
// It is built fresh per query and never shared between goroutines, so it
// needs no locking. Self-loops and duplicate edges are stored as-is.
type Graph struct {
	nodes map[int]models.Node
	edges map[int][]models.Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[int]models.Node),
		edges: make(map[int][]models.Edge),
	}
}

// AddNode inserts a node, overwriting any previous node with the same id.
func (g *Graph) AddNode(node models.Node) {
	g.nodes[node.ID] = node
}

// AddEdge inserts an edge in both directions so the graph stays symmetric.
// Weight must be non-negative; negative weights make distances undefined.
func (g *Graph) AddEdge(edge models.Edge) {
	g.edges[edge.NodeAID] = append(g.edges[edge.NodeAID], edge)
	g.edges[edge.NodeBID] = append(g.edges[edge.NodeBID], models.Edge{
		NodeAID: edge.NodeBID,
		NodeBID: edge.NodeAID,
		Weight:  edge.Weight,
	})
}

// ShortestPath returns the minimum total edge weight over any path from
// fromID to toID, or Unreachable when no such path exists. Equal-cost ties
// settle on the lower node id first so results are reproducible.
func (g *Graph) ShortestPath(fromID, toID int) int {
	if _, ok := g.nodes[fromID]; !ok {
		return Unreachable
	}
	if _, ok := g.nodes[toID]; !ok {
		return Unreachable
	}
	if fromID == toID {
		return 0
	}

	dist := make(map[int]int, len(g.nodes))
	dist[fromID] = 0

	pq := &nodeQueue{{nodeID: fromID, distance: 0}}
	heap.Init(pq)

	settled := make(map[int]bool, len(g.nodes))

	for pq.Len() > 0 {
		item := heap.Pop(pq).(nodeItem)
		if settled[item.nodeID] {
			continue
		}
		if item.nodeID == toID {
			return item.distance
		}
		settled[item.nodeID] = true

		for _, edge := range g.edges[item.nodeID] {
			next := edge.NodeBID
			tentative := item.distance + edge.Weight
			if current, seen := dist[next]; !seen || tentative < current {
				dist[next] = tentative
				heap.Push(pq, nodeItem{nodeID: next, distance: tentative})
			}
		}
	}

	return Unreachable
}

type nodeItem struct {
	nodeID   int
	distance int
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].distance != q[j].distance {
		return q[i].distance < q[j].distance
	}
	return q[i].nodeID < q[j].nodeID
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(nodeItem)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
