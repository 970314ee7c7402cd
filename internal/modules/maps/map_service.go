package maps

import (
	"context"
	"fmt"

	"roadside-dispatch/internal/models"
)

// ServiceInterface defines the map business logic other modules consume.
type ServiceInterface interface {
	// AreaIDForNode resolves which area a node belongs to.
	AreaIDForNode(ctx context.Context, nodeID int) (int, error)
	// BuildAreaGraph loads one area's nodes and edges into a fresh Graph.
	BuildAreaGraph(ctx context.Context, areaID int) (*Graph, error)
	// GetAreaMap returns an area's raw nodes and edges for presentation.
	GetAreaMap(ctx context.Context, areaID *int) ([]models.Node, []models.Edge, error)
	// UpdateEdge changes an edge's weight.
	UpdateEdge(ctx context.Context, nodeAID, nodeBID, weight int) error
}

// Service implements the map service logic.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new map service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) AreaIDForNode(ctx context.Context, nodeID int) (int, error) {
	return s.repo.AreaIDForNode(ctx, nodeID)
}

// BuildAreaGraph builds the graph for a single area. The result is owned by
// the caller and must not be shared across queries.
func (s *Service) BuildAreaGraph(ctx context.Context, areaID int) (*Graph, error) {
	nodes, err := s.repo.ListNodes(ctx, &areaID)
	if err != nil {
		return nil, fmt.Errorf("service.BuildAreaGraph: %w", err)
	}
	edges, err := s.repo.ListEdges(ctx, &areaID)
	if err != nil {
		return nil, fmt.Errorf("service.BuildAreaGraph: %w", err)
	}

	graph := NewGraph()
	for _, node := range nodes {
		graph.AddNode(node)
	}
	for _, edge := range edges {
		graph.AddEdge(edge)
	}
	return graph, nil
}

func (s *Service) GetAreaMap(ctx context.Context, areaID *int) ([]models.Node, []models.Edge, error) {
	nodes, err := s.repo.ListNodes(ctx, areaID)
	if err != nil {
		return nil, nil, fmt.Errorf("service.GetAreaMap: %w", err)
	}
	edges, err := s.repo.ListEdges(ctx, areaID)
	if err != nil {
		return nil, nil, fmt.Errorf("service.GetAreaMap: %w", err)
	}
	return nodes, edges, nil
}

func (s *Service) UpdateEdge(ctx context.Context, nodeAID, nodeBID, weight int) error {
	if err := s.repo.UpdateEdge(ctx, nodeAID, nodeBID, weight); err != nil {
		return fmt.Errorf("service.UpdateEdge: %w", err)
	}
	return nil
}
