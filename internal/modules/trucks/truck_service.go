package trucks

import (
	"context"
	"fmt"

	"roadside-dispatch/internal/models"
	"roadside-dispatch/internal/modules/maps"
)

// OrderFinder is the narrow slice of the order storage the matching flow
// needs: resolving an order to its node.
type OrderFinder interface {
	FindByID(ctx context.Context, orderID int) (*models.Order, error)
}

// ServiceInterface defines the tow-truck business logic.
type ServiceInterface interface {
	GetTowTruckByID(ctx context.Context, truckID int) (*models.TowTruck, error)
	ListTowTrucks(ctx context.Context, page, pageSize int, status *string, areaID *int) ([]models.TowTruck, error)
	UpdateLocation(ctx context.Context, truckID, nodeID int) error
	UpdateStatus(ctx context.Context, truckID int, status string) error
	// FindNearestAvailableTruck returns the closest available truck that can
	// reach the order, or nil when no admissible truck exists. A nil result
	// is a normal outcome, not an error.
	FindNearestAvailableTruck(ctx context.Context, orderID int) (*models.TowTruck, error)
}

// Service implements the tow-truck service logic.
type Service struct {
	repo    RepositoryInterface
	orders  OrderFinder
	maps    maps.ServiceInterface
	matcher Matcher
}

// NewService creates a new tow-truck service.
func NewService(repo RepositoryInterface, orders OrderFinder, mapsService maps.ServiceInterface) *Service {
	return &Service{
		repo:    repo,
		orders:  orders,
		maps:    mapsService,
		matcher: NewMatcher(),
	}
}

func (s *Service) GetTowTruckByID(ctx context.Context, truckID int) (*models.TowTruck, error) {
	return s.repo.FindByID(ctx, truckID)
}

func (s *Service) ListTowTrucks(ctx context.Context, page, pageSize int, status *string, areaID *int) ([]models.TowTruck, error) {
	return s.repo.List(ctx, page, pageSize, status, areaID)
}

func (s *Service) UpdateLocation(ctx context.Context, truckID, nodeID int) error {
	if err := s.repo.UpdateLocation(ctx, truckID, nodeID); err != nil {
		return fmt.Errorf("service.UpdateLocation: %w", err)
	}
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, truckID int, status string) error {
	if err := s.repo.UpdateStatus(ctx, truckID, status); err != nil {
		return fmt.Errorf("service.UpdateStatus: %w", err)
	}
	return nil
}

// FindNearestAvailableTruck resolves the order's area, loads that area's
// available trucks and road graph, and ranks the trucks by shortest-path
// distance to the order's node.
func (s *Service) FindNearestAvailableTruck(ctx context.Context, orderID int) (*models.TowTruck, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.FindNearestAvailableTruck: %w", err)
	}

	areaID, err := s.maps.AreaIDForNode(ctx, order.NodeID)
	if err != nil {
		return nil, fmt.Errorf("service.FindNearestAvailableTruck: %w", err)
	}

	status := models.TruckAvailable
	candidates, err := s.repo.List(ctx, 0, -1, &status, &areaID)
	if err != nil {
		return nil, fmt.Errorf("service.FindNearestAvailableTruck: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	graph, err := s.maps.BuildAreaGraph(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("service.FindNearestAvailableTruck: %w", err)
	}

	return s.matcher.Nearest(graph, candidates, order.NodeID), nil
}
