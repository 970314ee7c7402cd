package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"roadside-dispatch/internal/models"
	"roadside-dispatch/pkg/email"
)

// IdentityReader is the slice of the user storage the enrichment flow needs.
type IdentityReader interface {
	FindUserByID(ctx context.Context, userID int) (*models.User, error)
	FindDispatcherByID(ctx context.Context, dispatcherID int) (*models.Dispatcher, error)
}

// TruckWriter is the slice of the tow-truck storage the dispatch flow needs.
type TruckWriter interface {
	FindByID(ctx context.Context, truckID int) (*models.TowTruck, error)
	ClaimForDispatch(ctx context.Context, truckID int) error
}

// AreaResolver resolves a node to its service area.
type AreaResolver interface {
	AreaIDForNode(ctx context.Context, nodeID int) (int, error)
}

// ServiceInterface defines the order lifecycle and reporting logic.
type ServiceInterface interface {
	CreateClientOrder(ctx context.Context, clientID, nodeID int, carValue float64) error
	// Dispatch runs the three dispatch writes in order: lineage record,
	// order update, truck claim. The steps are not transactional; a failure
	// after the first step leaves committed writes behind and is surfaced as
	// a PartialFailureError.
	Dispatch(ctx context.Context, orderID, dispatcherID, truckID int, orderTime time.Time) error
	UpdateOrderStatus(ctx context.Context, orderID int, status string) error
	GetEnrichedOrder(ctx context.Context, orderID int) (*models.EnrichedOrder, error)
	ListOrders(ctx context.Context, page, pageSize int, sortBy, sortOrder string, status *string, areaID *int) ([]models.EnrichedOrder, error)
	ListCompletedOrders(ctx context.Context) ([]models.CompletedOrder, error)
}

// Service implements the order service logic.
type Service struct {
	repo     RepositoryInterface
	users    IdentityReader
	trucks   TruckWriter
	areas    AreaResolver
	notifier email.SenderInterface // optional, nil disables notifications
	opsEmail string
}

// NewService creates a new order service. notifier may be nil when dispatch
// notifications are not configured.
func NewService(repo RepositoryInterface, users IdentityReader, trucks TruckWriter, areas AreaResolver, notifier email.SenderInterface, opsEmail string) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		trucks:   trucks,
		areas:    areas,
		notifier: notifier,
		opsEmail: opsEmail,
	}
}

// CreateClientOrder inserts a new pending order. A storage failure here is
// reported as a bad request: the usual cause is input referencing a missing
// client or node.
func (s *Service) CreateClientOrder(ctx context.Context, clientID, nodeID int, carValue float64) error {
	if err := s.repo.Create(ctx, clientID, nodeID, carValue); err != nil {
		return models.ErrBadRequest
	}
	return nil
}

// Dispatch assigns a truck to an order. Step order matters: the lineage
// record is cheapest to create and least harmful if orphaned, while the
// truck status is the most operationally visible write and goes last so its
// failure cannot silently leave a dispatched order without a signal.
//
// The order's current status is deliberately not checked first; callers own
// that precondition.
func (s *Service) Dispatch(ctx context.Context, orderID, dispatcherID, truckID int, orderTime time.Time) error {
	if err := s.repo.CreateCompletedOrder(ctx, orderID, truckID, orderTime); err != nil {
		return models.ErrBadRequest
	}

	if err := s.repo.UpdateDispatched(ctx, orderID, dispatcherID, truckID); err != nil {
		return &models.PartialFailureError{Step: "order_update", Err: err}
	}

	if err := s.trucks.ClaimForDispatch(ctx, truckID); err != nil {
		return &models.PartialFailureError{Step: "truck_claim", Err: err}
	}

	if s.notifier != nil {
		subject := fmt.Sprintf("Order %d dispatched", orderID)
		body := fmt.Sprintf("Order %d was assigned to tow truck %d by dispatcher %d at %s.",
			orderID, truckID, dispatcherID, orderTime.Format(time.RFC3339))
		go func() {
			if err := s.notifier.SendEmail(context.Background(), s.opsEmail, subject, body); err != nil {
				log.Printf("Failed to send dispatch notification for order %d: %v", orderID, err)
			}
		}()
	}

	return nil
}

// UpdateOrderStatus overwrites an order's status without validating the
// transition graph. Intended for administrative corrections.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("service.UpdateOrderStatus: %w", err)
	}
	return nil
}

func (s *Service) GetEnrichedOrder(ctx context.Context, orderID int) (*models.EnrichedOrder, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.GetEnrichedOrder: %w", err)
	}
	return s.enrich(ctx, order)
}

func (s *Service) ListOrders(ctx context.Context, page, pageSize int, sortBy, sortOrder string, status *string, areaID *int) ([]models.EnrichedOrder, error) {
	orders, err := s.repo.List(ctx, page, pageSize, sortBy, sortOrder, status, areaID)
	if err != nil {
		return nil, fmt.Errorf("service.ListOrders: %w", err)
	}

	results := make([]models.EnrichedOrder, 0, len(orders))
	for i := range orders {
		enriched, err := s.enrich(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *enriched)
	}
	return results, nil
}

// enrich joins an order with identity and area data. A client that cannot be
// resolved, or an assigned dispatcher or truck whose owning user cannot be
// resolved, is a data-integrity violation reported as not found.
func (s *Service) enrich(ctx context.Context, order *models.Order) (*models.EnrichedOrder, error) {
	client, err := s.users.FindUserByID(ctx, order.ClientID)
	if err != nil {
		return nil, fmt.Errorf("service.enrich client %d: %w", order.ClientID, err)
	}

	enriched := &models.EnrichedOrder{
		ID:             order.ID,
		ClientID:       order.ClientID,
		ClientUsername: client.Username,
		DispatcherID:   order.DispatcherID,
		TowTruckID:     order.TowTruckID,
		Status:         order.Status,
		NodeID:         order.NodeID,
		CarValue:       order.CarValue,
		OrderTime:      order.OrderTime,
		CompletedTime:  order.CompletedTime,
	}

	if order.DispatcherID != nil {
		dispatcher, err := s.users.FindDispatcherByID(ctx, *order.DispatcherID)
		switch {
		case errors.Is(err, models.ErrNotFound):
			// Dispatcher record gone; leave the identity fields unset.
		case err != nil:
			return nil, fmt.Errorf("service.enrich dispatcher %d: %w", *order.DispatcherID, err)
		default:
			dispatcherUser, err := s.users.FindUserByID(ctx, dispatcher.UserID)
			if err != nil {
				return nil, fmt.Errorf("service.enrich dispatcher user %d: %w", dispatcher.UserID, err)
			}
			enriched.DispatcherUserID = &dispatcher.UserID
			enriched.DispatcherUsername = &dispatcherUser.Username
		}
	}

	if order.TowTruckID != nil {
		truck, err := s.trucks.FindByID(ctx, *order.TowTruckID)
		switch {
		case errors.Is(err, models.ErrNotFound):
			// Truck record gone; leave the identity fields unset.
		case err != nil:
			return nil, fmt.Errorf("service.enrich truck %d: %w", *order.TowTruckID, err)
		default:
			driver, err := s.users.FindUserByID(ctx, truck.DriverID)
			if err != nil {
				return nil, fmt.Errorf("service.enrich driver %d: %w", truck.DriverID, err)
			}
			enriched.DriverUserID = &truck.DriverID
			enriched.DriverUsername = &driver.Username
		}
	}

	areaID, err := s.areas.AreaIDForNode(ctx, order.NodeID)
	if err != nil {
		return nil, fmt.Errorf("service.enrich area for node %d: %w", order.NodeID, err)
	}
	enriched.AreaID = areaID

	return enriched, nil
}

func (s *Service) ListCompletedOrders(ctx context.Context) ([]models.CompletedOrder, error) {
	completed, err := s.repo.ListCompletedOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ListCompletedOrders: %w", err)
	}
	return completed, nil
}
