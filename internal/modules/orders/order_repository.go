package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roadside-dispatch/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the order storage operations, including the
// completed-order lineage records written at dispatch time.
type RepositoryInterface interface {
	FindByID(ctx context.Context, orderID int) (*models.Order, error)
	Create(ctx context.Context, clientID, nodeID int, carValue float64) error
	UpdateStatus(ctx context.Context, orderID int, status string) error
	UpdateDispatched(ctx context.Context, orderID, dispatcherID, truckID int) error
	List(ctx context.Context, page, pageSize int, sortBy, sortOrder string, status *string, areaID *int) ([]models.Order, error)
	CreateCompletedOrder(ctx context.Context, orderID, truckID int, orderTime time.Time) error
	ListCompletedOrders(ctx context.Context) ([]models.CompletedOrder, error)
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new order repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// scanOrder is a helper to scan a row into an Order model.
func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.ID,
		&order.ClientID,
		&order.DispatcherID,
		&order.TowTruckID,
		&order.Status,
		&order.NodeID,
		&order.CarValue,
		&order.OrderTime,
		&order.CompletedTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &order, nil
}

func (r *Repository) FindByID(ctx context.Context, orderID int) (*models.Order, error) {
	query := `
		SELECT id, client_id, dispatcher_id, tow_truck_id, status, node_id, car_value, order_time, completed_time
		FROM orders
		WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return order, nil
}

func (r *Repository) Create(ctx context.Context, clientID, nodeID int, carValue float64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO orders (client_id, node_id, status, car_value) VALUES ($1, $2, $3, $4)`,
		clientID, nodeID, models.OrderPending, carValue)
	if err != nil {
		return fmt.Errorf("repository.Create: %w", err)
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, orderID int, status string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		status, orderID)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateDispatched(ctx context.Context, orderID, dispatcherID, truckID int) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE orders SET dispatcher_id = $1, tow_truck_id = $2, status = $3 WHERE id = $4`,
		dispatcherID, truckID, models.OrderDispatched, orderID)
	if err != nil {
		return fmt.Errorf("repository.UpdateDispatched: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// List retrieves orders with an optional status filter, an optional area
// filter resolved through the orders' nodes, and a whitelisted sort column.
func (r *Repository) List(ctx context.Context, page, pageSize int, sortBy, sortOrder string, status *string, areaID *int) ([]models.Order, error) {
	column := "o.order_time"
	switch sortBy {
	case "car_value":
		column = "o.car_value"
	case "status":
		column = "o.status"
	case "order_time":
		column = "o.order_time"
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "DESC") {
		direction = "DESC"
	}

	var whereClauses []string
	var args []interface{}
	argIdx := 1

	if status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("o.status = $%d", argIdx))
		args = append(args, *status)
		argIdx++
	}
	if areaID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("n.area_id = $%d", argIdx))
		args = append(args, *areaID)
		argIdx++
	}

	query := `
		SELECT o.id, o.client_id, o.dispatcher_id, o.tow_truck_id, o.status, o.node_id, o.car_value, o.order_time, o.completed_time
		FROM orders o
		JOIN nodes n ON o.node_id = n.id`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", column, direction, argIdx, argIdx+1)
	args = append(args, pageSize, page*pageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.List scan: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.List rows: %w", err)
	}
	return orders, nil
}

func (r *Repository) CreateCompletedOrder(ctx context.Context, orderID, truckID int, orderTime time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO completed_orders (order_id, tow_truck_id, completed_time) VALUES ($1, $2, $3)`,
		orderID, truckID, orderTime)
	if err != nil {
		return fmt.Errorf("repository.CreateCompletedOrder: %w", err)
	}
	return nil
}

// ListCompletedOrders joins each lineage record with its order to carry the
// denormalized order time and car value used by reporting.
func (r *Repository) ListCompletedOrders(ctx context.Context) ([]models.CompletedOrder, error) {
	query := `
		SELECT co.id, co.order_id, co.tow_truck_id, o.order_time, co.completed_time, o.car_value
		FROM completed_orders co
		JOIN orders o ON co.order_id = o.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListCompletedOrders: %w", err)
	}
	defer rows.Close()

	var completed []models.CompletedOrder
	for rows.Next() {
		var co models.CompletedOrder
		if err := rows.Scan(&co.ID, &co.OrderID, &co.TowTruckID, &co.OrderTime, &co.CompletedTime, &co.CarValue); err != nil {
			return nil, fmt.Errorf("repository.ListCompletedOrders scan: %w", err)
		}
		completed = append(completed, co)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListCompletedOrders rows: %w", err)
	}
	return completed, nil
}
