package models

import "time"

// Order statuses written by the lifecycle engine. The column is free text at
// the storage boundary; the engine only ever writes these three. A
// "completed" status and CompletedTime exist on the wire but no operation
// sets them yet.
const (
	OrderPending    = "pending"
	OrderDispatched = "dispatched"
	OrderCompleted  = "completed"
)

// Order is the root entity of the dispatch lifecycle. DispatcherID and
// TowTruckID are nil until the order is dispatched.
type Order struct {
	ID            int        `json:"id"`
	ClientID      int        `json:"client_id"`
	DispatcherID  *int       `json:"dispatcher_id,omitempty"`
	TowTruckID    *int       `json:"tow_truck_id,omitempty"`
	Status        string     `json:"status"`
	NodeID        int        `json:"node_id"`
	CarValue      float64    `json:"car_value"`
	OrderTime     time.Time  `json:"order_time"`
	CompletedTime *time.Time `json:"completed_time,omitempty"`
}

// EnrichedOrder is an Order joined with identity and area data for
// presentation: usernames for the client, the dispatcher's owning user and
// the truck's driver, plus the area resolved from the order's node.
type EnrichedOrder struct {
	ID                 int        `json:"id"`
	ClientID           int        `json:"client_id"`
	ClientUsername     string     `json:"client_username"`
	DispatcherID       *int       `json:"dispatcher_id,omitempty"`
	DispatcherUserID   *int       `json:"dispatcher_user_id,omitempty"`
	DispatcherUsername *string    `json:"dispatcher_username,omitempty"`
	TowTruckID         *int       `json:"tow_truck_id,omitempty"`
	DriverUserID       *int       `json:"driver_user_id,omitempty"`
	DriverUsername     *string    `json:"driver_username,omitempty"`
	Status             string     `json:"status"`
	NodeID             int        `json:"node_id"`
	AreaID             int        `json:"area_id"`
	CarValue           float64    `json:"car_value"`
	OrderTime          time.Time  `json:"order_time"`
	CompletedTime      *time.Time `json:"completed_time,omitempty"`
}

// CompletedOrder is the audit-style lineage record of a dispatch event. It is
// created once when an order is dispatched and never mutated; OrderTime and
// CarValue are denormalized from the order for historical reporting.
type CompletedOrder struct {
	ID            int        `json:"id"`
	OrderID       int        `json:"order_id"`
	TowTruckID    int        `json:"tow_truck_id"`
	OrderTime     *time.Time `json:"order_time,omitempty"`
	CompletedTime time.Time  `json:"completed_time"`
	CarValue      float64    `json:"car_value"`
}

// CreateOrderRequest is the body a client posts to request assistance.
// CarValue range is deliberately unvalidated; only structure is checked.
type CreateOrderRequest struct {
	ClientID int     `json:"client_id" validate:"required,gt=0"`
	NodeID   int     `json:"node_id" validate:"required,gt=0"`
	CarValue float64 `json:"car_value"`
}

// DispatchOrderRequest is the body a dispatcher posts to assign a truck.
type DispatchOrderRequest struct {
	OrderID      int       `json:"order_id" validate:"required,gt=0"`
	DispatcherID int       `json:"dispatcher_id" validate:"required,gt=0"`
	TowTruckID   int       `json:"tow_truck_id" validate:"required,gt=0"`
	OrderTime    time.Time `json:"order_time" validate:"required"`
}

// UpdateOrderStatusRequest is the body for administrative status overwrites.
// The engine does not validate the transition graph here.
type UpdateOrderStatusRequest struct {
	OrderID int    `json:"order_id" validate:"required,gt=0"`
	Status  string `json:"status" validate:"required"`
}
