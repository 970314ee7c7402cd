package models

// Tow-truck statuses written by the application. The column is free text;
// anything else read from storage is displayed as-is.
const (
	TruckAvailable = "available"
	TruckBusy      = "busy"
)

// TowTruck represents a tow truck together with its driver and the node it
// last reported from. Location updates are appended as history rows; NodeID
// here is always the most recent one.
type TowTruck struct {
	ID             int    `json:"id"`
	DriverID       int    `json:"driver_id"`
	DriverUsername string `json:"driver_username,omitempty"`
	Status         string `json:"status"`
	AreaID         int    `json:"area_id"`
	NodeID         int    `json:"node_id"`
}

// UpdateLocationRequest is the body a driver posts to report the truck's
// current node.
type UpdateLocationRequest struct {
	TowTruckID int `json:"tow_truck_id" validate:"required,gt=0"`
	NodeID     int `json:"node_id" validate:"required,gt=0"`
}

// UpdateTruckStatusRequest is the body for administrative status changes.
type UpdateTruckStatusRequest struct {
	TowTruckID int    `json:"tow_truck_id" validate:"required,gt=0"`
	Status     string `json:"status" validate:"required"`
}
