package models

// Node is an intersection in a service area's road network. Immutable once
// created; every node belongs to exactly one area.
type Node struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	AreaID int `json:"area_id"`
}

// Edge is an undirected road segment between two nodes. Weight is a
// non-negative travel cost.
type Edge struct {
	NodeAID int `json:"node_a_id"`
	NodeBID int `json:"node_b_id"`
	Weight  int `json:"weight"`
}

// UpdateEdgeRequest is the body for adjusting an edge's weight, e.g. to
// reflect congestion or road closure.
type UpdateEdgeRequest struct {
	NodeAID int `json:"node_a_id" validate:"required,gt=0"`
	NodeBID int `json:"node_b_id" validate:"required,gt=0"`
	Weight  int `json:"weight" validate:"gte=0"`
}
