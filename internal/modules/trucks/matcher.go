package trucks

import (
	"roadside-dispatch/internal/models"
	"roadside-dispatch/internal/modules/maps"
)

// maxAdmissibleDistance is the cutoff beyond which a truck is not considered
// a viable match, the unreachable sentinel included.
const maxAdmissibleDistance = 10_000_000

// Matcher ranks candidate trucks by graph distance to an order's node. It is
// a pure query component: no side effects, deterministic output.
type Matcher struct{}

// NewMatcher creates a new matcher.
func NewMatcher() Matcher {
	return Matcher{}
}

// Nearest returns the admissible truck closest to orderNodeID, or nil when
// the candidate set is empty or every candidate is too far to serve the
// order. Distance ties settle on the lower truck id so repeated queries over
// the same data pick the same truck.
func (Matcher) Nearest(graph *maps.Graph, candidates []models.TowTruck, orderNodeID int) *models.TowTruck {
	var best *models.TowTruck
	bestDistance := 0

	for i := range candidates {
		truck := &candidates[i]
		distance := graph.ShortestPath(truck.NodeID, orderNodeID)
		if best == nil || distance < bestDistance ||
			(distance == bestDistance && truck.ID < best.ID) {
			best = truck
			bestDistance = distance
		}
	}

	if best == nil || bestDistance > maxAdmissibleDistance {
		return nil
	}
	return best
}
