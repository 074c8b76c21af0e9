package ports

import "delivery-planner/internal/domain"

// Contract for point-to-point road routing.
type RouteFinder interface {
	// Return the segment chain from start to end and its length in miles.
	Route(start, end domain.Coordinate) (domain.Route, error)
}
