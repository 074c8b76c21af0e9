package ports

import "delivery-planner/internal/domain"

// Read-only street graph queried by route search.
type StreetGraph interface {
	// Outgoing segments of c. ok is false when c is not a node of the graph,
	// which route search treats as an invalid coordinate.
	SegmentsFrom(c domain.Coordinate) (segs []domain.Segment, ok bool)
}
