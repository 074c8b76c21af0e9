// Package streetmap holds the street graph: every declared street edge is
// stored as a forward segment keyed by its start and a reverse segment
// keyed by its end.
package streetmap

import (
	"delivery-planner/internal/domain"
)

// StreetMap is built once and queried read-only afterwards.
// It is safe for concurrent readers once loading has finished.
type StreetMap struct {
	streets  map[domain.CoordKey][]domain.Segment
	segments int
}

func New() *StreetMap {
	return &StreetMap{streets: make(map[domain.CoordKey][]domain.Segment)}
}

// FromEdges builds a StreetMap from declared street edges in order.
func FromEdges(edges []domain.StreetEdge) *StreetMap {
	sm := New()
	for _, e := range edges {
		sm.AddStreet(e.From, e.To, e.Street)
	}
	return sm
}

// AddStreet inserts both directions of a street edge.
func (m *StreetMap) AddStreet(from, to domain.Coordinate, street string) {
	seg := domain.Segment{From: from, To: to, Street: street}

	m.streets[from.Key()] = append(m.streets[from.Key()], seg)
	m.streets[to.Key()] = append(m.streets[to.Key()], seg.Reverse())
	m.segments += 2
}

// SegmentsFrom returns the outgoing segments of c in insertion order.
// The bool is false when c was never part of any street edge.
func (m *StreetMap) SegmentsFrom(c domain.Coordinate) ([]domain.Segment, bool) {
	segs, ok := m.streets[c.Key()]
	return segs, ok
}

func (m *StreetMap) Contains(c domain.Coordinate) bool {
	_, ok := m.streets[c.Key()]
	return ok
}

// Len is the number of distinct coordinates.
func (m *StreetMap) Len() int { return len(m.streets) }

// SegmentCount is the number of directed segments.
func (m *StreetMap) SegmentCount() int { return m.segments }
