package services

import (
	"container/heap"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/ports"
	"fmt"
	"slices"
)

// RouteSearch finds shortest road routes over a street graph with A*.
//
// The heuristic is the great-circle distance to the target, which never
// exceeds the remaining road distance, so the first time the target leaves
// the frontier its cost is optimal. It holds no mutable state and is safe
// for concurrent use.
type RouteSearch struct {
	graph ports.StreetGraph
}

func NewRouteSearch(graph ports.StreetGraph) *RouteSearch {
	return &RouteSearch{graph: graph}
}

// Route returns the segment chain from start to end and its total length in miles.
func (r *RouteSearch) Route(start, end domain.Coordinate) (domain.Route, error) {
	if _, ok := r.graph.SegmentsFrom(start); !ok {
		return domain.Route{}, fmt.Errorf("route search: start %v: %w", start, domain.ErrInvalidCoordinate)
	}
	if _, ok := r.graph.SegmentsFrom(end); !ok {
		return domain.Route{}, fmt.Errorf("route search: end %v: %w", end, domain.ErrInvalidCoordinate)
	}

	goal := end.Key()
	gCost := map[domain.CoordKey]float64{start.Key(): 0}
	// cameFrom holds the segment used to reach each discovered node.
	cameFrom := make(map[domain.CoordKey]domain.Segment)

	pq := &frontier{}
	heap.Init(pq)
	pq.push(start, 0, domain.DistanceEarthMiles(start, end))

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*frontierItem)
		key := cur.coord.Key()

		if cur.g > gCost[key] {
			continue // stale entry
		}

		if key == goal {
			return reconstructRoute(cameFrom, start, end), nil
		}

		segs, _ := r.graph.SegmentsFrom(cur.coord)
		for _, seg := range segs {
			next := seg.To.Key()
			tentative := cur.g + seg.Length()

			if old, ok := gCost[next]; ok && tentative >= old {
				continue
			}
			gCost[next] = tentative
			cameFrom[next] = seg
			pq.push(seg.To, tentative, tentative+domain.DistanceEarthMiles(seg.To, end))
		}
	}

	return domain.Route{}, fmt.Errorf("route search: %v -> %v: %w", start, end, domain.ErrNoRouteFound)
}

// reconstructRoute walks predecessors back from end and returns the chain in travel order.
func reconstructRoute(cameFrom map[domain.CoordKey]domain.Segment, start, end domain.Coordinate) domain.Route {
	var segs []domain.Segment
	miles := 0.0

	cur := end.Key()
	for cur != start.Key() {
		seg, ok := cameFrom[cur]
		if !ok {
			break
		}
		segs = append(segs, seg)
		miles += seg.Length()
		cur = seg.From.Key()
	}
	slices.Reverse(segs)

	return domain.Route{Segments: segs, Miles: miles}
}

type frontierItem struct {
	coord domain.Coordinate
	g     float64
	f     float64
	seq   uint64
}

// frontier is a min-heap on f-cost. Ties go to the earlier push so that
// results do not depend on heap internals.
type frontier struct {
	items []*frontierItem
	next  uint64
}

func (pq *frontier) push(c domain.Coordinate, g, f float64) {
	heap.Push(pq, &frontierItem{coord: c, g: g, f: f, seq: pq.next})
	pq.next++
}

func (pq frontier) Len() int { return len(pq.items) }

func (pq frontier) Less(i, j int) bool {
	if pq.items[i].f != pq.items[j].f {
		return pq.items[i].f < pq.items[j].f
	}
	return pq.items[i].seq < pq.items[j].seq
}

func (pq frontier) Swap(i, j int) { pq.items[i], pq.items[j] = pq.items[j], pq.items[i] }

func (pq *frontier) Push(x any) {
	pq.items = append(pq.items, x.(*frontierItem))
}

func (pq *frontier) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	pq.items = old[:n-1]
	return item
}
