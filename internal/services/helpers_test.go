package services

import (
	"delivery-planner/internal/domain"
	"delivery-planner/internal/streetmap"
	"math"
	"math/rand/v2"
	"strconv"
)

func coord(lat, lon string) domain.Coordinate { return domain.MustParseCoordinate(lat, lon) }

func seg(from, to domain.Coordinate, street string) domain.Segment {
	return domain.Segment{From: from, To: to, Street: street}
}

// gridEdges builds an n x n street grid around (34.0, -118.0) with 0.01 degree
// spacing, dropping each edge with probability drop. rng may be nil when drop is 0.
func gridEdges(n int, drop float64, rng *rand.Rand) ([]domain.StreetEdge, []domain.Coordinate) {
	at := func(i, j int) domain.Coordinate {
		lat := strconv.FormatFloat(34.0+float64(i)*0.01, 'f', 4, 64)
		lon := strconv.FormatFloat(-118.0+float64(j)*0.01, 'f', 4, 64)
		return domain.MustParseCoordinate(lat, lon)
	}

	var edges []domain.StreetEdge
	var nodes []domain.Coordinate
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			nodes = append(nodes, at(i, j))
			if j+1 < n && !dropped(drop, rng) {
				edges = append(edges, domain.StreetEdge{From: at(i, j), To: at(i, j+1), Street: "Row " + strconv.Itoa(i)})
			}
			if i+1 < n && !dropped(drop, rng) {
				edges = append(edges, domain.StreetEdge{From: at(i, j), To: at(i+1, j), Street: "Col " + strconv.Itoa(j)})
			}
		}
	}
	// A diagonal shortcut so the optimum is not always a Manhattan path.
	if n > 2 {
		edges = append(edges, domain.StreetEdge{From: at(0, 0), To: at(1, 1), Street: "Diagonal"})
	}
	return edges, nodes
}

func dropped(drop float64, rng *rand.Rand) bool {
	return drop > 0 && rng.Float64() < drop
}

// dijkstra is an O(V^2) reference implementation returning the shortest
// distance from start to every reachable node.
func dijkstra(sm *streetmap.StreetMap, nodes []domain.Coordinate, start domain.Coordinate) map[domain.CoordKey]float64 {
	dist := map[domain.CoordKey]float64{start.Key(): 0}
	done := map[domain.CoordKey]bool{}
	byKey := map[domain.CoordKey]domain.Coordinate{}
	for _, n := range nodes {
		byKey[n.Key()] = n
	}

	for {
		var best domain.CoordKey
		bestDist := math.Inf(1)
		for k, d := range dist {
			if !done[k] && d < bestDist {
				best, bestDist = k, d
			}
		}
		if math.IsInf(bestDist, 1) {
			return dist
		}
		done[best] = true

		segs, _ := sm.SegmentsFrom(byKey[best])
		for _, s := range segs {
			nd := bestDist + s.Length()
			if old, ok := dist[s.To.Key()]; !ok || nd < old {
				dist[s.To.Key()] = nd
			}
		}
	}
}
