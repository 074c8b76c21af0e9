package domain

// Segment is a directed piece of a named street.
// Every undirected street edge is stored as two reciprocal segments.
type Segment struct {
	From   Coordinate `json:"from"`
	To     Coordinate `json:"to"`
	Street string     `json:"street"`
}

// Length is the great-circle length of the segment in miles.
func (s Segment) Length() float64 { return DistanceEarthMiles(s.From, s.To) }

func (s Segment) Reverse() Segment {
	return Segment{From: s.To, To: s.From, Street: s.Street}
}

// StreetEdge is an undirected street edge as declared by a map source.
type StreetEdge struct {
	From   Coordinate
	To     Coordinate
	Street string
}

// Route is the result of a single point-to-point search.
type Route struct {
	Segments []Segment `json:"segments"`
	Miles    float64   `json:"miles"`
}
