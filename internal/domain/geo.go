package domain

import "math"

const (
	earthRadiusKm = 6371.0
	milesPerKm    = 1 / 1.609344
)

// DistanceEarthKm returns the haversine distance between two points.
func DistanceEarthKm(a, b Coordinate) float64 {
	lat1 := toRad(a.Lat)
	lon1 := toRad(a.Lon)
	lat2 := toRad(b.Lat)
	lon2 := toRad(b.Lon)

	u := math.Sin((lat2 - lat1) / 2)
	v := math.Sin((lon2 - lon1) / 2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(u*u+math.Cos(lat1)*math.Cos(lat2)*v*v))
}

func DistanceEarthMiles(a, b Coordinate) float64 {
	return DistanceEarthKm(a, b) * milesPerKm
}

// AngleOfLine is the bearing of a segment in degrees, in [0, 360),
// measured counter-clockwise from east.
func AngleOfLine(s Segment) float64 {
	deg := toDeg(math.Atan2(s.To.Lat-s.From.Lat, s.To.Lon-s.From.Lon))
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleBetween2Lines is the signed change of bearing from line1 to line2,
// normalized to [0, 360).
func AngleBetween2Lines(line1, line2 Segment) float64 {
	a1 := math.Atan2(line1.To.Lat-line1.From.Lat, line1.To.Lon-line1.From.Lon)
	a2 := math.Atan2(line2.To.Lat-line2.From.Lat, line2.To.Lon-line2.From.Lon)

	deg := toDeg(a2 - a1)
	switch {
	case deg < 0:
		deg += 360
	case deg >= 360:
		deg -= 360
	}
	return deg
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }
