package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Immutable geographic point (latitude, longitude).
// Identity is the textual form read from the input: two coordinates that
// parse to the same value from differently formatted text are different
// graph nodes. Lat/Lon are only used for geometry.
type Coordinate struct {
	LatText string
	LonText string
	Lat     float64
	Lon     float64
}

// CoordKey is the comparable identity of a Coordinate.
type CoordKey struct {
	Lat string
	Lon string
}

// ParseCoordinate builds a Coordinate from its textual latitude and longitude.
func ParseCoordinate(lat, lon string) (Coordinate, error) {
	lat = strings.TrimSpace(lat)
	lon = strings.TrimSpace(lon)

	latVal, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse coordinate: latitude %q: %w", lat, err)
	}
	lonVal, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse coordinate: longitude %q: %w", lon, err)
	}
	if math.IsNaN(latVal) || latVal < -90 || latVal > 90 {
		return Coordinate{}, fmt.Errorf("parse coordinate: latitude %q out of range [-90, 90]", lat)
	}
	if math.IsNaN(lonVal) || lonVal < -180 || lonVal > 180 {
		return Coordinate{}, fmt.Errorf("parse coordinate: longitude %q out of range [-180, 180]", lon)
	}

	return Coordinate{LatText: lat, LonText: lon, Lat: latVal, Lon: lonVal}, nil
}

// MustParseCoordinate is ParseCoordinate for fixtures and tests. It panics on bad input.
func MustParseCoordinate(lat, lon string) Coordinate {
	c, err := ParseCoordinate(lat, lon)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coordinate) Key() CoordKey { return CoordKey{Lat: c.LatText, Lon: c.LonText} }

// Equal compares textual identity.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.LatText == o.LatText && c.LonText == o.LonText
}

// Compare orders by latitude text, then longitude text.
func (c Coordinate) Compare(o Coordinate) int {
	if d := strings.Compare(c.LatText, o.LatText); d != 0 {
		return d
	}
	return strings.Compare(c.LonText, o.LonText)
}

func (c Coordinate) String() string { return c.LatText + " " + c.LonText }

type coordinateJSON struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Coordinates travel as text so identity survives a round trip.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(coordinateJSON{Lat: c.LatText, Lon: c.LonText})
}

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var raw coordinateJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseCoordinate(raw.Lat, raw.Lon)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
