package domain

// DeliveryStop is a single item to drop off at a location.
// Stops are immutable input to the planner.
type DeliveryStop struct {
	Item     string     `json:"item"`
	Location Coordinate `json:"location"`
}

// Manifest is a depot plus the stops to visit from it.
type Manifest struct {
	Name       string
	Depot      Coordinate
	Deliveries []DeliveryStop
}
