package dto

import (
	"delivery-planner/internal/domain"
	"fmt"
)

// Coordinates travel as strings so their textual identity survives the request.
type CoordinateRequest struct {
	Lat string `json:"lat" validate:"required,numeric"`
	Lon string `json:"lon" validate:"required,numeric"`
}

func (c CoordinateRequest) ToDomain() (domain.Coordinate, error) {
	return domain.ParseCoordinate(c.Lat, c.Lon)
}

type DeliveryRequest struct {
	Item string `json:"item" validate:"required,max=200"`
	Lat  string `json:"lat" validate:"required,numeric"`
	Lon  string `json:"lon" validate:"required,numeric"`
}

type PlanRequest struct {
	Depot      CoordinateRequest `json:"depot"`
	Deliveries []DeliveryRequest `json:"deliveries" validate:"max=1000,dive"`
}

// Stops converts the request deliveries, keeping their order.
func (r PlanRequest) Stops() ([]domain.DeliveryStop, error) {
	stops := make([]domain.DeliveryStop, 0, len(r.Deliveries))
	for i, d := range r.Deliveries {
		c, err := domain.ParseCoordinate(d.Lat, d.Lon)
		if err != nil {
			return nil, fmt.Errorf("delivery #%d: %w", i+1, err)
		}
		stops = append(stops, domain.DeliveryStop{Item: d.Item, Location: c})
	}
	return stops, nil
}

type CommandResponse struct {
	Kind      string  `json:"kind"`
	Direction string  `json:"direction,omitempty"`
	Street    string  `json:"street,omitempty"`
	Miles     float64 `json:"miles,omitempty"`
	Item      string  `json:"item,omitempty"`
	Text      string  `json:"text"`
}

type StopResponse struct {
	Item string `json:"item"`
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
}

type PlanResponse struct {
	Commands   []CommandResponse `json:"commands"`
	Stops      []StopResponse    `json:"stops"`
	TotalMiles float64           `json:"total_miles"`
	CrowMiles  float64           `json:"crow_miles"`
}

func NewPlanResponse(res *domain.PlanResult) PlanResponse {
	out := PlanResponse{
		Commands:   make([]CommandResponse, 0, len(res.Commands)),
		Stops:      make([]StopResponse, 0, len(res.Stops)),
		TotalMiles: res.TotalMiles,
		CrowMiles:  res.CrowMiles,
	}
	for _, c := range res.Commands {
		out.Commands = append(out.Commands, CommandResponse{
			Kind:      c.Kind.String(),
			Direction: c.Direction,
			Street:    c.Street,
			Miles:     c.Miles,
			Item:      c.Item,
			Text:      c.String(),
		})
	}
	for _, s := range res.Stops {
		out.Stops = append(out.Stops, StopResponse{
			Item: s.Item,
			Lat:  s.Location.LatText,
			Lon:  s.Location.LonText,
		})
	}
	return out
}

type MapResponse struct {
	Name     string `json:"name"`
	Nodes    int    `json:"nodes"`
	Segments int    `json:"segments"`
}
