package handlers

import (
	"delivery-planner/internal/api/dto"
	"net/http"
)

// MapStats is the part of the street map reported by /map.
type MapStats interface {
	Len() int
	SegmentCount() int
}

type MapHandler struct {
	Name  string
	Graph MapStats
}

func (h *MapHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.MapResponse{
		Name:     h.Name,
		Nodes:    h.Graph.Len(),
		Segments: h.Graph.SegmentCount(),
	})
}
