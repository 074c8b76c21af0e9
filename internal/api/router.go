package api

import (
	"delivery-planner/internal/api/handlers"
	"delivery-planner/internal/platform/metrics"
	"delivery-planner/internal/ports"
	"net/http"
)

// Deps are the collaborators the HTTP API is built from.
// Manifests may be nil when no database is configured.
type Deps struct {
	Planner   ports.DeliveryPlanner
	Manifests ports.ManifestSource
	Map       handlers.MapStats
	MapName   string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Planner: d.Planner, Manifests: d.Manifests}
	mapHandler := &handlers.MapHandler{Name: d.MapName, Graph: d.Map}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /map", mapHandler.Get)
	mux.HandleFunc("POST /plans", planHandler.Plan)
	mux.HandleFunc("POST /manifests/{name}/plan", planHandler.PlanManifest)

	return requestIDMiddleware(loggingMiddleware(mux))
}
