package ports

import (
	"context"
	"delivery-planner/internal/domain"
)

// Port: a boundary for loading declared street edges from a data source.
type StreetSource interface {
	// Return every street edge in declaration order.
	ListStreetEdges(ctx context.Context) ([]domain.StreetEdge, error)
}

// Port: a boundary for loading a depot and its deliveries.
type ManifestSource interface {
	// Return the named manifest.
	GetManifest(ctx context.Context, name string) (*domain.Manifest, error)
}
