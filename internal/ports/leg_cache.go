package ports

import (
	"context"
	"delivery-planner/internal/domain"
)

// Optional cache of computed legs, keyed by the textual identity of both ends.
type LegCache interface {
	Get(ctx context.Context, from, to domain.Coordinate) (domain.Route, bool, error)
	Put(ctx context.Context, from, to domain.Coordinate, route domain.Route) error
}
