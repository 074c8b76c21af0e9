package ports

import (
	"context"
	"delivery-planner/internal/domain"
)

// Contract for turning a depot and its stops into a delivery plan.
type DeliveryPlanner interface {
	GeneratePlan(ctx context.Context, depot domain.Coordinate, stops []domain.DeliveryStop) (*domain.PlanResult, error)
}
