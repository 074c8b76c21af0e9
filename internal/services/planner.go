package services

import (
	"context"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/metrics"
	"delivery-planner/internal/platform/obs"
	"delivery-planner/internal/ports"
	"fmt"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("delivery-planner/services")

// Planner turns a depot and its stops into a full delivery plan.
//
// It orders the stops with the tour optimizer, routes every leg
// (depot -> first stop -> ... -> last stop -> depot) and compiles the legs
// into navigation commands. Planning is all-or-nothing: any leg that cannot
// be routed fails the whole plan.
//
// The planner holds only read-only collaborators and creates a fresh random
// source per plan, so it is safe for concurrent use.
type Planner struct {
	router    ports.RouteFinder
	optimizer *TourOptimizer
	cache     ports.LegCache
	newRand   func() Rand
}

type PlannerOption func(*Planner)

// WithLegCache serves legs from c when present and stores fresh ones.
func WithLegCache(c ports.LegCache) PlannerOption {
	return func(p *Planner) { p.cache = c }
}

func WithOptimizer(o *TourOptimizer) PlannerOption {
	return func(p *Planner) { p.optimizer = o }
}

// WithRandFactory sets the source of randomness handed to the optimizer for each plan.
func WithRandFactory(f func() Rand) PlannerOption {
	return func(p *Planner) { p.newRand = f }
}

// WithSeed makes every plan reproducible for the same input.
func WithSeed(seed uint64) PlannerOption {
	return WithRandFactory(func() Rand {
		return rand.New(rand.NewPCG(seed, seed))
	})
}

func NewPlanner(router ports.RouteFinder, opts ...PlannerOption) *Planner {
	p := &Planner{
		router:    router,
		optimizer: NewTourOptimizer(DefaultOptimizerOptions()),
		newRand: func() Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GeneratePlan returns the commands for delivering every stop and returning
// to the depot, with the real road distance travelled.
func (p *Planner) GeneratePlan(
	ctx context.Context,
	depot domain.Coordinate,
	stops []domain.DeliveryStop,
) (_ *domain.PlanResult, err error) {
	defer obs.Time(ctx, "planner.GeneratePlan")(&err)

	ctx, span := tracer.Start(ctx, "planner.GeneratePlan")
	span.SetAttributes(attribute.Int("plan.stops", len(stops)))
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = domain.KindOf(err).String()
			span.RecordError(err)
			span.SetStatus(codes.Error, result)
		}
		metrics.PlansTotal.WithLabelValues(result).Inc()
		metrics.PlanDuration.Observe(time.Since(start).Seconds())
		span.End()
	}()
	metrics.PlanStops.Observe(float64(len(stops)))

	if p.router == nil {
		return nil, fmt.Errorf("generate plan: router is nil: %w", domain.ErrUnspecified)
	}

	ordered, crow := p.optimizer.Optimize(depot, stops, p.newRand())
	span.SetAttributes(attribute.Float64("plan.crow_miles", crow))

	legs := make([]Leg, 0, len(ordered)+1)
	total := 0.0

	current := depot
	for i := range ordered {
		stop := ordered[i]
		route, err := p.routeLeg(ctx, current, stop.Location)
		if err != nil {
			return nil, fmt.Errorf("generate plan: leg %d to %q: %w", i+1, stop.Item, err)
		}
		legs = append(legs, Leg{Segments: route.Segments, Stop: &stop})
		total += route.Miles
		current = stop.Location
	}

	route, err := p.routeLeg(ctx, current, depot)
	if err != nil {
		return nil, fmt.Errorf("generate plan: return leg to depot: %w", err)
	}
	legs = append(legs, Leg{Segments: route.Segments})
	total += route.Miles

	commands, err := CompileCommands(legs)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	span.SetAttributes(attribute.Float64("plan.total_miles", total))

	return &domain.PlanResult{
		Commands:   commands,
		TotalMiles: total,
		Stops:      ordered,
		CrowMiles:  crow,
	}, nil
}

// routeLeg consults the leg cache before searching. Cache failures never fail a plan.
func (p *Planner) routeLeg(ctx context.Context, from, to domain.Coordinate) (domain.Route, error) {
	logger := obs.Logger(ctx)

	if p.cache != nil {
		route, ok, err := p.cache.Get(ctx, from, to)
		switch {
		case err != nil:
			metrics.LegCacheLookups.WithLabelValues("error").Inc()
			logger.Warn("leg cache read failed", "from", from.String(), "to", to.String(), "err", err)
		case ok:
			metrics.LegCacheLookups.WithLabelValues("hit").Inc()
			return route, nil
		default:
			metrics.LegCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	route, err := p.router.Route(from, to)
	if err != nil {
		metrics.RouteSearches.WithLabelValues(domain.KindOf(err).String()).Inc()
		return domain.Route{}, err
	}
	metrics.RouteSearches.WithLabelValues("ok").Inc()

	if p.cache != nil {
		if err := p.cache.Put(ctx, from, to, route); err != nil {
			logger.Warn("leg cache write failed", "from", from.String(), "to", to.String(), "err", err)
		}
	}

	return route, nil
}
