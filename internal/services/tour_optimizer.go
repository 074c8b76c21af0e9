package services

import (
	"delivery-planner/internal/domain"
	"slices"
)

// Rand is the random source used by the optimizer.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// OptimizerOptions tunes simulated annealing. Zero fields take the defaults.
type OptimizerOptions struct {
	Restarts           int
	InitialTemperature float64
	Cooling            float64
	// Stagnation limits for tours of at most 10 stops, at most 100 stops, and larger.
	SmallLimit  int
	MediumLimit int
	LargeLimit  int
}

func DefaultOptimizerOptions() OptimizerOptions {
	return OptimizerOptions{
		Restarts:           100,
		InitialTemperature: 0.9,
		Cooling:            0.99,
		SmallLimit:         50,
		MediumLimit:        1000,
		LargeLimit:         2000,
	}
}

func (o OptimizerOptions) withDefaults() OptimizerOptions {
	d := DefaultOptimizerOptions()
	if o.Restarts > 0 {
		d.Restarts = o.Restarts
	}
	if o.InitialTemperature > 0 {
		d.InitialTemperature = o.InitialTemperature
	}
	if o.Cooling > 0 {
		d.Cooling = o.Cooling
	}
	if o.SmallLimit > 0 {
		d.SmallLimit = o.SmallLimit
	}
	if o.MediumLimit > 0 {
		d.MediumLimit = o.MediumLimit
	}
	if o.LargeLimit > 0 {
		d.LargeLimit = o.LargeLimit
	}
	return d
}

// TourOptimizer orders delivery stops by simulated annealing over
// straight-line distances. Real road distances are only computed later by
// route search. It keeps no state between calls.
//
// A worse neighbour is accepted when a uniform draw falls below the current
// temperature itself, not by the Metropolis criterion.
type TourOptimizer struct {
	opts OptimizerOptions
	// onStep, when set, sees the temperature each annealing step decided
	// under and the current tour after the decision.
	onStep func(temperature float64, current []int)
}

func NewTourOptimizer(opts OptimizerOptions) *TourOptimizer {
	return &TourOptimizer{opts: opts.withDefaults()}
}

// Optimize returns the stops in the best order found and its crow-flight cost in miles.
func (o *TourOptimizer) Optimize(depot domain.Coordinate, stops []domain.DeliveryStop, rng Rand) ([]domain.DeliveryStop, float64) {
	t := tour{depot: depot, stops: stops}

	identity := make([]int, len(stops))
	for i := range identity {
		identity[i] = i
	}

	best, bestCost := o.iterate(t, identity, rng)
	for range o.opts.Restarts {
		perm, cost := o.iterate(t, best, rng)
		if cost < bestCost {
			best, bestCost = perm, cost
		}
	}

	out := make([]domain.DeliveryStop, len(best))
	for i, idx := range best {
		out[i] = stops[idx]
	}
	return out, bestCost
}

// iterate runs one annealing pass from start and returns the best permutation seen.
func (o *TourOptimizer) iterate(t tour, start []int, rng Rand) ([]int, float64) {
	current := slices.Clone(start)
	currentCost := t.cost(current)
	best := slices.Clone(current)
	bestCost := currentCost

	if len(current) < 2 {
		return best, bestCost
	}

	limit := o.stagnationLimit(len(current))
	temperature := o.opts.InitialTemperature
	stagnant := 0

	for stagnant < limit {
		neighbor := swapTwo(current, rng)
		cost := t.cost(neighbor)

		if cost < currentCost {
			current, currentCost = neighbor, cost
			if cost < bestCost {
				best, bestCost = slices.Clone(current), cost
				stagnant = 0
			}
		} else {
			if rng.Float64() < temperature {
				current, currentCost = neighbor, cost
			}
			stagnant++
		}
		if o.onStep != nil {
			o.onStep(temperature, current)
		}
		temperature *= o.opts.Cooling
	}

	return best, bestCost
}

func (o *TourOptimizer) stagnationLimit(n int) int {
	switch {
	case n <= 10:
		return o.opts.SmallLimit
	case n <= 100:
		return o.opts.MediumLimit
	default:
		return o.opts.LargeLimit
	}
}

// swapTwo returns a copy of perm with two distinct positions exchanged.
func swapTwo(perm []int, rng Rand) []int {
	out := slices.Clone(perm)
	i := rng.IntN(len(out))
	j := rng.IntN(len(out) - 1)
	if j >= i {
		j++
	}
	out[i], out[j] = out[j], out[i]
	return out
}

type tour struct {
	depot domain.Coordinate
	stops []domain.DeliveryStop
}

// cost is the crow-flight length of depot -> stops in perm order -> depot.
func (t tour) cost(perm []int) float64 {
	total := 0.0
	cur := t.depot
	for _, idx := range perm {
		next := t.stops[idx].Location
		total += domain.DistanceEarthMiles(cur, next)
		cur = next
	}
	return total + domain.DistanceEarthMiles(cur, t.depot)
}
