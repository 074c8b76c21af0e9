package services

import (
	"delivery-planner/internal/domain"
	"math"
	"math/rand/v2"
	"slices"
	"sort"
	"strconv"
	"testing"
)

func randomStops(n int, rng *rand.Rand) []domain.DeliveryStop {
	stops := make([]domain.DeliveryStop, n)
	for i := range stops {
		lat := strconv.FormatFloat(34.0+rng.Float64()*0.1, 'f', 6, 64)
		lon := strconv.FormatFloat(-118.0+rng.Float64()*0.1, 'f', 6, 64)
		stops[i] = domain.DeliveryStop{Item: "item-" + strconv.Itoa(i), Location: coord(lat, lon)}
	}
	return stops
}

func crowCost(depot domain.Coordinate, stops []domain.DeliveryStop) float64 {
	identity := make([]int, len(stops))
	for i := range identity {
		identity[i] = i
	}
	return tour{depot: depot, stops: stops}.cost(identity)
}

func TestTourOptimizerNeverWorseThanIdentity(t *testing.T) {
	depot := coord("34.05", "-118.05")

	for _, n := range []int{2, 5, 12, 40} {
		rng := rand.New(rand.NewPCG(uint64(n), 99))
		stops := randomStops(n, rng)

		got, cost := NewTourOptimizer(DefaultOptimizerOptions()).Optimize(depot, stops, rng)

		if identity := crowCost(depot, stops); cost > identity+1e-12 {
			t.Errorf("n=%d: cost %v worse than identity %v", n, cost, identity)
		}
		if recomputed := crowCost(depot, got); recomputed-cost > 1e-9 || cost-recomputed > 1e-9 {
			t.Errorf("n=%d: reported cost %v, ordered stops cost %v", n, cost, recomputed)
		}
	}
}

func TestTourOptimizerReturnsPermutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	stops := randomStops(15, rng)

	got, _ := NewTourOptimizer(DefaultOptimizerOptions()).Optimize(coord("34", "-118"), stops, rng)
	if len(got) != len(stops) {
		t.Fatalf("got %d stops, want %d", len(got), len(stops))
	}

	items := func(s []domain.DeliveryStop) []string {
		out := make([]string, len(s))
		for i, st := range s {
			out[i] = st.Item
		}
		sort.Strings(out)
		return out
	}
	want, have := items(stops), items(got)
	for i := range want {
		if want[i] != have[i] {
			t.Fatalf("stop set changed: %v vs %v", have, want)
		}
	}
}

func TestTourOptimizerFindsObviousTour(t *testing.T) {
	// Stops on a line east of the depot, listed out of order.
	depot := coord("0", "0")
	stops := []domain.DeliveryStop{
		{Item: "C", Location: coord("0", "0.03")},
		{Item: "A", Location: coord("0", "0.01")},
		{Item: "D", Location: coord("0", "0.04")},
		{Item: "B", Location: coord("0", "0.02")},
	}

	got, cost := NewTourOptimizer(DefaultOptimizerOptions()).Optimize(depot, stops, rand.New(rand.NewPCG(3, 3)))

	// Any order that sweeps out and back costs twice the farthest stop.
	want := 2 * domain.DistanceEarthMiles(depot, coord("0", "0.04"))
	if cost-want > 1e-9 {
		t.Fatalf("cost = %v, want %v (order %v)", cost, want, got)
	}
}

func TestTourOptimizerSeededIsDeterministic(t *testing.T) {
	stops := randomStops(20, rand.New(rand.NewPCG(5, 5)))
	depot := coord("34.05", "-118.05")
	opt := NewTourOptimizer(DefaultOptimizerOptions())

	first, firstCost := opt.Optimize(depot, stops, rand.New(rand.NewPCG(42, 42)))
	second, secondCost := opt.Optimize(depot, stops, rand.New(rand.NewPCG(42, 42)))

	if firstCost != secondCost {
		t.Fatalf("costs differ: %v vs %v", firstCost, secondCost)
	}
	for i := range first {
		if first[i].Item != second[i].Item {
			t.Fatalf("orders differ at %d: %q vs %q", i, first[i].Item, second[i].Item)
		}
	}
}

func TestTourOptimizerTrivialInputs(t *testing.T) {
	opt := NewTourOptimizer(DefaultOptimizerOptions())
	depot := coord("0", "0")
	rng := rand.New(rand.NewPCG(1, 1))

	got, cost := opt.Optimize(depot, nil, rng)
	if len(got) != 0 || cost != 0 {
		t.Fatalf("empty input: got %v, cost %v", got, cost)
	}

	one := []domain.DeliveryStop{{Item: "Book", Location: coord("0", "1")}}
	got, cost = opt.Optimize(depot, one, rng)
	if len(got) != 1 || got[0].Item != "Book" {
		t.Fatalf("single stop: got %v", got)
	}
	if want := 2 * domain.DistanceEarthMiles(depot, coord("0", "1")); cost != want {
		t.Fatalf("single stop cost = %v, want %v", cost, want)
	}
}

func TestStagnationLimit(t *testing.T) {
	opt := NewTourOptimizer(OptimizerOptions{})
	tests := []struct{ n, want int }{
		{1, 50}, {10, 50}, {11, 1000}, {100, 1000}, {101, 2000},
	}
	for _, tt := range tests {
		if got := opt.stagnationLimit(tt.n); got != tt.want {
			t.Errorf("stagnationLimit(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestSwapTwoSwapsDistinctPositions(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 8))
	perm := []int{0, 1, 2, 3, 4}
	for i := 0; i < 100; i++ {
		out := swapTwo(perm, rng)
		diff := 0
		for j := range perm {
			if perm[j] != out[j] {
				diff++
			}
		}
		if diff != 2 {
			t.Fatalf("swapTwo changed %d positions: %v", diff, out)
		}
	}
	if perm[0] != 0 || perm[4] != 4 {
		t.Fatalf("swapTwo mutated its input: %v", perm)
	}
}

// scriptedRand replays fixed draws and fails the test when the script runs out.
type scriptedRand struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		r.t.Fatalf("unscripted IntN(%d)", n)
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		r.t.Fatalf("scripted IntN value %d out of range for n=%d", v, n)
	}
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		r.t.Fatal("unscripted Float64")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestIterateAcceptsWorseBelowTemperature(t *testing.T) {
	// Stops on a line east of the depot: identity is the optimal tour and
	// swapping the first two stops adds about 1.4 miles.
	depot := coord("0", "0")
	tr := tour{depot: depot, stops: []domain.DeliveryStop{
		{Item: "A", Location: coord("0", "0.01")},
		{Item: "B", Location: coord("0", "0.02")},
		{Item: "C", Location: coord("0", "0.03")},
	}}

	opt := NewTourOptimizer(OptimizerOptions{SmallLimit: 3})
	var temps []float64
	var tours [][]int
	opt.onStep = func(temperature float64, current []int) {
		temps = append(temps, temperature)
		tours = append(tours, slices.Clone(current))
	}

	// IntN(3)=0 then IntN(2)=0 always swaps positions 0 and 1.
	rng := &scriptedRand{
		t:    t,
		ints: []int{0, 0, 0, 0, 0, 0, 0, 0},
		// Step 1: worse, 0.85 < 0.9 accepts (Metropolis would give ~0.22).
		// Step 2: swapping back improves, no draw.
		// Step 3: worse, 0.885 is above 0.9*0.99^2 and rejects.
		// Step 4: worse, 0.8732 is just below 0.9*0.99^3 and accepts.
		floats: []float64{0.85, 0.885, 0.8732},
	}

	best, bestCost := opt.iterate(tr, []int{0, 1, 2}, rng)

	wantTours := [][]int{{1, 0, 2}, {0, 1, 2}, {0, 1, 2}, {1, 0, 2}}
	if len(tours) != len(wantTours) {
		t.Fatalf("ran %d steps (%v), want %d", len(tours), tours, len(wantTours))
	}
	for i := range wantTours {
		if !slices.Equal(tours[i], wantTours[i]) {
			t.Errorf("step %d current = %v, want %v", i+1, tours[i], wantTours[i])
		}
	}

	for k, got := range temps {
		if want := 0.9 * math.Pow(0.99, float64(k)); math.Abs(got-want) > 1e-12 {
			t.Errorf("temperature at step %d = %v, want %v", k+1, got, want)
		}
	}

	if len(rng.floats) != 0 || len(rng.ints) != 0 {
		t.Errorf("unused draws: ints %v floats %v", rng.ints, rng.floats)
	}
	if !slices.Equal(best, []int{0, 1, 2}) || bestCost != tr.cost([]int{0, 1, 2}) {
		t.Errorf("best = %v (%v), want identity", best, bestCost)
	}
}
