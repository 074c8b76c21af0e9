package services

import (
	"context"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/streetmap"
	"errors"
	"math"
	"sync"
	"testing"
)

// countingRouter wraps a real route search and counts calls.
type countingRouter struct {
	inner *RouteSearch
	calls int
}

func (r *countingRouter) Route(start, end domain.Coordinate) (domain.Route, error) {
	r.calls++
	return r.inner.Route(start, end)
}

type fakeLegCache struct {
	mu      sync.Mutex
	entries map[[2]domain.CoordKey]domain.Route
	getErr  error
	puts    int
}

func newFakeLegCache() *fakeLegCache {
	return &fakeLegCache{entries: map[[2]domain.CoordKey]domain.Route{}}
}

func (c *fakeLegCache) Get(_ context.Context, from, to domain.Coordinate) (domain.Route, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return domain.Route{}, false, c.getErr
	}
	r, ok := c.entries[[2]domain.CoordKey{from.Key(), to.Key()}]
	return r, ok, nil
}

func (c *fakeLegCache) Put(_ context.Context, from, to domain.Coordinate, route domain.Route) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[[2]domain.CoordKey{from.Key(), to.Key()}] = route
	c.puts++
	return nil
}

func mainStreetMap() *streetmap.StreetMap {
	return streetmap.FromEdges([]domain.StreetEdge{
		{From: coord("0", "0"), To: coord("0", "1"), Street: "Main St"},
	})
}

func TestGeneratePlanSingleDelivery(t *testing.T) {
	depot := coord("0", "0")
	stops := []domain.DeliveryStop{{Item: "Book", Location: coord("0", "1")}}

	p := NewPlanner(NewRouteSearch(mainStreetMap()), WithSeed(1))
	res, err := p.GeneratePlan(context.Background(), depot, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := domain.DistanceEarthMiles(depot, coord("0", "1"))
	if math.Abs(res.TotalMiles-2*d) > 1e-9 {
		t.Fatalf("total = %v, want %v", res.TotalMiles, 2*d)
	}

	want := []domain.Command{
		domain.NewProceed("east", "Main St", d),
		domain.NewDeliver("Book"),
		domain.NewProceed("west", "Main St", d),
	}
	if len(res.Commands) != len(want) {
		t.Fatalf("commands = %v, want %v", res.Commands, want)
	}
	for i := range want {
		got := res.Commands[i]
		if got.Kind != want[i].Kind || got.Direction != want[i].Direction ||
			got.Street != want[i].Street || got.Item != want[i].Item ||
			math.Abs(got.Miles-want[i].Miles) > 1e-9 {
			t.Errorf("command %d = %v, want %v", i, got, want[i])
		}
	}
	if res.Deliveries() != 1 {
		t.Fatalf("deliveries = %d, want 1", res.Deliveries())
	}
}

func TestGeneratePlanDeliversEveryStopOnce(t *testing.T) {
	edges, nodes := gridEdges(6, 0, nil)
	sm := streetmap.FromEdges(edges)

	depot := nodes[0]
	var stops []domain.DeliveryStop
	for i, n := range []int{7, 14, 21, 35, 28} {
		stops = append(stops, domain.DeliveryStop{Item: string(rune('A' + i)), Location: nodes[n]})
	}

	res, err := NewPlanner(NewRouteSearch(sm), WithSeed(7)).GeneratePlan(context.Background(), depot, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delivered := map[string]int{}
	proceedMiles := 0.0
	for _, c := range res.Commands {
		switch c.Kind {
		case domain.CommandDeliver:
			delivered[c.Item]++
		case domain.CommandProceed:
			proceedMiles += c.Miles
		}
	}
	for _, s := range stops {
		if delivered[s.Item] != 1 {
			t.Errorf("item %q delivered %d times", s.Item, delivered[s.Item])
		}
	}
	if math.Abs(proceedMiles-res.TotalMiles) > 1e-9 {
		t.Fatalf("proceed miles %v != total %v", proceedMiles, res.TotalMiles)
	}
	if res.TotalMiles < res.CrowMiles-1e-9 {
		t.Fatalf("road miles %v shorter than crow miles %v", res.TotalMiles, res.CrowMiles)
	}
}

func TestGeneratePlanNoStops(t *testing.T) {
	res, err := NewPlanner(NewRouteSearch(mainStreetMap()), WithSeed(1)).
		GeneratePlan(context.Background(), coord("0", "0"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Commands) != 0 || res.TotalMiles != 0 {
		t.Fatalf("expected empty plan, got %+v", res)
	}
}

func TestGeneratePlanInvalidCoordinate(t *testing.T) {
	stops := []domain.DeliveryStop{
		{Item: "Book", Location: coord("0", "1")},
		{Item: "Lost", Location: coord("5", "5")},
	}

	res, err := NewPlanner(NewRouteSearch(mainStreetMap()), WithSeed(1)).
		GeneratePlan(context.Background(), coord("0", "0"), stops)
	if !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("err = %v, want ErrInvalidCoordinate", err)
	}
	if res != nil {
		t.Fatalf("expected no partial result, got %+v", res)
	}
	if domain.KindOf(err) != domain.FailureInvalidCoordinate {
		t.Fatalf("kind = %v", domain.KindOf(err))
	}
}

func TestGeneratePlanNoRoute(t *testing.T) {
	sm := streetmap.FromEdges([]domain.StreetEdge{
		{From: coord("0", "0"), To: coord("0", "1"), Street: "Main St"},
		{From: coord("5", "5"), To: coord("5", "6"), Street: "Island Rd"},
	})
	stops := []domain.DeliveryStop{{Item: "Far", Location: coord("5", "6")}}

	_, err := NewPlanner(NewRouteSearch(sm), WithSeed(1)).GeneratePlan(context.Background(), coord("0", "0"), stops)
	if !errors.Is(err, domain.ErrNoRouteFound) {
		t.Fatalf("err = %v, want ErrNoRouteFound", err)
	}
}

func TestGeneratePlanUsesLegCache(t *testing.T) {
	router := &countingRouter{inner: NewRouteSearch(mainStreetMap())}
	cache := newFakeLegCache()
	p := NewPlanner(router, WithSeed(1), WithLegCache(cache))

	depot := coord("0", "0")
	stops := []domain.DeliveryStop{{Item: "Book", Location: coord("0", "1")}}

	first, err := p.GeneratePlan(context.Background(), depot, stops)
	if err != nil {
		t.Fatalf("first plan: %v", err)
	}
	if router.calls != 2 || cache.puts != 2 {
		t.Fatalf("after first plan: %d searches, %d puts", router.calls, cache.puts)
	}

	second, err := p.GeneratePlan(context.Background(), depot, stops)
	if err != nil {
		t.Fatalf("second plan: %v", err)
	}
	if router.calls != 2 {
		t.Fatalf("cached plan searched again: %d searches", router.calls)
	}
	if first.TotalMiles != second.TotalMiles || len(first.Commands) != len(second.Commands) {
		t.Fatalf("cached plan differs: %+v vs %+v", first, second)
	}
}

func TestGeneratePlanIgnoresCacheFailures(t *testing.T) {
	router := &countingRouter{inner: NewRouteSearch(mainStreetMap())}
	cache := newFakeLegCache()
	cache.getErr = errors.New("connection refused")

	_, err := NewPlanner(router, WithSeed(1), WithLegCache(cache)).
		GeneratePlan(context.Background(), coord("0", "0"), []domain.DeliveryStop{{Item: "Book", Location: coord("0", "1")}})
	if err != nil {
		t.Fatalf("cache failure leaked into plan: %v", err)
	}
	if router.calls != 2 {
		t.Fatalf("expected 2 searches, got %d", router.calls)
	}
}

func TestGeneratePlanSeededIsReproducible(t *testing.T) {
	edges, nodes := gridEdges(5, 0, nil)
	p := NewPlanner(NewRouteSearch(streetmap.FromEdges(edges)), WithSeed(99))

	var stops []domain.DeliveryStop
	for i, n := range []int{4, 12, 20, 24, 9, 16} {
		stops = append(stops, domain.DeliveryStop{Item: string(rune('a' + i)), Location: nodes[n]})
	}

	a, err := p.GeneratePlan(context.Background(), nodes[0], stops)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.GeneratePlan(context.Background(), nodes[0], stops)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Commands) != len(b.Commands) {
		t.Fatalf("command counts differ: %d vs %d", len(a.Commands), len(b.Commands))
	}
	for i := range a.Commands {
		if a.Commands[i].String() != b.Commands[i].String() {
			t.Fatalf("command %d differs: %v vs %v", i, a.Commands[i], b.Commands[i])
		}
	}
}
