package services

import (
	"context"
	"sync"
	"testing"

	"restaurant-match-service/internal/domain"
)

// fakeResolver resolves from a fixed map; unknown addresses read as
// geocoding misses and errs entries as storage faults. Safe for concurrent
// use, as batch ranking resolves from multiple goroutines.
type fakeResolver struct {
	mu     sync.Mutex
	coords map[string]domain.Coordinates
	errs   map[string]error
	calls  int
}

func (f *fakeResolver) Resolve(_ context.Context, address string) (domain.Coordinates, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.errs[address]; ok {
		return domain.Coordinates{}, false, err
	}
	c, ok := f.coords[address]
	return c, ok, nil
}

func testOrder(products ...int) *domain.Order {
	items := make([]domain.OrderItem, 0, len(products))
	for _, p := range products {
		items = append(items, domain.OrderItem{ProductID: p, Quantity: 1})
	}
	return &domain.Order{OrderID: 1, Address: "order addr", Items: items}
}

func TestRankOrderSortsByDistance(t *testing.T) {
	// R1 is ~5.56 km out, R2 ~2.22 km; the closer one must rank first.
	restaurants := []*domain.Restaurant{
		{RestaurantID: 1, Name: "R1", Address: "r1 addr"},
		{RestaurantID: 2, Name: "R2", Address: "r2 addr"},
	}
	menu := domain.MenuAvailability{1: set(1), 2: set(1)}
	resolver := &fakeResolver{coords: map[string]domain.Coordinates{
		"order addr": {Lat: 0, Lon: 0},
		"r1 addr":    {Lat: 0.05, Lon: 0},
		"r2 addr":    {Lat: 0.02, Lon: 0},
	}}

	ranking, err := RankOrder(context.Background(), testOrder(1), menu, restaurants, resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ranking.Status != domain.RankOK {
		t.Fatalf("status = %q, want %q", ranking.Status, domain.RankOK)
	}
	if len(ranking.Restaurants) != 2 {
		t.Fatalf("expected 2 ranked restaurants, got %d", len(ranking.Restaurants))
	}
	if ranking.Restaurants[0].Restaurant.RestaurantID != 2 {
		t.Fatalf("expected R2 first, got restaurant %d", ranking.Restaurants[0].Restaurant.RestaurantID)
	}
	if got := ranking.Restaurants[0].DistanceKm; got != 2.22 {
		t.Fatalf("R2 distance = %v, want 2.22", got)
	}
	if got := ranking.Restaurants[1].DistanceKm; got != 5.56 {
		t.Fatalf("R1 distance = %v, want 5.56", got)
	}
}

func TestRankOrderDeterministicForFixedInput(t *testing.T) {
	restaurants := []*domain.Restaurant{
		{RestaurantID: 1, Name: "R1", Address: "same addr"},
		{RestaurantID: 2, Name: "R2", Address: "same addr"},
	}
	menu := domain.MenuAvailability{1: set(1), 2: set(1)}
	resolver := &fakeResolver{coords: map[string]domain.Coordinates{
		"order addr": {Lat: 0, Lon: 0},
		"same addr":  {Lat: 0.02, Lon: 0},
	}}

	// Equal distances: stable sort must keep restaurant input order,
	// and repeated calls must agree.
	for i := 0; i < 3; i++ {
		ranking, err := RankOrder(context.Background(), testOrder(1), menu, restaurants, resolver)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ranking.Restaurants[0].Restaurant.RestaurantID != 1 ||
			ranking.Restaurants[1].Restaurant.RestaurantID != 2 {
			t.Fatalf(
				"run %d: tie broken out of input order: got %d, %d",
				i,
				ranking.Restaurants[0].Restaurant.RestaurantID,
				ranking.Restaurants[1].Restaurant.RestaurantID,
			)
		}
	}
}

func TestRankOrderAddressUnresolved(t *testing.T) {
	restaurants := []*domain.Restaurant{{RestaurantID: 1, Name: "R1", Address: "r1 addr"}}
	menu := domain.MenuAvailability{1: set(1)}
	resolver := &fakeResolver{coords: map[string]domain.Coordinates{
		"r1 addr": {Lat: 0.02, Lon: 0},
	}}

	ranking, err := RankOrder(context.Background(), testOrder(1), menu, restaurants, resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ranking.Status != domain.RankAddressUnresolved {
		t.Fatalf("status = %q, want %q", ranking.Status, domain.RankAddressUnresolved)
	}
	if len(ranking.Restaurants) != 0 {
		t.Fatalf("expected empty ranking, got %d entries", len(ranking.Restaurants))
	}
}

func TestRankOrderNoEligibleRestaurant(t *testing.T) {
	restaurants := []*domain.Restaurant{{RestaurantID: 1, Name: "R1", Address: "r1 addr"}}
	menu := domain.MenuAvailability{1: set(2)}
	resolver := &fakeResolver{coords: map[string]domain.Coordinates{
		"order addr": {Lat: 0, Lon: 0},
		"r1 addr":    {Lat: 0.02, Lon: 0},
	}}

	ranking, err := RankOrder(context.Background(), testOrder(1), menu, restaurants, resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ranking.Status != domain.RankNoEligibleRestaurant {
		t.Fatalf("status = %q, want %q", ranking.Status, domain.RankNoEligibleRestaurant)
	}
}

func TestRankOrderDropsUnresolvedRestaurants(t *testing.T) {
	// The only eligible restaurant fails to geocode: status stays OK with
	// an empty ranking, which is not the same as no eligible restaurant.
	restaurants := []*domain.Restaurant{{RestaurantID: 1, Name: "R1", Address: "r1 addr"}}
	menu := domain.MenuAvailability{1: set(1)}
	resolver := &fakeResolver{coords: map[string]domain.Coordinates{
		"order addr": {Lat: 0, Lon: 0},
	}}

	ranking, err := RankOrder(context.Background(), testOrder(1), menu, restaurants, resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ranking.Status != domain.RankOK {
		t.Fatalf("status = %q, want %q", ranking.Status, domain.RankOK)
	}
	if len(ranking.Restaurants) != 0 {
		t.Fatalf("expected empty ranking, got %d entries", len(ranking.Restaurants))
	}
}
