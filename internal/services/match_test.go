package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"restaurant-match-service/internal/domain"
)

func set(ids ...int) map[int]struct{} {
	s := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestEligibleRestaurantsSupersetOnly(t *testing.T) {
	// Order needs {X=1, Y=2}; R1 offers {1,2,3}, R2 offers {1}.
	menu := domain.MenuAvailability{
		1: set(1, 2, 3),
		2: set(1),
	}

	got := EligibleRestaurants(set(1, 2), menu)

	if diff := cmp.Diff(set(1), got); diff != "" {
		t.Fatalf("eligible restaurants mismatch (-want +got):\n%s", diff)
	}
}

func TestEligibleRestaurantsNoneEligible(t *testing.T) {
	menu := domain.MenuAvailability{
		1: set(1),
		2: set(2),
	}

	if got := EligibleRestaurants(set(1, 2), menu); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestEligibleRestaurantsEmptyOrderMeansNoConstraint(t *testing.T) {
	menu := domain.MenuAvailability{
		1: set(1),
		2: set(2, 3),
	}

	got := EligibleRestaurants(set(), menu)

	if diff := cmp.Diff(set(1, 2), got); diff != "" {
		t.Fatalf("eligible restaurants mismatch (-want +got):\n%s", diff)
	}
}

func TestEligibleRestaurantsEmptyMenu(t *testing.T) {
	if got := EligibleRestaurants(set(1), domain.MenuAvailability{}); len(got) != 0 {
		t.Fatalf("expected empty set for empty menu, got %v", got)
	}
}

func TestEligibleRestaurantsResultIsSubsetOfMenu(t *testing.T) {
	menu := domain.MenuAvailability{
		1: set(1, 2),
		2: set(1, 2, 3),
		3: set(2),
	}
	order := set(1, 2)

	got := EligibleRestaurants(order, menu)

	for restaurantID := range got {
		available, ok := menu[restaurantID]
		if !ok {
			t.Fatalf("restaurant %d not present in menu", restaurantID)
		}
		for productID := range order {
			if _, ok := available[productID]; !ok {
				t.Fatalf("restaurant %d missing product %d", restaurantID, productID)
			}
		}
	}
	if diff := cmp.Diff(set(1, 2), got); diff != "" {
		t.Fatalf("eligible restaurants mismatch (-want +got):\n%s", diff)
	}
}
