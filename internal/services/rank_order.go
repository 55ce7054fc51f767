package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"restaurant-match-service/internal/domain"
	"restaurant-match-service/internal/ports"
)

// RankOrder computes the distance-sorted list of restaurants able to cook
// the whole order.
//
// The order address resolves through the shared coordinate cache first; an
// unresolved delivery address short-circuits to RankAddressUnresolved. When
// no restaurant covers the full product set the result is
// RankNoEligibleRestaurant. Eligible restaurants whose own address fails to
// geocode are dropped silently, so an OK result may carry an empty list —
// that outcome is deliberately distinct from RankNoEligibleRestaurant.
//
// The returned error reports storage faults only; geocoding misses never
// fail the call.
func RankOrder(
	ctx context.Context,
	order *domain.Order,
	menu domain.MenuAvailability,
	restaurants []*domain.Restaurant,
	resolver ports.CoordinateResolver,
) (*domain.Ranking, error) {
	orderCoords, ok, err := resolver.Resolve(ctx, order.Address)
	if err != nil {
		return nil, fmt.Errorf("rank order %d: resolve delivery address: %w", order.OrderID, err)
	}
	if !ok {
		return &domain.Ranking{
			Status:      domain.RankAddressUnresolved,
			Restaurants: []domain.RankedRestaurant{},
		}, nil
	}

	eligible := EligibleRestaurants(order.ProductSet(), menu)
	if len(eligible) == 0 {
		return &domain.Ranking{
			Status:      domain.RankNoEligibleRestaurant,
			Restaurants: []domain.RankedRestaurant{},
		}, nil
	}

	ranked := make([]domain.RankedRestaurant, 0, len(eligible))
	// Iterate the input slice rather than the eligible set so ties keep a
	// deterministic order for a fixed input.
	for _, restaurant := range restaurants {
		if _, ok := eligible[restaurant.RestaurantID]; !ok {
			continue
		}

		coords, ok, err := resolver.Resolve(ctx, restaurant.Address)
		if err != nil {
			return nil, fmt.Errorf(
				"rank order %d: resolve restaurant %d address: %w",
				order.OrderID, restaurant.RestaurantID, err,
			)
		}
		if !ok {
			log.Printf(
				"order_id=%d restaurant_id=%d addr=%q dropped: address unresolved",
				order.OrderID, restaurant.RestaurantID, restaurant.Address,
			)
			continue
		}

		ranked = append(ranked, domain.RankedRestaurant{
			Restaurant: restaurant,
			DistanceKm: orderCoords.DistanceKm(coords),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return &domain.Ranking{Status: domain.RankOK, Restaurants: ranked}, nil
}
