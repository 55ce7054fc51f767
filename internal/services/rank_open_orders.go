package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"restaurant-match-service/internal/domain"
	"restaurant-match-service/internal/ports"
)

// OrderRanking pairs one open order with its ranking outcome. Err is set
// when ranking the order hit a storage fault; the order is still present so
// callers can render it, and other orders are unaffected.
type OrderRanking struct {
	Order   *domain.Order
	Ranking *domain.Ranking
	Err     error
}

// Bound on concurrently ranked orders; each ranking may issue blocking
// geocoder calls on cold cache entries.
const maxConcurrentRankings = 5

// RankOpenOrders ranks every open order against the current menu.
//
// Restaurants and menu availability are loaded once and shared read-only
// across all orders, and orders rank concurrently. Restaurant addresses
// repeat across orders, so the coordinate cache warms quickly: once any
// order resolves a restaurant the rest hit the cache.
//
// Output preserves the repository's order listing order regardless of
// completion order. A failed order gets its Err recorded and does not abort
// the batch.
func RankOpenOrders(
	ctx context.Context,
	orders ports.OrderRepository,
	catalog ports.CatalogRepository,
	resolver ports.CoordinateResolver,
) ([]OrderRanking, error) {
	open, err := orders.ListOpenOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("rank open orders: list open orders: %w", err)
	}
	if len(open) == 0 {
		return []OrderRanking{}, nil
	}

	restaurants, err := catalog.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("rank open orders: list restaurants: %w", err)
	}

	menu, err := catalog.MenuAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("rank open orders: load menu availability: %w", err)
	}

	results := make([]OrderRanking, len(open))

	sem := make(chan struct{}, maxConcurrentRankings)
	var wg sync.WaitGroup

	for i, order := range open {
		wg.Add(1)
		go func(i int, order *domain.Order) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			ranking, err := RankOrder(ctx, order, menu, restaurants, resolver)
			if err != nil {
				log.Printf("order_id=%d ranking failed: %v", order.OrderID, err)
				results[i] = OrderRanking{Order: order, Err: err}
				return
			}
			results[i] = OrderRanking{Order: order, Ranking: ranking}
		}(i, order)
	}

	wg.Wait()

	return results, nil
}
