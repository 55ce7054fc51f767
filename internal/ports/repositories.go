package ports

import (
	"context"
	"restaurant-match-service/internal/domain"
)

// Port: order persistence as seen by the matching core and the API.
type OrderRepository interface {
	// ListOpenOrders returns all orders not yet done, newest first,
	// with their items loaded.
	ListOpenOrders(ctx context.Context) ([]*domain.Order, error)

	// CreateOrder persists a new order and its items, returning the
	// assigned order ID.
	CreateOrder(ctx context.Context, order *domain.Order) (int, error)
}

// Port: read-only access to restaurants, products and menu availability.
type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)

	// MenuAvailability returns, per restaurant, the set of product IDs
	// currently marked available. Unavailable menu rows are excluded here
	// so the matcher never sees them.
	MenuAvailability(ctx context.Context) (domain.MenuAvailability, error)
}
