package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-match-service/internal/domain"
)

// SQLite-backed implementation of the CatalogRepository port.
type SqliteCatalogRepository struct{ DB *sql.DB }

func NewSqliteCatalogRepository(db *sql.DB) *SqliteCatalogRepository {
	return &SqliteCatalogRepository{DB: db}
}

// ListRestaurants returns all restaurants ordered by name.
func (s *SqliteCatalogRepository) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	if s.DB == nil {
		return nil, errors.New("catalog repository: DB is nil")
	}

	query := `
	SELECT restaurant_id, name, address
	FROM restaurants
	ORDER BY name, restaurant_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: query restaurants table: %w", err)
	}
	defer rows.Close()

	restaurants := make([]*domain.Restaurant, 0, 16)
	for rows.Next() {
		var r domain.Restaurant
		if err := rows.Scan(&r.RestaurantID, &r.Name, &r.Address); err != nil {
			return nil, fmt.Errorf("list restaurants: scan row: %w", err)
		}
		restaurants = append(restaurants, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: row iteration: %w", err)
	}

	return restaurants, nil
}

// ListProducts returns all products ordered by id.
func (s *SqliteCatalogRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if s.DB == nil {
		return nil, errors.New("catalog repository: DB is nil")
	}

	query := `
	SELECT product_id, name, price
	FROM products
	ORDER BY product_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: query products table: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, 32)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("list products: scan row: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: row iteration: %w", err)
	}

	return products, nil
}

// MenuAvailability returns the available product set per restaurant.
// Rows with availability = 0 are filtered out here so the matcher only ever
// sees what restaurants can actually cook.
func (s *SqliteCatalogRepository) MenuAvailability(ctx context.Context) (domain.MenuAvailability, error) {
	if s.DB == nil {
		return nil, errors.New("catalog repository: DB is nil")
	}

	query := `
	SELECT restaurant_id, product_id
	FROM menu_items
	WHERE availability = 1;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("menu availability: query menu_items table: %w", err)
	}
	defer rows.Close()

	menu := make(domain.MenuAvailability)
	for rows.Next() {
		var restaurantID, productID int
		if err := rows.Scan(&restaurantID, &productID); err != nil {
			return nil, fmt.Errorf("menu availability: scan row: %w", err)
		}
		if _, ok := menu[restaurantID]; !ok {
			menu[restaurantID] = make(map[int]struct{})
		}
		menu[restaurantID][productID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("menu availability: row iteration: %w", err)
	}

	return menu, nil
}
