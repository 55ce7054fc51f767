package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		address TEXT PRIMARY KEY,
		lat REAL,
		lon REAL,
		updated_at INTEGER NOT NULL
	);
	`

	createRestaurantsQuery := `
	CREATE TABLE IF NOT EXISTS restaurants (
		restaurant_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL
	);
	`

	createProductsQuery := `
	CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		price REAL NOT NULL
	);
	`

	createMenuItemsQuery := `
	CREATE TABLE IF NOT EXISTS menu_items (
		restaurant_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		availability INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (restaurant_id, product_id)
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY AUTOINCREMENT,
		firstname TEXT NOT NULL,
		lastname TEXT NOT NULL,
		phonenumber TEXT NOT NULL,
		address TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		payment_method TEXT NOT NULL DEFAULT 'cash',
		comment TEXT NOT NULL DEFAULT '',
		cooking_restaurant_id INTEGER,
		created_at INTEGER NOT NULL
	);
	`

	createOrderItemsQuery := `
	CREATE TABLE IF NOT EXISTS order_items (
		order_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		price REAL NOT NULL
	);
	`

	createIndexesQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
	`

	statements := []string{
		createPlacesQuery,
		createRestaurantsQuery,
		createProductsQuery,
		createMenuItemsQuery,
		createOrdersQuery,
		createOrderItemsQuery,
		createIndexesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type RestaurantSeed struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
}

type ProductSeed struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type MenuItemSeed struct {
	RestaurantID int  `json:"restaurant_id"`
	ProductID    int  `json:"product_id"`
	Availability bool `json:"availability"`
}

type OrderItemSeed struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

type OrderSeed struct {
	Firstname     string          `json:"firstname"`
	Lastname      string          `json:"lastname"`
	Phonenumber   string          `json:"phonenumber"`
	Address       string          `json:"address"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Comment       string          `json:"comment"`
	Products      []OrderItemSeed `json:"products"`
}

type CatalogSeed struct {
	Restaurants []RestaurantSeed `json:"restaurants"`
	Products    []ProductSeed    `json:"products"`
	MenuItems   []MenuItemSeed   `json:"menu_items"`
	Orders      []OrderSeed      `json:"orders"`
}

// Populate the database with catalog and demo order data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var seed CatalogSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed catalog: parse json: %w", err)
	}

	prices := make(map[int]float64, len(seed.Products))
	for i, p := range seed.Products {
		if p.ProductID <= 0 {
			return fmt.Errorf("seed catalog: invalid product_id at index %d: %d", i, p.ProductID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed catalog: product at index %d: name cannot be empty", i)
		}
		prices[p.ProductID] = p.Price
	}

	for i, r := range seed.Restaurants {
		if r.RestaurantID <= 0 {
			return fmt.Errorf("seed catalog: invalid restaurant_id at index %d: %d", i, r.RestaurantID)
		}
		if strings.TrimSpace(r.Address) == "" {
			return fmt.Errorf("seed catalog: restaurant at index %d: address cannot be empty", i)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range seed.Restaurants {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO restaurants (restaurant_id, name, address) VALUES (?, ?, ?);`,
			r.RestaurantID, r.Name, r.Address,
		)
		if err != nil {
			return fmt.Errorf("seed catalog: insert restaurant_id=%d: %w", r.RestaurantID, err)
		}
	}

	for _, p := range seed.Products {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO products (product_id, name, price) VALUES (?, ?, ?);`,
			p.ProductID, p.Name, p.Price,
		)
		if err != nil {
			return fmt.Errorf("seed catalog: insert product_id=%d: %w", p.ProductID, err)
		}
	}

	for _, m := range seed.MenuItems {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO menu_items (restaurant_id, product_id, availability) VALUES (?, ?, ?);`,
			m.RestaurantID, m.ProductID, m.Availability,
		)
		if err != nil {
			return fmt.Errorf(
				"seed catalog: insert menu item restaurant_id=%d product_id=%d: %w",
				m.RestaurantID, m.ProductID, err,
			)
		}
	}

	for i, o := range seed.Orders {
		status := o.Status
		if status == "" {
			status = "new"
		}
		payment := o.PaymentMethod
		if payment == "" {
			payment = "cash"
		}

		res, err := tx.Exec(
			`INSERT INTO orders (firstname, lastname, phonenumber, address, status, payment_method, comment, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
			o.Firstname, o.Lastname, o.Phonenumber, o.Address, status, payment, o.Comment, time.Now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("seed catalog: insert order at index %d: %w", i, err)
		}

		orderID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("seed catalog: order id at index %d: %w", i, err)
		}

		for _, item := range o.Products {
			price, ok := prices[item.Product]
			if !ok {
				return fmt.Errorf("seed catalog: order at index %d references unknown product %d", i, item.Product)
			}
			_, err := tx.Exec(
				`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?);`,
				orderID, item.Product, item.Quantity, price,
			)
			if err != nil {
				return fmt.Errorf("seed catalog: insert order item product_id=%d: %w", item.Product, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
