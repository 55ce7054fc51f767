package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant-match-service/internal/domain"
)

// SQLite-backed implementation of the OrderRepository port.
type SqliteOrderRepository struct{ DB *sql.DB }

func NewSqliteOrderRepository(db *sql.DB) *SqliteOrderRepository {
	return &SqliteOrderRepository{DB: db}
}

// ListOpenOrders returns all orders that are not done, newest first, with
// their items attached.
func (s *SqliteOrderRepository) ListOpenOrders(ctx context.Context) ([]*domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	query := `
	SELECT
		order_id,
		firstname,
		lastname,
		phonenumber,
		address,
		status,
		payment_method,
		comment,
		cooking_restaurant_id,
		created_at
	FROM orders
	WHERE status != ?
	ORDER BY order_id DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query, domain.OrderStatusDone)
	if err != nil {
		return nil, fmt.Errorf("list open orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 64)
	byID := make(map[int]*domain.Order)
	for rows.Next() {
		var o domain.Order
		var cookingID sql.NullInt64
		var createdAt int64
		err := rows.Scan(
			&o.OrderID,
			&o.Firstname,
			&o.Lastname,
			&o.Phonenumber,
			&o.Address,
			&o.Status,
			&o.PaymentMethod,
			&o.Comment,
			&cookingID,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list open orders: scan row: %w", err)
		}

		if cookingID.Valid {
			id := int(cookingID.Int64)
			o.CookingRestaurantID = &id
		}
		o.CreatedAt = time.Unix(createdAt, 0)

		orders = append(orders, &o)
		byID[o.OrderID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open orders: row iteration: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsQuery := `
	SELECT oi.order_id, oi.product_id, oi.quantity, oi.price
	FROM order_items oi
	JOIN orders o ON o.order_id = oi.order_id
	WHERE o.status != ?
	ORDER BY oi.order_id, oi.product_id;
	`
	itemRows, err := s.DB.QueryContext(ctx, itemsQuery, domain.OrderStatusDone)
	if err != nil {
		return nil, fmt.Errorf("list open orders: query order_items table: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("list open orders: scan item row: %w", err)
		}
		if order, ok := byID[orderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list open orders: item row iteration: %w", err)
	}

	return orders, nil
}

// CreateOrder persists a new order with its items. Item prices are
// snapshotted from the products table inside the same transaction.
func (s *SqliteOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (int, error) {
	if s.DB == nil {
		return 0, errors.New("order repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("create order: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	status := order.Status
	if status == "" {
		status = domain.OrderStatusNew
	}
	payment := order.PaymentMethod
	if payment == "" {
		payment = domain.PaymentCash
	}

	res, err := tx.ExecContext(ctx, `
	INSERT INTO orders (firstname, lastname, phonenumber, address, status, payment_method, comment, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`, order.Firstname, order.Lastname, order.Phonenumber, order.Address, status, payment, order.Comment, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("create order: insert order: %w", err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create order: last insert id: %w", err)
	}

	for _, item := range order.Items {
		var price float64
		err := tx.QueryRowContext(ctx,
			`SELECT price FROM products WHERE product_id = ?;`, item.ProductID,
		).Scan(&price)
		if err != nil {
			return 0, fmt.Errorf("create order: look up product %d: %w", item.ProductID, err)
		}

		_, err = tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES (?, ?, ?, ?);
		`, orderID, item.ProductID, item.Quantity, price)
		if err != nil {
			return 0, fmt.Errorf("create order: insert item product_id=%d: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create order: commit tx: %w", err)
	}

	return int(orderID), nil
}
