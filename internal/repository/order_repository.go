package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopmesh/shopmesh/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrdersSchema is the idempotent DDL for the order store. The foreign
// references are deliberately not constrained locally; they are validated
// against the remote services before any insert.
const OrdersSchema = `
CREATE TABLE IF NOT EXISTS orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    product_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL CHECK(quantity > 0),
    total_price REAL NOT NULL,
    status TEXT NOT NULL
)`

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
}

// SQLiteOrderRepository implements OrderRepository on a local SQLite file
type SQLiteOrderRepository struct {
	db *sql.DB
}

// NewSQLiteOrderRepository creates a new SQLite-backed order repository
func NewSQLiteOrderRepository(db *sql.DB) *SQLiteOrderRepository {
	return &SQLiteOrderRepository{db: db}
}

// Create inserts the order in a single statement and fills in the
// generated id
func (r *SQLiteOrderRepository) Create(ctx context.Context, order *models.Order) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO orders (user_id, product_id, quantity, total_price, status) VALUES (?, ?, ?, ?, ?)",
		order.UserID, order.ProductID, order.Quantity, order.TotalPrice, order.Status)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated order id: %w", err)
	}

	order.ID = id
	return nil
}

// GetByID returns an order by its ID
func (r *SQLiteOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, product_id, quantity, total_price, status FROM orders WHERE id = ?", id).
		Scan(&order.ID, &order.UserID, &order.ProductID, &order.Quantity, &order.TotalPrice, &order.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return &order, nil
}
