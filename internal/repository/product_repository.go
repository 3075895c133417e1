package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopmesh/shopmesh/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductsSchema is the idempotent DDL for the product catalog store
const ProductsSchema = `
CREATE TABLE IF NOT EXISTS products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    price REAL NOT NULL CHECK(price >= 0)
)`

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, name string, price decimal.Decimal) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// SQLiteProductRepository implements ProductRepository on a local SQLite file
type SQLiteProductRepository struct {
	db *sql.DB
}

// NewSQLiteProductRepository creates a new SQLite-backed product repository
func NewSQLiteProductRepository(db *sql.DB) *SQLiteProductRepository {
	return &SQLiteProductRepository{db: db}
}

// Create inserts a product and returns it with the generated id
func (r *SQLiteProductRepository) Create(ctx context.Context, name string, price decimal.Decimal) (*models.Product, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO products (name, price) VALUES (?, ?)", name, price)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read generated product id: %w", err)
	}

	return &models.Product{ID: id, Name: name, Price: price}, nil
}

// GetByID returns a product by its ID
func (r *SQLiteProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, price FROM products WHERE id = ?", id).
		Scan(&product.ID, &product.Name, &product.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &product, nil
}
