package models

import "github.com/shopspring/decimal"

// OrderStatusCompleted is the only status an order is ever persisted with.
// Validation happens before the insert, so there are no intermediate states.
const OrderStatusCompleted = "completed"

// Order represents a confirmed, persisted order
type Order struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
}

// CreateOrderRequest represents an incoming order request.
// Zero identifiers are treated as missing, matching the required tag.
type CreateOrderRequest struct {
	UserID    int64 `json:"user_id" validate:"required"`
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// OrderDetails is an order enriched with the referenced user and product
// records. Each detail field holds either the upstream record or an
// EnrichmentError when the lookup failed.
type OrderDetails struct {
	Order
	UserDetails    any `json:"user_details"`
	ProductDetails any `json:"product_details"`
}

// EnrichmentError is the inline marker substituted for a detail field
// whose upstream lookup failed
type EnrichmentError struct {
	Error string `json:"error"`
}
