package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/shopmesh/shopmesh/internal/client"
	"github.com/shopmesh/shopmesh/internal/models"
	"github.com/shopmesh/shopmesh/internal/repository"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrInvalidUpstream     = errors.New("invalid upstream response")
)

// UserLookup interface for remote user validation
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// ProductLookup interface for remote product validation
type ProductLookup interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// OrderService handles order business logic: remote reference validation,
// pricing, persistence, and best-effort enrichment on reads
type OrderService struct {
	orders   repository.OrderRepository
	users    UserLookup
	products ProductLookup
	validate *validator.Validate
	log      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderRepository, users UserLookup, products ProductLookup, log *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		users:    users,
		products: products,
		validate: newValidator(),
		log:      log,
	}
}

// CreateOrder validates the request, confirms both referenced entities exist
// remotely, computes the total, and persists the order with the completed
// status. User validation always runs before product validation; the first
// failure wins and nothing is written.
func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}

	if _, err := s.users.GetUser(ctx, req.UserID); err != nil {
		s.log.Error("user validation failed", "user_id", req.UserID, "error", err)
		return nil, mapUpstreamError(err, ErrUserNotFound)
	}

	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		s.log.Error("product validation failed", "product_id", req.ProductID, "error", err)
		return nil, mapUpstreamError(err, ErrProductNotFound)
	}

	order := &models.Order{
		UserID:     req.UserID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Status:     models.OrderStatusCompleted,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.log.Error("failed to save order", "user_id", req.UserID, "product_id", req.ProductID, "error", err)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.log.Info("order created", "order_id", order.ID, "total_price", order.TotalPrice)
	return order, nil
}

// GetOrder returns the stored order plus best-effort enrichment. The local
// lookup is authoritative; enrichment failures degrade to inline markers.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.OrderDetails, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &models.OrderDetails{Order: *order}

	if user, err := s.users.GetUser(ctx, order.UserID); err != nil {
		s.log.Warn("failed to fetch user details", "order_id", order.ID, "user_id", order.UserID, "error", err)
		details.UserDetails = models.EnrichmentError{Error: "failed to fetch user details"}
	} else {
		details.UserDetails = user
	}

	if product, err := s.products.GetProduct(ctx, order.ProductID); err != nil {
		s.log.Warn("failed to fetch product details", "order_id", order.ID, "product_id", order.ProductID, "error", err)
		details.ProductDetails = models.EnrichmentError{Error: "failed to fetch product details"}
	} else {
		details.ProductDetails = product
	}

	return details, nil
}

// mapUpstreamError translates client-level sentinels into service-level
// ones, with notFound standing in for the entity being validated.
func mapUpstreamError(err error, notFound error) error {
	switch {
	case errors.Is(err, client.ErrNotFound):
		return notFound
	case errors.Is(err, client.ErrInvalidResponse):
		return fmt.Errorf("%w: %v", ErrInvalidUpstream, err)
	default:
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
}
