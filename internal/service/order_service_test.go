package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopmesh/shopmesh/internal/client"
	"github.com/shopmesh/shopmesh/internal/models"
	"github.com/shopmesh/shopmesh/internal/repository"
	"github.com/shopmesh/shopmesh/pkg/logger"
	"github.com/shopspring/decimal"
)

// stubUserLookup fakes the user directory and records whether it was called
type stubUserLookup struct {
	user   *models.User
	err    error
	called bool
}

func (s *stubUserLookup) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

// stubProductLookup fakes the product catalog and records whether it was called
type stubProductLookup struct {
	product *models.Product
	err     error
	called  bool
}

func (s *stubProductLookup) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

// failingOrderRepo simulates a broken local store
type failingOrderRepo struct{}

func (failingOrderRepo) Create(ctx context.Context, order *models.Order) error {
	return errors.New("disk full")
}

func (failingOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return nil, errors.New("disk full")
}

func newOrderRepo(t *testing.T) *repository.SQLiteOrderRepository {
	t.Helper()

	db, err := repository.Open(filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repository.Migrate(context.Background(), db, repository.OrdersSchema); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return repository.NewSQLiteOrderRepository(db)
}

func testUser() *models.User {
	return &models.User{ID: 1, Name: "Ann", Email: "a@x.com"}
}

func testProduct() *models.Product {
	return &models.Product{ID: 1, Name: "Pen", Price: decimal.NewFromFloat(2.5)}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	repo := newOrderRepo(t)
	users := &stubUserLookup{user: testUser()}
	products := &stubProductLookup{product: testProduct()}
	svc := NewOrderService(repo, users, products, logger.New("error"))

	order, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID: 1, ProductID: 1, Quantity: 4,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if order.ID != 1 {
		t.Errorf("expected generated id 1, got %d", order.ID)
	}
	if !order.TotalPrice.Equal(decimal.NewFromFloat(10.0)) {
		t.Errorf("expected total_price 10, got %s", order.TotalPrice)
	}
	if order.Status != models.OrderStatusCompleted {
		t.Errorf("expected status %q, got %q", models.OrderStatusCompleted, order.Status)
	}

	// The order must actually be in the store
	stored, err := repo.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("expected persisted order, got %v", err)
	}
	if !stored.TotalPrice.Equal(order.TotalPrice) {
		t.Errorf("stored total %s differs from returned %s", stored.TotalPrice, order.TotalPrice)
	}
}

func TestOrderService_CreateOrder_InputValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateOrderRequest
	}{
		{"missing user_id", models.CreateOrderRequest{ProductID: 1, Quantity: 1}},
		{"missing product_id", models.CreateOrderRequest{UserID: 1, Quantity: 1}},
		{"missing quantity", models.CreateOrderRequest{UserID: 1, ProductID: 1}},
		{"zero quantity", models.CreateOrderRequest{UserID: 1, ProductID: 1, Quantity: 0}},
		{"negative quantity", models.CreateOrderRequest{UserID: 1, ProductID: 1, Quantity: -2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := &stubUserLookup{user: testUser()}
			products := &stubProductLookup{product: testProduct()}
			svc := NewOrderService(newOrderRepo(t), users, products, logger.New("error"))

			_, err := svc.CreateOrder(context.Background(), tc.req)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			if users.called || products.called {
				t.Error("input validation must fail fast, before any remote call")
			}
		})
	}
}

func TestOrderService_CreateOrder_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name       string
		userErr    error
		productErr error
		wantErr    error
	}{
		{
			name:    "user not found",
			userErr: client.ErrNotFound,
			wantErr: ErrUserNotFound,
		},
		{
			name:    "user service unreachable",
			userErr: client.ErrUnavailable,
			wantErr: ErrUpstreamUnavailable,
		},
		{
			name:       "product not found",
			productErr: client.ErrNotFound,
			wantErr:    ErrProductNotFound,
		},
		{
			name:       "product service unreachable",
			productErr: client.ErrUnavailable,
			wantErr:    ErrUpstreamUnavailable,
		},
		{
			name:       "product payload missing price",
			productErr: client.ErrInvalidResponse,
			wantErr:    ErrInvalidUpstream,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newOrderRepo(t)
			users := &stubUserLookup{user: testUser(), err: tc.userErr}
			products := &stubProductLookup{product: testProduct(), err: tc.productErr}
			svc := NewOrderService(repo, users, products, logger.New("error"))

			_, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{
				UserID: 1, ProductID: 1, Quantity: 4,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}

			// No partial order may be written on any validation failure
			if _, err := repo.GetByID(context.Background(), 1); !errors.Is(err, repository.ErrOrderNotFound) {
				t.Errorf("expected empty store, got %v", err)
			}
		})
	}
}

func TestOrderService_CreateOrder_UserErrorWinsOverProduct(t *testing.T) {
	users := &stubUserLookup{err: client.ErrNotFound}
	products := &stubProductLookup{err: client.ErrUnavailable}
	svc := NewOrderService(newOrderRepo(t), users, products, logger.New("error"))

	_, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID: 1, ProductID: 1, Quantity: 1,
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if products.called {
		t.Error("product validation must not run once user validation has failed")
	}
}

func TestOrderService_CreateOrder_StorageFailure(t *testing.T) {
	users := &stubUserLookup{user: testUser()}
	products := &stubProductLookup{product: testProduct()}
	svc := NewOrderService(failingOrderRepo{}, users, products, logger.New("error"))

	_, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID: 1, ProductID: 1, Quantity: 1,
	})
	if err == nil {
		t.Fatal("expected storage error")
	}
	for _, sentinel := range []error{ErrValidation, ErrUserNotFound, ErrProductNotFound, ErrUpstreamUnavailable, ErrInvalidUpstream} {
		if errors.Is(err, sentinel) {
			t.Errorf("storage failure must stay distinct from %v", sentinel)
		}
	}
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	svc := NewOrderService(newOrderRepo(t), &stubUserLookup{}, &stubProductLookup{}, logger.New("error"))

	_, err := svc.GetOrder(context.Background(), 42)
	if !errors.Is(err, repository.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_GetOrder_Enrichment(t *testing.T) {
	repo := newOrderRepo(t)
	order := &models.Order{
		UserID:     1,
		ProductID:  1,
		Quantity:   4,
		TotalPrice: decimal.NewFromFloat(10.0),
		Status:     models.OrderStatusCompleted,
	}
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	t.Run("both upstreams healthy", func(t *testing.T) {
		svc := NewOrderService(repo,
			&stubUserLookup{user: testUser()},
			&stubProductLookup{product: testProduct()},
			logger.New("error"))

		details, err := svc.GetOrder(context.Background(), order.ID)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if user, ok := details.UserDetails.(*models.User); !ok || user.Name != "Ann" {
			t.Errorf("expected full user details, got %+v", details.UserDetails)
		}
		if product, ok := details.ProductDetails.(*models.Product); !ok || product.Name != "Pen" {
			t.Errorf("expected full product details, got %+v", details.ProductDetails)
		}
	})

	t.Run("user directory down degrades gracefully", func(t *testing.T) {
		svc := NewOrderService(repo,
			&stubUserLookup{err: client.ErrUnavailable},
			&stubProductLookup{product: testProduct()},
			logger.New("error"))

		details, err := svc.GetOrder(context.Background(), order.ID)
		if err != nil {
			t.Fatalf("enrichment failure must not fail the request, got %v", err)
		}
		if details.ID != order.ID || details.Quantity != 4 {
			t.Errorf("base order fields must stay intact: %+v", details.Order)
		}
		if _, ok := details.UserDetails.(models.EnrichmentError); !ok {
			t.Errorf("expected inline error marker for user, got %+v", details.UserDetails)
		}
		if _, ok := details.ProductDetails.(*models.Product); !ok {
			t.Errorf("expected full product details, got %+v", details.ProductDetails)
		}
	})

	t.Run("both upstreams down", func(t *testing.T) {
		svc := NewOrderService(repo,
			&stubUserLookup{err: client.ErrUnavailable},
			&stubProductLookup{err: client.ErrNotFound},
			logger.New("error"))

		details, err := svc.GetOrder(context.Background(), order.ID)
		if err != nil {
			t.Fatalf("enrichment failure must not fail the request, got %v", err)
		}
		if _, ok := details.UserDetails.(models.EnrichmentError); !ok {
			t.Errorf("expected inline error marker for user, got %+v", details.UserDetails)
		}
		if _, ok := details.ProductDetails.(models.EnrichmentError); !ok {
			t.Errorf("expected inline error marker for product, got %+v", details.ProductDetails)
		}
	})
}
