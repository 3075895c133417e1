package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopmesh/shopmesh/internal/models"
	"github.com/shopmesh/shopmesh/internal/repository"
	"github.com/shopmesh/shopmesh/internal/service"
	"github.com/shopmesh/shopmesh/pkg/logger"
	"github.com/shopspring/decimal"
)

func newProductRouter(t *testing.T) *chi.Mux {
	t.Helper()

	repo := repository.NewSQLiteProductRepository(newTestDB(t, repository.ProductsSchema))
	svc := service.NewProductService(repo)
	handler := NewProductHandler(svc, logger.New("error"))

	r := chi.NewRouter()
	r.Post("/products", handler.CreateProduct)
	r.Get("/products/{productId}", handler.GetProduct)
	return r
}

func TestCreateProduct_Success(t *testing.T) {
	r := newProductRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Pen","price":2.5}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var product models.Product
	if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if product.ID != 1 || product.Name != "Pen" {
		t.Errorf("unexpected product: %+v", product)
	}
	if !product.Price.Equal(decimal.NewFromFloat(2.5)) {
		t.Errorf("expected price 2.5, got %s", product.Price)
	}
}

func TestCreateProduct_PriceSerializesAsNumber(t *testing.T) {
	r := newProductRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Pen","price":2.5}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if strings.Contains(w.Body.String(), `"price":"`) {
		t.Errorf("price must be a JSON number, got body %s", w.Body.String())
	}
}

func TestCreateProduct_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `hello`},
		{"missing name", `{"price":2.5}`},
		{"missing price", `{"name":"Pen"}`},
		{"non-numeric price", `{"name":"Pen","price":"expensive"}`},
		{"negative price", `{"name":"Pen","price":-1}`},
	}

	r := newProductRouter(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			// Nothing may be written on a rejected create
			get := httptest.NewRequest(http.MethodGet, "/products/1", nil)
			gw := httptest.NewRecorder()
			r.ServeHTTP(gw, get)
			if gw.Code != http.StatusNotFound {
				t.Errorf("expected empty store, got status %d", gw.Code)
			}
		})
	}
}

func TestGetProduct(t *testing.T) {
	r := newProductRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Pen","price":2.5}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to seed product: status %d", w.Code)
	}

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"existing product", "/products/1", http.StatusOK},
		{"unknown id", "/products/999", http.StatusNotFound},
		{"malformed id", "/products/abc", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, w.Code)
			}
		})
	}
}
