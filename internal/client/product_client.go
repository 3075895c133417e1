package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopmesh/shopmesh/internal/models"
	"github.com/shopspring/decimal"
)

// ProductClient looks up products in the product catalog service
type ProductClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProductClient creates a client for the product catalog at baseURL.
// Every lookup is bounded by timeout.
func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

// productPayload mirrors the catalog response with an optional price, so a
// 200 body that omits the price can be told apart from a price of zero.
type productPayload struct {
	ID    int64            `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// GetProduct fetches a product record by id. A success response without a
// numeric price is a contract violation, not a connectivity failure.
func (c *ProductClient) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)

	resp, err := get(ctx, c.httpClient, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: product service at %s returned status %d", ErrUnavailable, url, resp.StatusCode)
	}

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: malformed product payload from %s", ErrInvalidResponse, url)
	}
	if payload.Price == nil {
		return nil, fmt.Errorf("%w: product payload from %s is missing a numeric price", ErrInvalidResponse, url)
	}

	return &models.Product{ID: payload.ID, Name: payload.Name, Price: *payload.Price}, nil
}
