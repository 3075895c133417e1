package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopmesh/shopmesh/internal/models"
)

// UserClient looks up users in the user directory service
type UserClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewUserClient creates a client for the user directory at baseURL.
// Every lookup is bounded by timeout.
func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

// GetUser fetches a user record by id
func (c *UserClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	url := fmt.Sprintf("%s/users/%d", c.baseURL, id)

	resp, err := get(ctx, c.httpClient, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: user service at %s returned status %d", ErrUnavailable, url, resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: malformed user payload from %s", ErrInvalidResponse, url)
	}

	return &user, nil
}
