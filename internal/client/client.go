// Package client implements the outbound HTTP lookups the order service
// performs against the user directory and the product catalog. Every call
// is bounded by the client timeout; failures are classified into sentinel
// errors so callers can map them to precise responses.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

var (
	// ErrNotFound means the upstream answered 404 for the entity.
	ErrNotFound = errors.New("not found upstream")
	// ErrUnavailable means the upstream could not be reached, timed out,
	// or answered with an unexpected error status.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrInvalidResponse means the upstream answered 200 with an unusable payload.
	ErrInvalidResponse = errors.New("invalid upstream response")
)

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// get issues a context-bound GET and classifies transport-level failures.
// Timeouts keep a distinguishable message from plain connection failures.
func get(ctx context.Context, httpClient *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: request to %s timed out", ErrUnavailable, url)
		}
		return nil, fmt.Errorf("%w: cannot reach %s", ErrUnavailable, url)
	}

	return resp, nil
}
