package sheetcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// probeHealth calls the health endpoint of the server at baseURL.
func probeHealth(ctx context.Context, client *HTTPClient, baseURL string) (Health, error) {
	url := strings.TrimRight(baseURL, "/") + healthPath
	resp, err := client.Get(ctx, url)
	if err != nil {
		return Health{}, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Health{}, fmt.Errorf("%w: read body: %w", ErrUnhealthy, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Health{}, fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return Health{}, fmt.Errorf("%w: decode: %w", ErrUnhealthy, err)
	}
	if h.Status != "healthy" {
		return h, fmt.Errorf("%w: status %q", ErrUnhealthy, h.Status)
	}
	return h, nil
}
