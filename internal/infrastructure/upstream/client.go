// Package upstream implements REST clients for the finance backend the
// gateway fronts. All transport failures are mapped onto the domain error
// taxonomy at this boundary.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cfo-web/finance-gateway/internal/api/metrics"
	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client is the shared HTTP plumbing for the upstream API clients.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL, e.g.
// "http://127.0.0.1:8000/api". A nil httpClient gets a default with a
// sensible timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// do issues a JSON request and decodes a 2xx response body into out (when out
// is non-nil). Non-2xx responses come back as *StatusError; connection-level
// failures map to ErrNetworkUnreachable. endpoint is the path template used
// as the metrics label, so ids never inflate label cardinality.
func (c *Client) do(ctx context.Context, method, path, endpoint string, body, out any, bearer string) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return fmt.Errorf("%w: upstream timeout: %v", domain.ErrNetworkUnreachable, err)
		}
		return fmt.Errorf("%w: %v", domain.ErrNetworkUnreachable, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded slice of the body for error context.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Code)
}

// statusCode extracts the HTTP status from an upstream error, or 0 when the
// error was not a status response.
func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
