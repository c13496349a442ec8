// Package api is the REST client for the café backend. Every wrapper
// is a direct request/response pass-through: no caching, no retries,
// no optimistic updates. Failures surface to the caller as opaque
// errors for display.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxResponseBytes caps how much of a response body is read. The
// backend returns small DTOs; anything larger is a misbehaving server.
const maxResponseBytes = 8 << 20

// DefaultTimeout bounds each request when the config does not say
// otherwise.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the current bearer credential, when one exists.
// Implemented by the session manager; the client asks per request so a
// login or logout in another process is picked up immediately.
type TokenSource interface {
	Token() (string, bool)
}

// Client calls the café backend REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger

	// Typed CRUD surfaces, one per backend resource.
	Products       Resource[Product]
	Users          Resource[User]
	Orders         Resource[Order]
	OrderItems     Resource[OrderItem]
	Payments       Resource[Payment]
	MenuCategories Resource[MenuCategory]
	Restaurants    Resource[Restaurant]
	Managers       Resource[Manager]
}

// NewClient creates a Client for the given base URL. tokens may be nil
// for an unauthenticated client (login, registration).
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: trimBaseURL(baseURL),
		logger:  logger,
		httpc: &http.Client{
			Timeout: timeout,
			Transport: &bearerTransport{
				base:   http.DefaultTransport,
				tokens: tokens,
			},
		},
	}
	c.Products = Resource[Product]{c: c, base: "/products"}
	c.Users = Resource[User]{c: c, base: "/users"}
	c.Orders = Resource[Order]{c: c, base: "/orders"}
	c.OrderItems = Resource[OrderItem]{c: c, base: "/order-items"}
	c.Payments = Resource[Payment]{c: c, base: "/payments"}
	c.MenuCategories = Resource[MenuCategory]{c: c, base: "/menu-categories"}
	c.Restaurants = Resource[Restaurant]{c: c, base: "/restaurants"}
	c.Managers = Resource[Manager]{c: c, base: "/managers"}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one JSON round trip. in (when non-nil) is marshaled as
// the request body; out (when non-nil) receives the decoded response.
// Non-2xx statuses come back as *Error with the body preserved.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	c.logger.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Body: string(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// trimBaseURL drops a trailing slash so path joining stays uniform.
func trimBaseURL(u string) string {
	for len(u) > 0 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}
