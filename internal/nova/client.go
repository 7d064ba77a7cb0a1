// Package nova is a client for the Nova payments REST API.
//
// Every request carries the configured bearer token. Credentials are checked
// before any network call, so a misconfigured deployment fails with a
// [ConfigError] instead of an opaque 401 from upstream.
package nova

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/novareport/internal/config"
	"github.com/JonMunkholm/novareport/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of an error response body is kept in HTTPError.
const maxErrorBody = 4096

// Client talks to one tenant of the Nova API.
type Client struct {
	cfg  config.NovaConfig
	http *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Tests use it to point the
// client at an httptest server transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client from configuration.
func NewClient(cfg config.NovaConfig, opts ...Option) *Client {
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether token and tenant are both usable.
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

// tenantURL substitutes the tenant into the base URL template and appends path.
func (c *Client) tenantURL(path string) (string, error) {
	if !c.cfg.TenantConfigured() {
		return "", &ConfigError{Var: "NOVA_TENANT"}
	}
	base := strings.ReplaceAll(c.cfg.BaseURL, "{{tenant}}", strings.TrimSpace(c.cfg.Tenant))
	return strings.TrimRight(base, "/") + path, nil
}

// getJSON performs an authenticated GET and decodes the response with
// ParseJSON.
func (c *Client) getJSON(ctx context.Context, url string) (any, error) {
	if !c.cfg.TokenConfigured() {
		return nil, &ConfigError{Var: "NOVA_TOKEN"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}

	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.cfg.Token))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		logging.FromContext(ctx).Warn("nova api error",
			"url", url,
			"status", resp.StatusCode,
		)
		return nil, &HTTPError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       text,
		}
	}

	v, err := ParseJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", url, err)
	}
	return v, nil
}

// requestID reuses the inbound request's ID so upstream logs can be
// correlated; calls made outside an HTTP request get a fresh one.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
