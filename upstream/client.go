// upstream/client.go
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/model"
)

const maxBodyBytes = 32 << 20

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return fab_errors.ErrUpstream
}

// Client talks to the dashboard data API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid upstream base URL %q: scheme and host required", baseURL)
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// FacilityDirectory fetches the facility to tool mapping.
func (c *Client) FacilityDirectory(ctx context.Context) (model.FacilityDirectory, error) {
	var dir model.FacilityDirectory
	if err := c.getJSON(ctx, "/api/fab-list", nil, &dir); err != nil {
		return nil, err
	}
	if dir == nil {
		dir = model.FacilityDirectory{}
	}
	return dir, nil
}

// ToolFabMapping returns the same mapping for tool-first consumers.
func (c *Client) ToolFabMapping(ctx context.Context) (model.FacilityDirectory, error) {
	return c.FacilityDirectory(ctx)
}

func (c *Client) CurrentStatus(ctx context.Context, facility string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/equipment-status/current-status", facilityQuery(facility))
}

func (c *Client) NotAvailable(ctx context.Context, facility string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/equipment-status/not_available", facilityQuery(facility))
}

func (c *Client) Storage(ctx context.Context, facility string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/equipment-status/storage", facilityQuery(facility))
}

func (c *Client) DeviceOptions(ctx context.Context, facility string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/device-statistics/options", facilityQuery(facility))
}

func (c *Client) DeviceData(ctx context.Context, facility string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/device-statistics/device-data", facilityQuery(facility))
}

func (c *Client) RecipeList(ctx context.Context, facility, tool string) (json.RawMessage, error) {
	path := "/api/recipe-search/" + url.PathEscape(facility) + "/" + url.PathEscape(tool)
	return c.raw(ctx, path, nil)
}

func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, "/api/health", nil)
}

func (c *Client) JobsStatus(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, "/api/jobs/status", nil)
}

func (c *Client) raw(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := c.getJSON(ctx, path, query, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", fab_errors.ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	logger.Debug("Upstream request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %w", fab_errors.ErrUpstream, path, err)
	}
	return nil
}

func facilityQuery(facility string) url.Values {
	if facility == "" {
		return nil
	}
	return url.Values{"fac_id": {facility}}
}
