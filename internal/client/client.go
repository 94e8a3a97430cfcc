package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"PriceBoard/internal/model"

	"github.com/go-resty/resty/v2"
)

// ErrUnavailable covers transport errors, malformed bodies and non-2xx
// statuses without an API error body. Statuses that carry {"error": ...}
// are reported as model.ErrNoData instead.
var ErrUnavailable = errors.New("data source unavailable")

// Client talks to a PriceBoard server.
type Client struct {
	http *resty.Client
}

// New creates a client for baseURL. An empty proxyURL means a direct connection.
func New(baseURL string, timeout time.Duration, proxyURL string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if proxyURL != "" {
		rc.SetProxy(proxyURL)
	}
	return &Client{http: rc}
}

// FetchPrice calls GET /api/price/{resource}.
func (c *Client) FetchPrice(ctx context.Context, resource string) (model.Quote, error) {
	var q model.Quote
	if err := c.get(ctx, "/api/price/{resource}", map[string]string{"resource": resource}, &q); err != nil {
		return model.Quote{}, fmt.Errorf("fetch price %s: %w", resource, err)
	}
	return q, nil
}

// FetchHistory calls GET /api/history/{resource}/{period}. The period token
// is sent as is.
func (c *Client) FetchHistory(ctx context.Context, resource string, period model.Period) (model.HistorySeries, error) {
	var h model.HistorySeries
	params := map[string]string{"resource": resource, "period": string(period)}
	if err := c.get(ctx, "/api/history/{resource}/{period}", params, &h); err != nil {
		return nil, fmt.Errorf("fetch history %s/%s: %w", resource, period, err)
	}
	return h, nil
}

// ResourceInfo is one entry of GET /api/resources.
type ResourceInfo struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
}

// FetchResources calls GET /api/resources.
func (c *Client) FetchResources(ctx context.Context) ([]ResourceInfo, error) {
	var out []ResourceInfo
	if err := c.get(ctx, "/api/resources", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch resources: %w", err)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetPathParams(params).Get(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.IsError() {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("status %d: %w: %s", resp.StatusCode(), model.ErrNoData, apiErr.Error)
		}
		return fmt.Errorf("%w: status %d, body: %s", ErrUnavailable, resp.StatusCode(), resp.String())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrUnavailable, err)
	}
	return nil
}
