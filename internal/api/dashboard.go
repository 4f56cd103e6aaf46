package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GetDashboard fetches the whole aggregate in one call; the individual
// endpoints below exist for partial refreshes.
func (c *Client) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTrends(ctx context.Context, days int) ([]Trend, error) {
	var q url.Values
	if days > 0 {
		q = url.Values{"days": {strconv.Itoa(days)}}
	}
	var out []Trend
	if err := c.do(ctx, http.MethodGet, "/dashboard/trends", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSourceStats(ctx context.Context) ([]SourceStats, error) {
	var out []SourceStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/sources", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
