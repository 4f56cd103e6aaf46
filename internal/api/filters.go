package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListFilters(ctx context.Context) (*FilterList, error) {
	var out FilterList
	if err := c.do(ctx, http.MethodGet, "/filters", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFilter registers a new monitored term, active by default. The server
// enforces the plan quota and rejects with a detail message past it.
func (c *Client) CreateFilter(ctx context.Context, term string) (*Filter, error) {
	body := map[string]any{"term": term, "is_active": true}
	var out Filter
	if err := c.do(ctx, http.MethodPost, "/filters", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFilter(ctx context.Context, id string, update FilterUpdate) (*Filter, error) {
	var out Filter
	if err := c.do(ctx, http.MethodPut, "/filters/"+url.PathEscape(id), nil, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFilter(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/filters/"+url.PathEscape(id), nil, nil, nil)
}
