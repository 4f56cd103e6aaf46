package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

func (q NewsQuery) values() url.Values {
	v := url.Values{}
	if q.Term != "" {
		v.Set("term", q.Term)
	}
	if q.Source != "" {
		v.Set("source", q.Source)
	}
	if q.Sentiment != "" {
		v.Set("sentiment", q.Sentiment)
	}
	if q.StartDate != nil {
		v.Set("start_date", q.StartDate.Format(time.RFC3339))
	}
	if q.EndDate != nil {
		v.Set("end_date", q.EndDate.Format(time.RFC3339))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return v
}

func (c *Client) ListNews(ctx context.Context, q NewsQuery) (*NewsList, error) {
	var out NewsList
	if err := c.do(ctx, http.MethodGet, "/news", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetNews(ctx context.Context, id string) (*NewsItem, error) {
	var out NewsItem
	if err := c.do(ctx, http.MethodGet, "/news/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSources(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/news/sources/list", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
