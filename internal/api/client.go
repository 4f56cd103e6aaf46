// Package api is the single path to the ECOA backend. It owns the base URL
// and the stored credential: every request goes through Client.do, which
// attaches the bearer token, and every 401 tears the credential down exactly
// once, regardless of which endpoint produced it.
package api

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnauthorized marks authorization failures. Matched with errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is any non-2xx response. Detail holds the backend's "detail"
// field when the body had one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Detail extracts the backend-provided message from err, falling back to the
// given operation-specific message. This mirrors the error policy of the
// whole client: show the server's words when it spoke, a fixed phrase when
// it did not.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// CredentialStore is the durable token record the client reads on every
// request and clears on 401. Implemented by session.Credentials.
type CredentialStore interface {
	Token() string
	Clear() error
}

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialStore
	log     zerolog.Logger

	// OnUnauthorized is invoked after a 401 response has cleared the
	// credential store. The session owner subscribes here to decide what
	// "go back to login" means for its environment.
	OnUnauthorized func()
}

func New(baseURL string, timeout time.Duration, creds CredentialStore, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log,
	}
}

// do issues one request. body and out may be nil; out must be a pointer when
// set. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// The credential is unusable for this session; clear it before
		// anyone can retry with it.
		if err := c.creds.Clear(); err != nil {
			c.log.Error().Err(err).Msg("clearing credentials after 401")
		}
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return &APIError{Status: resp.StatusCode, Detail: decodeDetail(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Detail: decodeDetail(resp.Body)}
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("detail", apiErr.Detail).Msg("backend rejected request")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeDetail(r io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}
