package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCreds struct {
	mu    sync.Mutex
	token string
}

func (m *memCreds) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *memCreds) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *memCreds) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	creds := &memCreds{token: token}
	return New(srv.URL, 5*time.Second, creds, zerolog.Nop()), creds
}

func TestBearerAttachedWhenCredentialPresent(t *testing.T) {
	var gotAuth, gotReqID string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"id":"u1","email":"a@b.c","plan_type":"free"}`))
	}), "tok-123")

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestNoBearerWhenAnonymous(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"access_token":"t","token_type":"bearer","user":{"id":"u1","email":"a@b.c","plan_type":"free"}}`))
	}), "")

	_, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedClearsCredentialAndNotifies(t *testing.T) {
	c, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Credenciais inválidas"}`))
	}), "stale-token")

	notified := 0
	c.OnUnauthorized = func() { notified++ }

	// Any authenticated call must trigger the teardown, not just auth ones.
	_, err := c.ListFilters(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, creds.Token())
	assert.Equal(t, 1, notified)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Credenciais inválidas", apiErr.Detail)
}

func TestBusinessRejectionKeepsCredential(t *testing.T) {
	c, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Limite de 3 termos atingido. Faça upgrade para o plano Pro."}`))
	}), "tok")

	_, err := c.CreateFilter(context.Background(), "reforma")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "tok", creds.Token(), "non-401 errors must not touch the credential")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "Limite de 3 termos")
}

func TestNewsQueryParamsPassedThrough(t *testing.T) {
	var got map[string]string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`{"items":[],"total":0,"page":2,"per_page":10,"total_pages":0}`))
	}), "tok")

	_, err := c.ListNews(context.Background(), NewsQuery{
		Term:      "joão silva",
		Source:    "g1",
		Sentiment: SentimentNegative,
		Page:      2,
		PerPage:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"term":      "joão silva",
		"source":    "g1",
		"sentiment": "negative",
		"page":      "2",
		"per_page":  "10",
	}, got)
}

func TestDashboardPartialRefreshEndpoints(t *testing.T) {
	var gotDays string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dashboard/stats":
			w.Write([]byte(`{"total_news":12,"news_today":3,"positive_mentions":5,"negative_mentions":4,"neutral_mentions":3,"active_terms":2}`))
		case "/dashboard/trends":
			gotDays = r.URL.Query().Get("days")
			w.Write([]byte(`[{"term":"reforma","data":[{"date":"2026-08-29","count":2,"sentiment_avg":0.1}]}]`))
		case "/dashboard/sources":
			w.Write([]byte(`[{"source":"g1","count":8,"percentage":66.7}]`))
		default:
			http.NotFound(w, r)
		}
	}), "tok")

	stats, err := c.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalNews)
	assert.Equal(t, 2, stats.ActiveTerms)

	trends, err := c.GetTrends(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "7", gotDays)
	require.Len(t, trends, 1)
	assert.Equal(t, "reforma", trends[0].Term)
	require.Len(t, trends[0].Data, 1)
	assert.Equal(t, 2, trends[0].Data[0].Count)

	sources, err := c.GetSourceStats(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "g1", sources[0].Source)
	assert.InDelta(t, 66.7, sources[0].Percentage, 0.01)
}

func TestDetailFallback(t *testing.T) {
	assert.Equal(t, "Erro ao fazer login", Detail(context.DeadlineExceeded, "Erro ao fazer login"))
	assert.Equal(t, "Email já cadastrado", Detail(&APIError{Status: 400, Detail: "Email já cadastrado"}, "Erro ao criar conta"))
	assert.Equal(t, "Erro ao criar conta", Detail(&APIError{Status: 500}, "Erro ao criar conta"))
}
