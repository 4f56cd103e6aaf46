package filters

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoa/internal/api"
)

// fakeServer enforces a plan quota the way the backend does, so tests can
// distinguish the client's optimistic state from server-confirmed truth.
type fakeServer struct {
	filters   []api.Filter
	planLimit int

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	updateErr error
	deleteErr error

	// deleteHook runs inside DeleteFilter before the error check, to stage
	// work that overlaps the in-flight request.
	deleteHook func()
}

func (s *fakeServer) ListFilters(ctx context.Context) (*api.FilterList, error) {
	s.listCalls++
	items := make([]api.Filter, len(s.filters))
	copy(items, s.filters)
	return &api.FilterList{
		Items:        items,
		Total:        len(items),
		LimitReached: len(items) >= s.planLimit,
		PlanLimit:    s.planLimit,
	}, nil
}

func (s *fakeServer) CreateFilter(ctx context.Context, term string) (*api.Filter, error) {
	s.createCalls++
	if len(s.filters) >= s.planLimit {
		return nil, &api.APIError{Status: 403, Detail: "Limite de 3 termos atingido. Faça upgrade para o plano Pro."}
	}
	f := api.Filter{ID: "f" + term, Term: term, IsActive: true, CreatedAt: time.Now()}
	s.filters = append(s.filters, f)
	return &f, nil
}

func (s *fakeServer) UpdateFilter(ctx context.Context, id string, update api.FilterUpdate) (*api.Filter, error) {
	s.updateCalls++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	for i := range s.filters {
		if s.filters[i].ID == id {
			if update.IsActive != nil {
				s.filters[i].IsActive = *update.IsActive
			}
			if update.Term != nil {
				s.filters[i].Term = *update.Term
			}
			return &s.filters[i], nil
		}
	}
	return nil, &api.APIError{Status: 404, Detail: "Filtro não encontrado"}
}

func (s *fakeServer) DeleteFilter(ctx context.Context, id string) error {
	s.deleteCalls++
	if s.deleteHook != nil {
		s.deleteHook()
	}
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i := range s.filters {
		if s.filters[i].ID == id {
			s.filters = append(s.filters[:i], s.filters[i+1:]...)
			return nil
		}
	}
	return &api.APIError{Status: 404, Detail: "Filtro não encontrado"}
}

func atLimit() *fakeServer {
	return &fakeServer{
		planLimit: 3,
		filters: []api.Filter{
			{ID: "f1", Term: "reforma tributária", IsActive: true},
			{ID: "f2", Term: "joão silva", IsActive: true},
			{ID: "f3", Term: "pl 123", IsActive: true},
		},
	}
}

func newWorkflow(srv *fakeServer) *Workflow {
	return NewWorkflow(srv, zerolog.Nop())
}

func TestQuotaProjectionMirrored(t *testing.T) {
	wf := newWorkflow(atLimit())
	view, err := wf.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, view.LimitReached)
	assert.Equal(t, 3, view.PlanLimit)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 3, view.ActiveCount())
}

func TestDeleteClearsLimitOptimisticallyServerConfirmsOnLoad(t *testing.T) {
	srv := atLimit()
	wf := newWorkflow(srv)
	_, err := wf.Load(context.Background())
	require.NoError(t, err)

	listCallsBefore := srv.listCalls

	// Optimistic: the local flag clears before any fresh read.
	view, err := wf.Delete(context.Background(), "f2")
	require.NoError(t, err)
	assert.False(t, view.LimitReached, "local clear is immediate")
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, listCallsBefore, srv.listCalls, "delete alone does not re-list")

	// Server truth: the next Load reports headroom for real.
	view, err = wf.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, view.LimitReached)
	assert.Equal(t, 2, view.Total)
}

func TestDeleteFailureRestoresItemAndFlag(t *testing.T) {
	srv := atLimit()
	srv.deleteErr = &api.APIError{Status: 500, Detail: "Erro interno"}
	wf := newWorkflow(srv)
	_, err := wf.Load(context.Background())
	require.NoError(t, err)

	view, err := wf.Delete(context.Background(), "f2")
	require.Error(t, err)
	assert.Equal(t, 3, view.Total, "failed delete puts the item back")
	assert.True(t, view.LimitReached, "failed delete restores the quota flag")
	assert.Equal(t, "joão silva", view.Items[1].Term, "item returns to its position")
}

func TestDeleteFailureAfterConcurrentReloadKeepsServerTruth(t *testing.T) {
	srv := atLimit()
	wf := newWorkflow(srv)
	_, err := wf.Load(context.Background())
	require.NoError(t, err)

	// While the delete of the last item is in flight, the server list
	// shrinks and a reload replaces the mirror. The failed delete must not
	// resurrect the item, and must not trip over the shorter list.
	srv.deleteErr = &api.APIError{Status: 500, Detail: "Erro interno"}
	srv.deleteHook = func() {
		srv.filters = srv.filters[:1]
		_, _ = wf.Load(context.Background())
	}

	view, err := wf.Delete(context.Background(), "f3")
	require.Error(t, err)
	assert.Equal(t, 1, view.Total, "the reloaded server truth stands")
	assert.Equal(t, "reforma tributária", view.Items[0].Term)
	assert.False(t, view.LimitReached)
}

func TestAddReloadsListOnSuccess(t *testing.T) {
	srv := &fakeServer{planLimit: 3, filters: []api.Filter{{ID: "f1", Term: "reforma", IsActive: true}}}
	wf := newWorkflow(srv)
	_, err := wf.Load(context.Background())
	require.NoError(t, err)
	listCalls := srv.listCalls

	view, err := wf.Add(context.Background(), "  eleições 2026  ")
	require.NoError(t, err)
	assert.Equal(t, listCalls+1, srv.listCalls, "success triggers a full re-list")
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, "eleições 2026", view.Items[1].Term, "term is trimmed before sending")
}

func TestAddPastQuotaSurfacesDetailAndKeepsState(t *testing.T) {
	srv := atLimit()
	wf := newWorkflow(srv)
	before, err := wf.Load(context.Background())
	require.NoError(t, err)

	view, err := wf.Add(context.Background(), "quarto termo")
	require.Error(t, err)
	assert.Contains(t, api.Detail(err, MsgAddFailed), "Limite de 3 termos")
	assert.Equal(t, before.Items, view.Items, "rejection leaves the list alone")
	assert.True(t, view.LimitReached)
}

func TestAddWhitespaceOnlyNeverHitsNetwork(t *testing.T) {
	srv := atLimit()
	wf := newWorkflow(srv)
	before, err := wf.Load(context.Background())
	require.NoError(t, err)
	createCalls, listCalls := srv.createCalls, srv.listCalls

	view, err := wf.Add(context.Background(), "   \t  ")
	require.ErrorIs(t, err, ErrEmptyTerm)
	assert.Equal(t, createCalls, srv.createCalls)
	assert.Equal(t, listCalls, srv.listCalls)
	assert.Equal(t, before.Items, view.Items)
}

func TestToggleIsOptimistic(t *testing.T) {
	srv := atLimit()
	wf := newWorkflow(srv)
	_, err := wf.Load(context.Background())
	require.NoError(t, err)

	view, err := wf.Toggle(context.Background(), "f1")
	require.NoError(t, err)
	assert.False(t, view.Items[0].IsActive)
	assert.Equal(t, 1, srv.updateCalls)
	assert.False(t, srv.filters[0].IsActive, "server converges to the same state")
}

func TestToggleFailureReverts(t *testing.T) {
	srv := atLimit()
	srv.updateErr = &api.APIError{Status: 500, Detail: "Erro interno"}
	wf := newWorkflow(srv)
	_, err := wf.Load(context.Background())
	require.NoError(t, err)

	view, err := wf.Toggle(context.Background(), "f1")
	require.Error(t, err)
	assert.True(t, view.Items[0].IsActive, "rejected toggle is rolled back")
	assert.True(t, srv.filters[0].IsActive, "local and server agree after revert")
}

func TestToggleUnknownID(t *testing.T) {
	wf := newWorkflow(atLimit())
	_, err := wf.Load(context.Background())
	require.NoError(t, err)

	_, err = wf.Toggle(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}
