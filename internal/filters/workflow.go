// Package filters manages the capped set of monitored terms. The quota is
// enforced server-side; this side only mirrors the projection the listing
// endpoint returns and keeps list edits feeling instant by applying them
// optimistically, rolling back when the backend says no.
package filters

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"ecoa/internal/api"
)

// MsgAddFailed is the fallback when the backend rejects a term without a
// detail message.
const MsgAddFailed = "Erro ao adicionar termo"

// ErrEmptyTerm rejects blank input before any network call.
var ErrEmptyTerm = errors.New("Informe um termo para monitorar")

// ErrUnknownFilter reports a toggle/delete against an id not in the local
// list, which means the view is stale.
var ErrUnknownFilter = errors.New("termo não encontrado")

// API is the slice of the client the workflow needs.
type API interface {
	ListFilters(ctx context.Context) (*api.FilterList, error)
	CreateFilter(ctx context.Context, term string) (*api.Filter, error)
	UpdateFilter(ctx context.Context, id string, update api.FilterUpdate) (*api.Filter, error)
	DeleteFilter(ctx context.Context, id string) error
}

// View is a copy of the workflow state for rendering. LimitReached comes
// from the server on Load; Delete clears it locally until the next Load
// confirms.
type View struct {
	Items        []api.Filter
	Total        int
	LimitReached bool
	PlanLimit    int
}

func (v View) ActiveCount() int {
	n := 0
	for _, f := range v.Items {
		if f.IsActive {
			n++
		}
	}
	return n
}

// Workflow holds the local mirror of the user's monitored terms.
type Workflow struct {
	mu  sync.Mutex
	api API
	log zerolog.Logger

	items        []api.Filter
	total        int
	limitReached bool
	planLimit    int
	loaded       bool
	// gen counts mirror replacements; optimistic reverts racing a Load
	// check it so they never undo fresh server truth.
	gen int
}

func NewWorkflow(client API, log zerolog.Logger) *Workflow {
	return &Workflow{api: client, log: log}
}

func (w *Workflow) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	items := make([]api.Filter, len(w.items))
	copy(items, w.items)
	return View{Items: items, Total: w.total, LimitReached: w.limitReached, PlanLimit: w.planLimit}
}

func (w *Workflow) Loaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loaded
}

// Load replaces the local mirror with the server's list and quota
// projection. The projection is what decides whether adding is allowed.
func (w *Workflow) Load(ctx context.Context) (View, error) {
	list, err := w.api.ListFilters(ctx)
	if err != nil {
		return View{}, err
	}
	w.mu.Lock()
	w.items = list.Items
	w.total = list.Total
	w.limitReached = list.LimitReached
	w.planLimit = list.PlanLimit
	w.loaded = true
	w.gen++
	w.mu.Unlock()
	return w.Snapshot(), nil
}

// Add creates a new monitored term. Whitespace-only input is rejected here,
// before the network. On success the whole list is reloaded rather than
// inserted locally, so the quota flags stay consistent with the server; on
// rejection local state is untouched.
func (w *Workflow) Add(ctx context.Context, term string) (View, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return w.Snapshot(), ErrEmptyTerm
	}
	if _, err := w.api.CreateFilter(ctx, term); err != nil {
		return w.Snapshot(), err
	}
	w.log.Info().Str("term", term).Msg("term added")
	return w.Load(ctx)
}

// Toggle flips is_active optimistically and then tells the server. If the
// server rejects, the flip is reverted and the error returned — the local
// change was a hypothesis, not a fact.
func (w *Workflow) Toggle(ctx context.Context, id string) (View, error) {
	w.mu.Lock()
	idx := w.indexLocked(id)
	if idx < 0 {
		w.mu.Unlock()
		return w.Snapshot(), ErrUnknownFilter
	}
	w.items[idx].IsActive = !w.items[idx].IsActive
	next := w.items[idx].IsActive
	w.mu.Unlock()

	if _, err := w.api.UpdateFilter(ctx, id, api.FilterUpdate{IsActive: &next}); err != nil {
		w.mu.Lock()
		if idx := w.indexLocked(id); idx >= 0 {
			w.items[idx].IsActive = !next
		}
		w.mu.Unlock()
		w.log.Debug().Err(err).Str("id", id).Msg("toggle rejected, reverted")
		return w.Snapshot(), err
	}
	return w.Snapshot(), nil
}

// Delete removes a term. The confirmation step belongs to the caller; by
// the time this runs the user already said yes. Removal and the clearing of
// limit_reached are optimistic: the next Load restores server truth. On
// failure the item is put back where it was.
func (w *Workflow) Delete(ctx context.Context, id string) (View, error) {
	w.mu.Lock()
	idx := w.indexLocked(id)
	if idx < 0 {
		w.mu.Unlock()
		return w.Snapshot(), ErrUnknownFilter
	}
	removed := w.items[idx]
	wasLimitReached := w.limitReached
	gen := w.gen
	w.items = append(w.items[:idx:idx], w.items[idx+1:]...)
	w.total--
	w.limitReached = false
	w.mu.Unlock()

	if err := w.api.DeleteFilter(ctx, id); err != nil {
		w.mu.Lock()
		// A Load that landed during the request already replaced the
		// mirror with server truth; only undo our own removal.
		if w.gen == gen && w.indexLocked(id) < 0 {
			if idx > len(w.items) {
				idx = len(w.items)
			}
			w.items = append(w.items[:idx], append([]api.Filter{removed}, w.items[idx:]...)...)
			w.total++
			w.limitReached = wasLimitReached
		}
		w.mu.Unlock()
		return w.Snapshot(), err
	}
	w.log.Info().Str("term", removed.Term).Msg("term removed")
	return w.Snapshot(), nil
}

func (w *Workflow) indexLocked(id string) int {
	for i, f := range w.items {
		if f.ID == id {
			return i
		}
	}
	return -1
}
