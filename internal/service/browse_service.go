package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopforge/shopctl/internal/api"
)

// BrowseState is the lifecycle state of a collection view.
type BrowseState int

// Browse states: a view starts Idle, every (re)fetch passes through Loading,
// and ends Ready or Errored.
const (
	StateIdle BrowseState = iota
	StateLoading
	StateReady
	StateErrored
)

func (s BrowseState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Browse errors.
var (
	// ErrSuperseded marks a fetch whose response arrived after a newer fetch
	// had already been issued; its result was discarded, not applied.
	ErrSuperseded = errors.New("fetch superseded by a newer one")

	// ErrDeclined is returned when the user does not confirm a mutation.
	ErrDeclined = errors.New("action declined")

	// ErrClosed is returned for operations on an abandoned browser.
	ErrClosed = errors.New("browser closed")
)

// FetchFunc loads one page of a collection for the given filter.
type FetchFunc[T, F any] func(ctx context.Context, filter F) (*api.Collection[T], error)

// Browser is the one list/filter/mutate controller every collection view is
// an instance of: fetch with filters, hold the rows, run a confirmed row
// action, reload. It replaces its collection wholesale on every fetch and
// never patches rows locally.
//
// Every fetch carries a monotonically increasing sequence token; a response
// whose token is no longer the newest is discarded instead of overwriting
// fresher rows, so rapid filter changes cannot leave stale data on screen.
// Completions arriving after Close are discarded the same way.
type Browser[T, F any] struct {
	fetch  FetchFunc[T, F]
	logger *slog.Logger

	mu     sync.Mutex
	state  BrowseState
	filter F
	items  []T
	paging api.Paging
	err    error
	seq    uint64
	closed bool
}

// NewBrowser creates a Browser over the given fetch function.
func NewBrowser[T, F any](fetch FetchFunc[T, F], logger *slog.Logger) *Browser[T, F] {
	return &Browser[T, F]{
		fetch:  fetch,
		logger: logger,
	}
}

// Load fetches the collection with the current filter. Blocks until this
// fetch's response is applied or discarded. Returns ErrSuperseded when a
// newer fetch was issued mid-flight and this response was thrown away.
func (b *Browser[T, F]) Load(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.seq++
	token := b.seq
	filter := b.filter
	b.state = StateLoading
	b.mu.Unlock()

	col, err := b.fetch(ctx, filter)

	b.mu.Lock()
	defer b.mu.Unlock()

	// Fencing: only the newest fetch may touch view state. An abandoned
	// browser silently drops everything.
	if b.closed {
		return ErrClosed
	}
	if token != b.seq {
		b.logger.Debug("discarding stale fetch response", "token", token, "newest", b.seq)
		return ErrSuperseded
	}

	if err != nil {
		b.state = StateErrored
		b.err = err
		return err
	}

	b.items = col.Items
	b.paging = col.Paging
	b.state = StateReady
	b.err = nil
	return nil
}

// SetFilter replaces the filter and refetches. The previous collection stays
// on screen until the new response lands; if responses race, only the newest
// survives.
func (b *Browser[T, F]) SetFilter(ctx context.Context, filter F) error {
	b.mu.Lock()
	b.filter = filter
	b.mu.Unlock()
	return b.Load(ctx)
}

// Filter returns the current filter.
func (b *Browser[T, F]) Filter() F {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Mutate runs a row action behind an explicit confirmation gate, then
// unconditionally reloads the whole collection. The affected row is never
// patched in place; the server's next response is the only truth.
func (b *Browser[T, F]) Mutate(ctx context.Context, confirm func() bool, action func(ctx context.Context) error) error {
	if confirm != nil && !confirm() {
		return ErrDeclined
	}
	if err := action(ctx); err != nil {
		return err
	}
	return b.Load(ctx)
}

// State returns the current lifecycle state.
func (b *Browser[T, F]) State() BrowseState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Items returns the current rows. The slice is shared; callers must not
// mutate it.
func (b *Browser[T, F]) Items() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items
}

// Paging returns the paging block of the last applied response.
func (b *Browser[T, F]) Paging() api.Paging {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paging
}

// Err returns the error of the last applied fetch, or nil.
func (b *Browser[T, F]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Close abandons the browser: in-flight completions become no-ops.
func (b *Browser[T, F]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
