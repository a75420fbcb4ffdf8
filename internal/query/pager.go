package query

import (
	"context"
	"log/slog"
	"sync"

	"github.com/reedham/waxwing/internal/domain"
)

// State is the pagination controller's position in its lifecycle.
type State int

const (
	// StateIdle means nothing has been fetched yet.
	StateIdle State = iota

	// StateLoadingFirst means the first page is being fetched.
	StateLoadingFirst

	// StateHasMore means at least one page is loaded and more remain.
	StateHasMore

	// StateLoadingMore means a follow-up page is being fetched.
	StateLoadingMore

	// StateExhausted means the final page has been loaded.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingFirst:
		return "loading"
	case StateHasMore:
		return "has-more"
	case StateLoadingMore:
		return "loading-more"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// FetchPageFunc loads one page of a collection. Pages are 1-based.
type FetchPageFunc[T any] func(ctx context.Context, page int) (domain.Page[T], error)

// Pager accumulates pages of a collection one FetchNext at a time.
// Loaded items are appended in arrival order and never deduplicated;
// if the backend shifts rows between pages while the user scrolls, the
// duplicates are rendered as-is.
type Pager[T any] struct {
	mu     sync.Mutex
	fetch  FetchPageFunc[T]
	logger *slog.Logger

	state State
	items []T
	next  int
	total int64

	// gen increments on Reset so a fetch that was in flight when the
	// pager was reset cannot land its page into the fresh state.
	gen uint64
}

// NewPager creates a pager over fetch. No request is made until the
// first FetchNext.
func NewPager[T any](fetch FetchPageFunc[T], logger *slog.Logger) *Pager[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pager[T]{
		fetch:  fetch,
		logger: logger,
		state:  StateIdle,
		next:   1,
	}
}

// FetchNext loads the next page. It is a no-op while a fetch is already
// running and once the collection is exhausted. On error the pager
// reverts to its previous state so the fetch can be retried. A result
// arriving after a Reset is discarded.
func (p *Pager[T]) FetchNext(ctx context.Context) error {
	p.mu.Lock()
	prev := p.state
	switch p.state {
	case StateLoadingFirst, StateLoadingMore, StateExhausted:
		p.mu.Unlock()
		return nil
	case StateIdle:
		p.state = StateLoadingFirst
	default:
		p.state = StateLoadingMore
	}
	page := p.next
	gen := p.gen
	p.mu.Unlock()

	result, err := p.fetch(ctx, page)

	p.mu.Lock()
	defer p.mu.Unlock()

	// Reset happened while the fetch was running; the page belongs to
	// the abandoned sequence.
	if p.gen != gen {
		return nil
	}

	if err != nil {
		p.state = prev
		p.logger.Error("failed to fetch page", "page", page, "error", err)
		return err
	}

	p.items = append(p.items, result.Content...)
	p.total = result.TotalElements
	if result.Last() {
		p.state = StateExhausted
	} else {
		p.state = StateHasMore
		p.next = result.CurrentPage + 1
	}
	p.logger.Debug("fetched page", "page", page, "loaded", len(p.items), "total", p.total, "state", p.state.String())
	return nil
}

// Items returns every item loaded so far, in arrival order.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]T, len(p.items))
	copy(items, p.items)
	return items
}

// State returns the pager's current state.
func (p *Pager[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Total returns the backend's reported element count, or 0 before the
// first page arrives.
func (p *Pager[T]) Total() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Loading reports whether a fetch is in flight.
func (p *Pager[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StateLoadingFirst || p.state == StateLoadingMore
}

// Reset discards loaded items and returns the pager to idle. A fetch
// still in flight is orphaned; its result will be dropped.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = StateIdle
	p.items = nil
	p.next = 1
	p.total = 0
	p.gen++
}
