package query

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Status describes what the cache knows about a key.
type Status int

const (
	// StatusMissing means the key has never been fetched.
	StatusMissing Status = iota

	// StatusPending means a fetch is in flight and no prior value exists.
	StatusPending

	// StatusSuccess means the entry holds a usable value.
	StatusSuccess

	// StatusError means the last fetch failed and no prior value exists.
	StatusError
)

// FetchFunc loads the value for a key from the backend.
type FetchFunc func(ctx context.Context) (interface{}, error)

// flight is one in-progress fetch. Every caller asking for the same key
// while it runs waits on done and shares its result.
type flight struct {
	done chan struct{}
	data interface{}
	err  error
}

// entry stores the cached value for one key. gen increments on every
// invalidation so a fetch that was already in flight when the key was
// invalidated cannot mark the entry fresh.
type entry struct {
	data      interface{}
	err       error
	status    Status
	stale     bool
	gen       uint64
	flight    *flight
	fetchedAt time.Time
}

// Cache is the read-path cache for catalog data. Concurrent Query calls
// for one key share a single backend fetch; mutations invalidate by key
// prefix, which marks entries stale without discarding the previous
// value, so callers can keep rendering it while the refetch runs.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	logger  *slog.Logger
}

// NewCache creates an empty cache.
func NewCache(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Query returns the cached value for key, fetching it when the entry is
// missing, stale, or errored. Callers that arrive while a fetch is in
// flight block until it resolves and share its result.
func (c *Cache) Query(ctx context.Context, key string, fetch FetchFunc) (interface{}, error) {
	c.mu.Lock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{status: StatusMissing}
		c.entries[key] = e
	}

	if e.flight != nil {
		f := e.flight
		c.mu.Unlock()
		return c.wait(ctx, f)
	}

	if e.status == StatusSuccess && !e.stale {
		data := e.data
		c.mu.Unlock()
		c.logger.Debug("cache hit", "key", key)
		return data, nil
	}

	f := &flight{done: make(chan struct{})}
	e.flight = f
	gen := e.gen
	if e.status != StatusSuccess {
		e.status = StatusPending
	}
	c.mu.Unlock()

	c.logger.Debug("cache fetch", "key", key)
	data, err := fetch(ctx)

	c.mu.Lock()
	f.data = data
	f.err = err
	e.flight = nil
	if err != nil {
		e.err = err
		if e.status != StatusSuccess {
			e.status = StatusError
		}
		c.logger.Error("fetch failed", "key", key, "error", err)
	} else {
		e.data = data
		e.err = nil
		e.status = StatusSuccess
		e.fetchedAt = time.Now()
		// A concurrent invalidation bumped gen; the value is delivered
		// but the entry stays stale so the next Query refetches.
		e.stale = e.gen != gen
	}
	c.mu.Unlock()
	close(f.done)

	return data, err
}

// wait blocks until an in-flight fetch resolves or the caller's context
// is cancelled. Cancellation abandons the wait, not the fetch.
func (c *Cache) wait(ctx context.Context, f *flight) (interface{}, error) {
	select {
	case <-f.done:
		return f.data, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek returns the cached value without fetching. ok is false when the
// entry is missing or holds no value yet; a stale value is still
// returned.
func (c *Cache) Peek(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.status != StatusSuccess {
		return nil, false
	}
	return e.data, true
}

// Status reports what the cache knows about key.
func (c *Cache) Status(key string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return StatusMissing
	}
	if e.flight != nil && e.status != StatusSuccess {
		return StatusPending
	}
	return e.status
}

// Invalidate marks every entry whose key starts with one of the given
// prefixes as stale. Values are kept so callers can render them until
// the next Query refetches; in-flight fetches for those keys resolve
// but land stale.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key, e := range c.entries {
		for _, prefix := range prefixes {
			if key == prefix || strings.HasPrefix(key, prefix+":") {
				e.stale = true
				e.gen++
				count++
				break
			}
		}
	}
	c.logger.Debug("invalidated cache entries", "prefixes", prefixes, "count", count)
}

// Clear drops every entry. In-flight fetches still resolve for their
// waiters but their results are discarded.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.gen++
	}
	c.entries = make(map[string]*entry)
	c.logger.Debug("cleared cache")
}

// Mutate runs a write against the backend and invalidates the given
// prefixes only when it succeeds. A failed mutation leaves the cache
// untouched.
func (c *Cache) Mutate(ctx context.Context, fn func(ctx context.Context) error, prefixes ...string) error {
	if err := fn(ctx); err != nil {
		return err
	}
	if len(prefixes) > 0 {
		c.Invalidate(prefixes...)
	}
	return nil
}

// Fetch is a typed wrapper around Cache.Query for callers that know the
// value type stored under key.
func Fetch[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	data, err := c.Query(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	value, ok := data.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return value, nil
}
