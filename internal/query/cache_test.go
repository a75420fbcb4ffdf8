package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCacheQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("caches the fetched value", func(t *testing.T) {
		c := NewCache(nil)
		var calls int32

		fetch := func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&calls, 1)
			return "value", nil
		}

		for i := 0; i < 3; i++ {
			got, err := c.Query(ctx, "k", fetch)
			if err != nil {
				t.Fatalf("Query returned error: %v", err)
			}
			if got != "value" {
				t.Fatalf("Query returned %v, want value", got)
			}
		}
		if calls != 1 {
			t.Errorf("fetch called %d times, want 1", calls)
		}
		if got := c.Status("k"); got != StatusSuccess {
			t.Errorf("Status = %v, want StatusSuccess", got)
		}
	})

	t.Run("concurrent callers share one fetch", func(t *testing.T) {
		c := NewCache(nil)
		var calls int32
		started := make(chan struct{})
		release := make(chan struct{})

		fetch := func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&calls, 1)
			close(started)
			<-release
			return 42, nil
		}

		var wg sync.WaitGroup
		results := make([]interface{}, 5)
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[0], _ = c.Query(ctx, "k", fetch)
		}()
		<-started

		for i := 1; i < 5; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = c.Query(ctx, "k", func(ctx context.Context) (interface{}, error) {
					t.Error("second fetch started while one was in flight")
					return nil, nil
				})
			}(i)
		}

		close(release)
		wg.Wait()

		if calls != 1 {
			t.Errorf("fetch called %d times, want 1", calls)
		}
		for i, r := range results {
			if r != 42 {
				t.Errorf("caller %d got %v, want 42", i, r)
			}
		}
	})

	t.Run("failed fetch is retried", func(t *testing.T) {
		c := NewCache(nil)
		calls := 0
		boom := errors.New("boom")

		fetch := func(ctx context.Context) (interface{}, error) {
			calls++
			if calls == 1 {
				return nil, boom
			}
			return "ok", nil
		}

		if _, err := c.Query(ctx, "k", fetch); !errors.Is(err, boom) {
			t.Fatalf("first Query error = %v, want boom", err)
		}
		if got := c.Status("k"); got != StatusError {
			t.Errorf("Status after failure = %v, want StatusError", got)
		}

		got, err := c.Query(ctx, "k", fetch)
		if err != nil {
			t.Fatalf("second Query returned error: %v", err)
		}
		if got != "ok" {
			t.Errorf("second Query returned %v, want ok", got)
		}
	})
}

func TestCacheInvalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("stale entries are refetched", func(t *testing.T) {
		c := NewCache(nil)
		calls := 0
		fetch := func(ctx context.Context) (interface{}, error) {
			calls++
			return calls, nil
		}

		c.Query(ctx, "albums:page:1", fetch)
		c.Invalidate(PrefixAlbums)

		got, err := c.Query(ctx, "albums:page:1", fetch)
		if err != nil {
			t.Fatalf("Query returned error: %v", err)
		}
		if got != 2 {
			t.Errorf("Query after invalidate returned %v, want 2", got)
		}
	})

	t.Run("prefix matching is segment aware", func(t *testing.T) {
		c := NewCache(nil)
		calls := map[string]int{}
		fetchFor := func(key string) FetchFunc {
			return func(ctx context.Context) (interface{}, error) {
				calls[key]++
				return calls[key], nil
			}
		}

		c.Query(ctx, "albums:page:1", fetchFor("albums:page:1"))
		c.Query(ctx, "albumsextra", fetchFor("albumsextra"))

		c.Invalidate(PrefixAlbums)

		c.Query(ctx, "albums:page:1", fetchFor("albums:page:1"))
		c.Query(ctx, "albumsextra", fetchFor("albumsextra"))

		if calls["albums:page:1"] != 2 {
			t.Errorf("albums:page:1 fetched %d times, want 2", calls["albums:page:1"])
		}
		if calls["albumsextra"] != 1 {
			t.Errorf("albumsextra fetched %d times, want 1", calls["albumsextra"])
		}
	})

	t.Run("stale value stays readable until refetch", func(t *testing.T) {
		c := NewCache(nil)
		c.Query(ctx, "k", func(ctx context.Context) (interface{}, error) {
			return "old", nil
		})
		c.Invalidate("k")

		got, ok := c.Peek("k")
		if !ok || got != "old" {
			t.Errorf("Peek after invalidate = %v %v, want old true", got, ok)
		}
	})

	t.Run("fetch in flight during invalidation lands stale", func(t *testing.T) {
		c := NewCache(nil)
		calls := 0
		started := make(chan struct{})
		release := make(chan struct{})

		done := make(chan interface{}, 1)
		go func() {
			got, _ := c.Query(ctx, "k", func(ctx context.Context) (interface{}, error) {
				calls++
				close(started)
				<-release
				return "first", nil
			})
			done <- got
		}()

		<-started
		c.Invalidate("k")
		close(release)

		if got := <-done; got != "first" {
			t.Fatalf("in-flight Query returned %v, want first", got)
		}

		// The delivered value was already stale, so the next Query
		// refetches.
		got, _ := c.Query(ctx, "k", func(ctx context.Context) (interface{}, error) {
			calls++
			return "second", nil
		})
		if got != "second" {
			t.Errorf("Query after stale delivery returned %v, want second", got)
		}
		if calls != 2 {
			t.Errorf("fetch called %d times, want 2", calls)
		}
	})
}

func TestCacheMutate(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates the given prefixes", func(t *testing.T) {
		c := NewCache(nil)
		calls := 0
		fetch := func(ctx context.Context) (interface{}, error) {
			calls++
			return calls, nil
		}

		c.Query(ctx, "albums:page:1", fetch)

		err := c.Mutate(ctx, func(ctx context.Context) error {
			return nil
		}, PrefixAlbums)
		if err != nil {
			t.Fatalf("Mutate returned error: %v", err)
		}

		c.Query(ctx, "albums:page:1", fetch)
		if calls != 2 {
			t.Errorf("fetch called %d times, want 2", calls)
		}
	})

	t.Run("failure leaves the cache untouched", func(t *testing.T) {
		c := NewCache(nil)
		calls := 0
		fetch := func(ctx context.Context) (interface{}, error) {
			calls++
			return calls, nil
		}
		boom := errors.New("boom")

		c.Query(ctx, "albums:page:1", fetch)

		if err := c.Mutate(ctx, func(ctx context.Context) error {
			return boom
		}, PrefixAlbums); !errors.Is(err, boom) {
			t.Fatalf("Mutate error = %v, want boom", err)
		}

		c.Query(ctx, "albums:page:1", fetch)
		if calls != 1 {
			t.Errorf("fetch called %d times, want 1", calls)
		}
	})
}

func TestFetchTyped(t *testing.T) {
	ctx := context.Background()
	c := NewCache(nil)

	got, err := Fetch(ctx, c, "k", func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("Fetch returned %v", got)
	}
}

func TestKey(t *testing.T) {
	if got := Key(PrefixAlbums, "page", "3"); got != "albums:page:3" {
		t.Errorf("Key = %q, want albums:page:3", got)
	}
}
