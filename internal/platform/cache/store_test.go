package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "report:summary:1:5", 1)
	store.Set(ctx, "report:summary:all:5", 2)
	store.Set(ctx, "game:list", 3)

	store.DeletePrefix(ctx, "report:")

	if _, ok := store.Get(ctx, "report:summary:1:5"); ok {
		t.Fatalf("expected report entry to be evicted")
	}
	if _, ok := store.Get(ctx, "game:list"); !ok {
		t.Fatalf("expected unrelated entry to survive")
	}
}

func TestStore_GetOrLoad_InvalidationDuringLoadIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	loaded, err := store.GetOrLoad(ctx, "report:plays:all", func(context.Context) (any, error) {
		// An ingestion commits while the stale read is in flight.
		store.DeletePrefix(ctx, "report:")
		return 10, nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}
	if loaded != 10 {
		t.Fatalf("expected loader result to be returned, got %v", loaded)
	}
	if _, ok := store.Get(ctx, "report:plays:all"); ok {
		t.Fatalf("expected stale load not to be cached")
	}
}
