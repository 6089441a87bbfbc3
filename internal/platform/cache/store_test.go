package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "roster", "value")
	got, ok := store.Get(ctx, "roster")
	if !ok || got != "value" {
		t.Fatalf("expected cached value, got=%v ok=%v", got, ok)
	}

	store.Delete(ctx, "roster")
	if _, ok := store.Get(ctx, "roster"); ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestStore_ExpiredEntryIsMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	store.SetWithTTL(ctx, "stats", 42, time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := store.Get(ctx, "stats"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	var loads atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		<-release
		return "loaded", nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(ctx, "shared", loader)
			if err != nil {
				t.Errorf("GetOrLoad: %v", err)
				return
			}
			results[i] = v
		}()
	}

	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected exactly one load, got %d", got)
	}
	for i, v := range results {
		if v != "loaded" {
			t.Fatalf("caller %d got %v", i, v)
		}
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, fmt.Errorf("upstream down")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(ctx, "k", loader); err == nil {
		t.Fatal("expected first load to fail")
	}
	got, err := store.GetOrLoad(ctx, "k", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got != "ok" {
		t.Fatalf("expected reload after error, got %v", got)
	}
}
