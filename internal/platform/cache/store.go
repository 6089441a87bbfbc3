package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mlahargou/fantasy-playoffs/internal/platform/resilience"
)

type item struct {
	value     any
	expiresAt time.Time
}

// Store is a process-lifetime TTL cache. It is injected into the
// components that need it rather than held as package state so tests
// can substitute a deterministic instance and so the concurrent-access
// discipline stays explicit: many readers, one loader per key.
type Store struct {
	mu         sync.RWMutex
	items      map[string]item
	defaultTTL time.Duration
	flight     resilience.SingleFlight
}

// NewStore builds a store whose Set entries expire after defaultTTL.
// A non-positive defaultTTL means entries never expire.
func NewStore(defaultTTL time.Duration) *Store {
	return &Store{
		items:      make(map[string]item),
		defaultTTL: defaultTTL,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !it.expiresAt.IsZero() && !it.expiresAt.After(time.Now()) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, false
	}

	return it.value, true
}

func (s *Store) Set(ctx context.Context, key string, value any) {
	s.SetWithTTL(ctx, key, value, s.defaultTTL)
}

// SetWithTTL stores a value with an explicit lifetime, overriding the
// store default. ttl <= 0 keeps the value until deleted.
func (s *Store) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.items[key] = item{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key or runs loader to fill
// it. Concurrent misses for the same key share one loader call; only
// one fetch per key is ever in flight.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// Re-check under the flight: a concurrent loader may have
		// filled the key while this caller waited for the lock.
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
