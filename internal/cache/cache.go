package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/civictally/legiscore/internal/monitoring"
)

// Status describes how a lookup was satisfied
type Status string

const (
	StatusHit   Status = "HIT"
	StatusMiss  Status = "MISS"
	StatusStale Status = "STALE"
	StatusError Status = "ERROR"
)

// FetchFunc produces a fresh value for a cache key
type FetchFunc func(ctx context.Context) (interface{}, error)

// Result is the outcome of GetOrFetch. IsStale is true when the value is
// past its TTL but still within the stale grace window, or when a failed
// refresh fell back to the last known value.
type Result struct {
	Data    interface{}
	Status  Status
	IsStale bool
	Age     time.Duration
}

type entry struct {
	data      interface{}
	storedAt  time.Time
	expiresAt time.Time
}

func (e *entry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Store is a thread-safe in-memory cache with TTL and
// stale-while-revalidate semantics. Expired entries within the grace window
// are served immediately while a single background refresh runs.
type Store struct {
	mu         sync.RWMutex
	items      map[string]*entry
	staleGrace time.Duration
	refreshing map[string]bool
	metrics    *monitoring.Metrics
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewStore creates a cache store. Entries older than ttl+staleGrace are
// treated as absent. A nil metrics instance disables counters.
func NewStore(staleGrace time.Duration, metrics *monitoring.Metrics) *Store {
	store := &Store{
		items:      make(map[string]*entry),
		staleGrace: staleGrace,
		refreshing: make(map[string]bool),
		metrics:    metrics,
		stop:       make(chan struct{}),
	}

	go store.cleanup()

	return store
}

// cleanup removes entries past their grace window periodically
func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, item := range s.items {
				if now.After(item.expiresAt.Add(s.staleGrace)) {
					delete(s.items, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// GetOrFetch returns the cached value for key or produces one with fetch.
//
// Fresh entries are returned as HIT without calling fetch. Entries expired
// but within the grace window are returned as STALE and refreshed in the
// background. Missing or fully expired entries call fetch synchronously;
// if that fails while a stale value exists, the stale value is served with
// status ERROR instead of failing the request.
func (s *Store) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (*Result, error) {
	now := time.Now()

	s.mu.RLock()
	item, exists := s.items[key]
	s.mu.RUnlock()

	if exists && !item.isExpired(now) {
		s.incrementHit()
		return &Result{
			Data:   item.data,
			Status: StatusHit,
			Age:    now.Sub(item.storedAt),
		}, nil
	}

	if exists && now.Before(item.expiresAt.Add(s.staleGrace)) {
		s.incrementStale()
		s.refreshAsync(key, ttl, fetch)
		return &Result{
			Data:    item.data,
			Status:  StatusStale,
			IsStale: true,
			Age:     now.Sub(item.storedAt),
		}, nil
	}

	s.incrementMiss()

	data, err := fetch(ctx)
	if err != nil {
		if exists {
			// Upstream is down but we still hold the last known value
			return &Result{
				Data:    item.data,
				Status:  StatusError,
				IsStale: true,
				Age:     now.Sub(item.storedAt),
			}, nil
		}
		return nil, err
	}

	s.set(key, data, ttl)

	return &Result{
		Data:   data,
		Status: StatusMiss,
	}, nil
}

// refreshAsync starts a background refresh for key unless one is already
// running. The refresh uses its own timeout, detached from the request.
func (s *Store) refreshAsync(key string, ttl time.Duration, fetch FetchFunc) {
	s.mu.Lock()
	if s.refreshing[key] {
		s.mu.Unlock()
		return
	}
	s.refreshing[key] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.refreshing, key)
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, err := fetch(ctx)
		if err != nil {
			slog.Warn("Background cache refresh failed", "key", key, "error", err)
			return
		}

		s.set(key, data, ttl)
		slog.Debug("Background cache refresh completed", "key", key)
	}()
}

func (s *Store) set(key string, data interface{}, ttl time.Duration) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = &entry{
		data:      data,
		storedAt:  now,
		expiresAt: now.Add(ttl),
	}
}

// Set stores a value directly, bypassing fetch
func (s *Store) Set(key string, data interface{}, ttl time.Duration) {
	s.set(key, data, ttl)
}

// Delete removes an entry
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
}

// Clear removes all entries
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*entry)
}

// Size returns the number of entries, including expired ones not yet swept
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Stats returns cache statistics
func (s *Store) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	expired := 0
	for _, item := range s.items {
		if item.isExpired(now) {
			expired++
		}
	}

	return map[string]interface{}{
		"total_items":         len(s.items),
		"expired_items":       expired,
		"active_items":        len(s.items) - expired,
		"stale_grace_seconds": s.staleGrace.Seconds(),
	}
}

// Close stops the cleanup goroutine
func (s *Store) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *Store) incrementHit() {
	if s.metrics != nil {
		s.metrics.IncrementCacheHit()
	}
}

func (s *Store) incrementMiss() {
	if s.metrics != nil {
		s.metrics.IncrementCacheMiss()
	}
}

func (s *Store) incrementStale() {
	if s.metrics != nil {
		s.metrics.IncrementCacheStale()
	}
}
