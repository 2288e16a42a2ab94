package catalogcache

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"coverfinder/internal/services"
)

// ErrFetchPanic marks a fetch that panicked. Waiters sharing the fetch receive
// it as an ordinary error.
var ErrFetchPanic = errors.New("fetch panicked")

// FetchFunc loads the value for a key on a cache miss.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// Stats summarizes memo activity.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Shared  int64 `json:"shared"`
	Evicted int64 `json:"evicted"`
	Size    int   `json:"size"`
}

// Memo is a concurrency-safe key/value memo with request coalescing.
type Memo[V any] struct {
	name string

	mu sync.Mutex
	// bounded is set when the memo has an entry limit; entries is used otherwise.
	bounded    *lru.Cache[string, V]
	entries    map[string]V
	generation uint64

	group singleflight.Group

	hits    atomic.Int64
	misses  atomic.Int64
	shared  atomic.Int64
	evicted atomic.Int64
}

// NewMemo constructs an empty memo. maxEntries <= 0 means unbounded; otherwise
// the least recently used entry is evicted once the limit is exceeded.
func NewMemo[V any](name string, maxEntries int) *Memo[V] {
	m := &Memo[V]{name: name}
	if maxEntries > 0 {
		// lru.New only fails for a non-positive size.
		m.bounded, _ = lru.New[string, V](maxEntries)
	} else {
		m.entries = make(map[string]V)
	}
	return m
}

// Name returns the label used in logs and stats.
func (m *Memo[V]) Name() string {
	return m.name
}

// Get returns the cached value for key.
func (m *Memo[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bounded != nil {
		return m.bounded.Get(key)
	}
	value, ok := m.entries[key]
	return value, ok
}

// Put stores value under key unconditionally.
func (m *Memo[V]) Put(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeLocked(key, value)
}

// GetOrFetch returns the cached value for key or runs fetch to obtain it.
// Successful results are stored, including nil "not found" values; errors are
// returned to the caller and nothing is stored. A panicking fetch is reported
// as ErrFetchPanic. Callers that share an in-flight fetch each wait on their
// own context.
func (m *Memo[V]) GetOrFetch(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	var zero V
	for {
		if value, ok := m.Get(key); ok {
			m.hits.Add(1)
			return value, nil
		}
		if err := ctx.Err(); err != nil {
			return zero, services.Cancelled(m.name, "fetch", err)
		}
		m.misses.Add(1)

		m.mu.Lock()
		gen := m.generation
		m.mu.Unlock()

		ch := m.group.DoChan(key, func() (result any, err error) {
			// DoChan re-panics on a fresh goroutine where nothing can recover.
			defer func() {
				if r := recover(); r != nil {
					result, err = zero, fmt.Errorf("%w: %s %q: %v\n%s", ErrFetchPanic, m.name, key, r, debug.Stack())
				}
			}()
			value, err := fetch(ctx)
			if err != nil {
				return value, err
			}
			m.storeIfGeneration(key, value, gen)
			return value, nil
		})

		select {
		case <-ctx.Done():
			return zero, services.Cancelled(m.name, "fetch", ctx.Err())
		case res := <-ch:
			if res.Shared {
				m.shared.Add(1)
			}
			if res.Err != nil {
				// The leader's context was cancelled but ours is still live.
				if res.Shared && services.IsCancelled(res.Err) && ctx.Err() == nil {
					continue
				}
				return zero, res.Err
			}
			value, _ := res.Val.(V)
			return value, nil
		}
	}
}

// Clear removes every entry. Fetches already in flight complete normally but
// their results are not stored.
func (m *Memo[V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bounded != nil {
		m.bounded.Purge()
	} else {
		clear(m.entries)
	}
	m.generation++
}

// Len returns the number of cached entries.
func (m *Memo[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bounded != nil {
		return m.bounded.Len()
	}
	return len(m.entries)
}

// Stats returns a snapshot of memo counters.
func (m *Memo[V]) Stats() Stats {
	return Stats{
		Hits:    m.hits.Load(),
		Misses:  m.misses.Load(),
		Shared:  m.shared.Load(),
		Evicted: m.evicted.Load(),
		Size:    m.Len(),
	}
}

func (m *Memo[V]) storeIfGeneration(key string, value V, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		return
	}
	m.storeLocked(key, value)
}

func (m *Memo[V]) storeLocked(key string, value V) {
	if m.bounded == nil {
		m.entries[key] = value
		return
	}
	if evicted := m.bounded.Add(key, value); evicted {
		m.evicted.Add(1)
	}
}
