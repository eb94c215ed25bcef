package workspace

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/clock"
)

// Registry keeps one Cache per identity uid.
type Registry struct {
	ttl         time.Duration
	loadTimeout time.Duration
	clock       clock.Clock

	mu     sync.Mutex
	caches map[string]*Cache
}

func NewRegistry(ttl, loadTimeout time.Duration, clk clock.Clock) *Registry {
	return &Registry{
		ttl:         ttl,
		loadTimeout: loadTimeout,
		clock:       clk,
		caches:      make(map[string]*Cache),
	}
}

// For returns the cache of uid, creating an empty one on first use.
func (r *Registry) For(uid string) *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.caches[uid]
	if !ok {
		c = NewCache(r.ttl, r.loadTimeout, r.clock)
		r.caches[uid] = c
	}
	return c
}

// InvalidateAll marks every cache stale.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.caches {
		c.Invalidate()
	}
}

// EvictIdle drops caches not read for maxIdle and not loading. It returns how many were dropped.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	evicted := 0
	for uid, c := range r.caches {
		lastAccess, loading := c.IdleSince()
		if !loading && now.Sub(lastAccess) >= maxIdle {
			delete(r.caches, uid)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of cached identities
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.caches)
}
