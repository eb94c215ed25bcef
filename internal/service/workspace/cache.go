package workspace

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/workspace"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/clock"
)

// Loader computes a fresh aggregate. It must not touch the cache.
type Loader func(ctx context.Context) (*workspace.Aggregate, error)

// flight is one load in progress. agg and err are set before done is closed.
type flight struct {
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
	agg        *workspace.Aggregate
	err        error
	// invalidated is set when the directory changed while the load was running
	invalidated bool
	// next is the load that superseded this one
	next *flight
}

// Cache holds the last good aggregate of one identity.
//
// A cached aggregate younger than the TTL is served as is. Otherwise, or when a
// refresh is forced, a load is started. Only the most recently started load may
// commit: starting a forced load cancels the one in progress, whose callers then
// receive the outcome of the newer load. A failed load never discards the last
// good aggregate, and is never retried on the caller's behalf.
type Cache struct {
	ttl         time.Duration
	loadTimeout time.Duration
	clock       clock.Clock

	mu          sync.Mutex
	aggregate   *workspace.Aggregate
	loadedAt    time.Time
	invalidated bool
	generation  uint64
	inFlight    *flight
	lastAccess  time.Time
}

func NewCache(ttl, loadTimeout time.Duration, clk clock.Clock) *Cache {
	return &Cache{
		ttl:         ttl,
		loadTimeout: loadTimeout,
		clock:       clk,
		lastAccess:  clk.Now(),
	}
}

// State is evaluated lazily against the clock.
func (c *Cache) State() workspace.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked(c.clock.Now())
}

func (c *Cache) stateLocked(now time.Time) workspace.State {
	switch {
	case c.aggregate == nil:
		return workspace.StateEmpty
	case c.invalidated || now.Sub(c.loadedAt) >= c.ttl:
		return workspace.StateStale
	default:
		return workspace.StateFresh
	}
}

// Get returns the cached aggregate while it is fresh, unless forceRefresh is set.
// Otherwise it waits for a load to finish. Loads already running are joined
// unless forceRefresh is set, in which case they are superseded.
//
// On a failed load Get returns the last good aggregate (nil if there never was
// one) together with the error.
func (c *Cache) Get(ctx context.Context, forceRefresh bool, load Loader) (*workspace.Aggregate, error) {
	c.mu.Lock()
	now := c.clock.Now()
	c.lastAccess = now

	if !forceRefresh && c.stateLocked(now) == workspace.StateFresh {
		agg := c.aggregate
		c.mu.Unlock()
		return agg, nil
	}

	f := c.inFlight
	if f == nil || forceRefresh {
		f = c.startLocked(load)
	}
	c.mu.Unlock()

	agg, err := c.wait(ctx, f)
	for errors.Is(err, apperror.ErrSuperseded) {
		c.mu.Lock()
		f = f.next
		c.mu.Unlock()
		agg, err = c.wait(ctx, f)
	}
	return agg, err
}

// Invalidate marks the cached aggregate stale; it stays available as the last good value.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = true
	if c.inFlight != nil {
		c.inFlight.invalidated = true
	}
}

// IdleSince reports when the cache was last read, and whether a load is running.
func (c *Cache) IdleSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAccess, c.inFlight != nil
}

func (c *Cache) startLocked(load Loader) *flight {
	prev := c.inFlight

	c.generation++
	loadCtx, cancel := context.WithTimeout(context.Background(), c.loadTimeout)
	f := &flight{
		generation: c.generation,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	c.inFlight = f
	if prev != nil {
		prev.next = f
		prev.cancel()
	}

	go c.run(loadCtx, f, load)
	return f
}

func (c *Cache) run(ctx context.Context, f *flight, load Loader) {
	agg, err := load(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, apperror.ErrTimeout) {
		err = apperror.Wrap(apperror.ErrTimeout, "workspace load timed out", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(f.done)
	f.cancel()

	if f.generation != c.generation {
		slog.Debug("discarding superseded workspace load", "generation", f.generation, "latest", c.generation)
		f.err = apperror.ErrSuperseded
		return
	}
	c.inFlight = nil

	if err != nil {
		f.agg, f.err = c.aggregate, err
		return
	}

	c.aggregate = agg
	c.loadedAt = c.clock.Now()
	c.invalidated = f.invalidated
	f.agg = agg
}

func (c *Cache) wait(ctx context.Context, f *flight) (*workspace.Aggregate, error) {
	select {
	case <-f.done:
		return f.agg, f.err
	case <-ctx.Done():
		var err error
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = apperror.Wrap(apperror.ErrTimeout, "workspace request timed out", ctx.Err())
		} else {
			err = apperror.Wrap(apperror.ErrCanceled, "workspace request canceled", ctx.Err())
		}
		c.mu.Lock()
		last := c.aggregate
		c.mu.Unlock()
		return last, err
	}
}
