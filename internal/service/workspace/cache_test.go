package workspace

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/workspace"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTTL         = 60 * time.Second
	testLoadTimeout = 5 * time.Second
)

// countingLoader returns a new aggregate stamped with the call number.
func countingLoader(calls *atomic.Int32, clk clock.Clock) Loader {
	return func(ctx context.Context) (*workspace.Aggregate, error) {
		n := calls.Add(1)
		return &workspace.Aggregate{ComputedAt: clk.Now().Add(time.Duration(n) * time.Millisecond)}, nil
	}
}

func failingLoader(err error) Loader {
	return func(ctx context.Context) (*workspace.Aggregate, error) {
		return nil, err
	}
}

func TestCache_StartsEmpty(t *testing.T) {
	c := NewCache(testTTL, testLoadTimeout, clock.NewMockClock(base))
	assert.Equal(t, workspace.StateEmpty, c.State())
}

func TestCache_GetWithinTTLFetchesOnce(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)
	var calls atomic.Int32

	first, err := c.Get(context.Background(), false, countingLoader(&calls, clk))
	require.NoError(t, err)
	assert.Equal(t, workspace.StateFresh, c.State())

	clk.Add(testTTL - time.Millisecond)
	second, err := c.Get(context.Background(), false, countingLoader(&calls, clk))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_BecomesStaleAfterTTL(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)
	var calls atomic.Int32

	first, err := c.Get(context.Background(), false, countingLoader(&calls, clk))
	require.NoError(t, err)

	clk.Add(testTTL)
	assert.Equal(t, workspace.StateStale, c.State())

	second, err := c.Get(context.Background(), false, countingLoader(&calls, clk))
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, workspace.StateFresh, c.State())
}

func TestCache_ForceRefreshAlwaysFetches(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)
	var calls atomic.Int32

	_, err := c.Get(context.Background(), false, countingLoader(&calls, clk))
	require.NoError(t, err)
	_, err = c.Get(context.Background(), true, countingLoader(&calls, clk))
	require.NoError(t, err)
	_, err = c.Get(context.Background(), true, countingLoader(&calls, clk))
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
}

func TestCache_FailedRefreshKeepsLastGood(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)
	var calls atomic.Int32

	good, err := c.Get(context.Background(), false, countingLoader(&calls, clk))
	require.NoError(t, err)

	got, err := c.Get(context.Background(), true, failingLoader(apperror.ErrStoreUnavailable))
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	assert.Same(t, good, got, "failed refresh must hand back the last good aggregate")

	again, err := c.Get(context.Background(), false, countingLoader(&calls, clk))
	require.NoError(t, err)
	assert.Same(t, good, again)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_FailedFirstLoadStaysEmpty(t *testing.T) {
	c := NewCache(testTTL, testLoadTimeout, clock.NewMockClock(base))

	got, err := c.Get(context.Background(), false, failingLoader(apperror.ErrTimeout))
	assert.ErrorIs(t, err, apperror.ErrTimeout)
	assert.Nil(t, got)
	assert.Equal(t, workspace.StateEmpty, c.State())
}

func TestCache_InvalidateMarksStaleButKeepsValue(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)
	var calls atomic.Int32

	good, err := c.Get(context.Background(), false, countingLoader(&calls, clk))
	require.NoError(t, err)

	c.Invalidate()
	assert.Equal(t, workspace.StateStale, c.State())

	got, err := c.Get(context.Background(), false, failingLoader(apperror.ErrStoreUnavailable))
	assert.Error(t, err)
	assert.Same(t, good, got)
	assert.Equal(t, workspace.StateStale, c.State())
}

func TestCache_SupersededLoadIsDiscarded(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)

	older := &workspace.Aggregate{ComputedAt: base}
	newer := &workspace.Aggregate{ComputedAt: base.Add(time.Second)}

	started := make(chan struct{})
	cancelled := make(chan struct{})
	slowLoader := func(ctx context.Context) (*workspace.Aggregate, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		// finishes anyway; the result must not land in the cache
		return older, nil
	}

	type result struct {
		agg *workspace.Aggregate
		err error
	}
	firstDone := make(chan result, 1)
	go func() {
		agg, err := c.Get(context.Background(), true, slowLoader)
		firstDone <- result{agg, err}
	}()

	<-started
	got, err := c.Get(context.Background(), true, func(ctx context.Context) (*workspace.Aggregate, error) {
		return newer, nil
	})
	require.NoError(t, err)
	assert.Same(t, newer, got)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded load was not cancelled")
	}

	select {
	case r := <-firstDone:
		require.NoError(t, r.err)
		assert.Same(t, newer, r.agg, "superseded caller follows the newest load")
	case <-time.After(2 * time.Second):
		t.Fatal("superseded caller never returned")
	}

	cached, err := c.Get(context.Background(), false, failingLoader(errors.New("must not load")))
	require.NoError(t, err)
	assert.Same(t, newer, cached)
}

func TestCache_SupersededCallerGetsFailedRefreshWithoutRetrying(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context) (*workspace.Aggregate, error) {
		calls.Add(1)
		close(started)
		// ignores cancellation so it returns only after the forced load failed
		<-release
		return &workspace.Aggregate{ComputedAt: base}, nil
	}

	type result struct {
		agg *workspace.Aggregate
		err error
	}
	waiter := make(chan result, 1)
	go func() {
		agg, err := c.Get(context.Background(), false, slow)
		waiter <- result{agg, err}
	}()

	<-started
	storeDown := apperror.Wrap(apperror.ErrStoreUnavailable, "store down", nil)
	_, err := c.Get(context.Background(), true, func(ctx context.Context) (*workspace.Aggregate, error) {
		calls.Add(1)
		return nil, storeDown
	})
	require.ErrorIs(t, err, apperror.ErrStoreUnavailable)

	close(release)
	select {
	case r := <-waiter:
		assert.ErrorIs(t, r.err, apperror.ErrStoreUnavailable, "waiter receives the newest outcome")
		assert.Nil(t, r.agg)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded caller never returned")
	}

	assert.Equal(t, int32(2), calls.Load(), "no load is started on the waiter's behalf")
	assert.Equal(t, workspace.StateEmpty, c.State())
	_, loading := c.IdleSince()
	assert.False(t, loading)
}

func TestCache_ConcurrentGetsJoinOneLoad(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)

	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(ctx context.Context) (*workspace.Aggregate, error) {
		calls.Add(1)
		<-release
		return &workspace.Aggregate{ComputedAt: base}, nil
	}

	const callers = 5
	results := make(chan *workspace.Aggregate, callers)
	for i := 0; i < callers; i++ {
		go func() {
			agg, err := c.Get(context.Background(), false, loader)
			assert.NoError(t, err)
			results <- agg
		}()
	}

	require.Eventually(t, func() bool {
		_, loading := c.IdleSince()
		return loading && calls.Load() == 1
	}, time.Second, 5*time.Millisecond)
	close(release)

	first := <-results
	for i := 1; i < callers; i++ {
		assert.Same(t, first, <-results)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_CallerContextCancelDoesNotAbortLoad(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)

	release := make(chan struct{})
	done := &workspace.Aggregate{ComputedAt: base}
	loader := func(ctx context.Context) (*workspace.Aggregate, error) {
		<-release
		return done, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := c.Get(ctx, false, loader)
	assert.ErrorIs(t, err, apperror.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)

	close(release)
	require.Eventually(t, func() bool {
		return c.State() == workspace.StateFresh
	}, time.Second, 5*time.Millisecond)
}

func TestCache_LoadTimeoutMapsToTimeout(t *testing.T) {
	c := NewCache(testTTL, 20*time.Millisecond, clock.NewMockClock(base))

	got, err := c.Get(context.Background(), false, func(ctx context.Context) (*workspace.Aggregate, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperror.ErrTimeout)
}

func TestCache_InvalidateDuringLoadKeepsResultStale(t *testing.T) {
	clk := clock.NewMockClock(base)
	c := NewCache(testTTL, testLoadTimeout, clk)

	started := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context) (*workspace.Aggregate, error) {
		close(started)
		<-release
		return &workspace.Aggregate{ComputedAt: clk.Now()}, nil
	}

	result := make(chan error, 1)
	go func() {
		_, err := c.Get(context.Background(), false, slow)
		result <- err
	}()

	<-started
	c.Invalidate()
	close(release)
	require.NoError(t, <-result)

	assert.Equal(t, workspace.StateStale, c.State())
}
