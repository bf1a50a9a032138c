package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, time.July, 7, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func noSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

var testPolicy = Policy{
	Name:       "test",
	StaleTime:  time.Minute,
	EvictTime:  5 * time.Minute,
	RetryCount: 3,
	RetryBase:  time.Second,
	RetryCap:   30 * time.Second,
}

func newTestClient(t *testing.T, clock *fakeClock) *Client {
	t.Helper()
	c := NewClient(WithClock(clock.Now), WithSleep(noSleep), WithRegisterer(prometheus.NewRegistry()))
	t.Cleanup(c.Close)
	return c
}

func countingFetcher(calls *atomic.Int32, values ...string) Fetcher {
	return func(ctx context.Context) (any, error) {
		n := calls.Add(1)
		idx := int(n) - 1
		if idx >= len(values) {
			idx = len(values) - 1
		}
		return values[idx], nil
	}
}

func TestClient_FreshHitDoesNotFetch(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(t, clock)
	var calls atomic.Int32
	fetch := countingFetcher(&calls, "v1")

	v, err := c.Get(context.Background(), Key{"fab", "list"}, fetch, testPolicy)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	clock.Advance(30 * time.Second)
	v, err = c.Get(context.Background(), Key{"fab", "list"}, fetch, testPolicy)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Equal(t, int32(1), calls.Load())

	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.requests.WithLabelValues("test", "miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.requests.WithLabelValues("test", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.entries))
}

func TestClient_StaleWhileRevalidate(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(t, clock)
	var calls atomic.Int32
	fetch := countingFetcher(&calls, "v1", "v2")
	key := Key{"equipment-status", "current", "R3"}

	_, err := c.Get(context.Background(), key, fetch, testPolicy)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	v, err := c.Get(context.Background(), key, fetch, testPolicy)
	require.NoError(t, err)
	assert.Equal(t, "v1", v, "stale data is served immediately")

	assert.Eventually(t, func() bool {
		data, ok := c.Peek(key)
		return ok && data == "v2"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_CoalescesConcurrentRequests(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(t, clock)

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "directory", nil
	}

	const n = 20
	var started, done sync.WaitGroup
	results := make([]any, n)
	errs := make([]error, n)
	started.Add(n)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i], errs[i] = c.Get(context.Background(), Key{"fab", "list"}, fetch, testPolicy)
		}(i)
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "directory", results[i])
	}
}

func TestClient_RetryBound(t *testing.T) {
	clock := newFakeClock()

	var delays []time.Duration
	var mu sync.Mutex
	sleep := func(ctx context.Context, d time.Duration) error {
		mu.Lock()
		defer mu.Unlock()
		delays = append(delays, d)
		return nil
	}
	c := NewClient(WithClock(clock.Now), WithSleep(sleep))
	t.Cleanup(c.Close)

	upstreamErr := errors.New("connection refused")
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return nil, upstreamErr
	}

	key := Key{"tool-fab-mapping"}
	_, err := c.Get(context.Background(), key, fetch, testPolicy)
	require.Error(t, err)
	assert.ErrorIs(t, err, fab_errors.ErrFetchFailed)
	assert.ErrorIs(t, err, upstreamErr)

	assert.Equal(t, int32(4), calls.Load(), "1 initial attempt + 3 retries")
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, delays)

	_, ok := c.Peek(key)
	assert.False(t, ok, "failures are not cached")
	assert.Equal(t, 0, c.Len())
}

func TestClient_RetryThenSucceed(t *testing.T) {
	c := newTestClient(t, newFakeClock())

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("503")
		}
		return "ok", nil
	}

	v, err := c.Get(context.Background(), Key{"api", "health"}, fetch, testPolicy)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, float64(2), testutil.ToFloat64(c.metrics.attempts.WithLabelValues("test", "failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.attempts.WithLabelValues("test", "success")))
}

func TestClient_FailedRefetchKeepsCachedData(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(t, clock)

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return "good", nil
		}
		return nil, errors.New("upstream down")
	}
	key := Key{"equipment-status", "storage", "R3"}

	_, err := c.Get(context.Background(), key, fetch, testPolicy)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	v, err := c.Get(context.Background(), key, fetch, testPolicy)
	require.NoError(t, err)
	assert.Equal(t, "good", v)

	assert.Eventually(t, func() bool { return calls.Load() == 5 }, time.Second, 5*time.Millisecond)
	data, ok := c.Peek(key)
	assert.True(t, ok)
	assert.Equal(t, "good", data)
}

func TestClient_Sweep(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(t, clock)
	var calls atomic.Int32
	fetch := countingFetcher(&calls, "v")

	_, err := c.Get(context.Background(), Key{"a"}, fetch, testPolicy)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), Key{"b"}, fetch, testPolicy)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	_, err = c.Get(context.Background(), Key{"b"}, fetch, testPolicy) // keeps b alive
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, c.Sweep())
	_, ok := c.Peek(Key{"a"})
	assert.False(t, ok)
	_, ok = c.Peek(Key{"b"})
	assert.True(t, ok)
}

func TestClient_PurgeDoesNotCancelInFlightFetch(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(t, clock)

	release := make(chan struct{})
	entered := make(chan struct{})
	var fetchCtxErr atomic.Value
	fetch := func(ctx context.Context) (any, error) {
		close(entered)
		<-release
		fetchCtxErr.Store(ctx.Err() == nil)
		return "late", nil
	}

	key := Key{"recipe", "list", "R3", "CD-SEM"}
	type result struct {
		v   any
		err error
	}
	out := make(chan result, 1)
	go func() {
		v, err := c.Get(context.Background(), key, fetch, testPolicy)
		out <- result{v, err}
	}()

	<-entered
	clock.Advance(time.Hour)
	c.Sweep()
	c.Invalidate(Key{"recipe"})
	close(release)

	res := <-out
	require.NoError(t, res.err)
	assert.Equal(t, "late", res.v)
	assert.Equal(t, true, fetchCtxErr.Load())
}

func TestClient_CallerCancelDoesNotCancelSharedFetch(t *testing.T) {
	c := newTestClient(t, newFakeClock())

	release := make(chan struct{})
	entered := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		close(entered)
		<-release
		return "shared", nil
	}
	key := Key{"device-statistics", "all-data", "M16"}

	ctx, cancel := context.WithCancel(context.Background())
	cancelled := make(chan error, 1)
	go func() {
		_, err := c.Get(ctx, key, fetch, testPolicy)
		cancelled <- err
	}()
	<-entered

	patient := make(chan any, 1)
	go func() {
		v, _ := c.Get(context.Background(), key, fetch, testPolicy)
		patient <- v
	}()

	cancel()
	assert.ErrorIs(t, <-cancelled, context.Canceled)

	close(release)
	assert.Equal(t, "shared", <-patient)
}

func TestClient_AutoRefetchIsNotDuplicated(t *testing.T) {
	c := newTestClient(t, newFakeClock())

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return "first", nil
		}
		select {
		case <-release:
		case <-ctx.Done():
		}
		return "refreshed", nil
	}

	policy := testPolicy
	policy.RefetchInterval = 5 * time.Millisecond
	key := Key{"equipment-status", "current", "R3"}

	_, err := c.Get(context.Background(), key, fetch, policy)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load(), "ticks while a refresh is in flight join it")

	close(release)
	assert.Eventually(t, func() bool {
		data, _ := c.Peek(key)
		return data == "refreshed"
	}, time.Second, time.Millisecond)
}

func TestClient_AutoRefetchStopsWhenPurged(t *testing.T) {
	c := newTestClient(t, newFakeClock())

	var calls atomic.Int32
	fetch := countingFetcher(&calls, "v")
	policy := testPolicy
	policy.RefetchInterval = 5 * time.Millisecond
	key := Key{"equipment-status", "not-available", "M16"}

	_, err := c.Get(context.Background(), key, fetch, policy)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	c.Invalidate(key)
	// a refresh already in flight may still land once
	time.Sleep(20 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), settled+1)
}

func TestClient_Closed(t *testing.T) {
	c := NewClient()
	c.Close()

	_, err := c.Get(context.Background(), Key{"fab", "list"}, func(ctx context.Context) (any, error) {
		return "x", nil
	}, testPolicy)
	assert.ErrorIs(t, err, fab_errors.ErrCacheClosed)
}

func TestFetch_Typed(t *testing.T) {
	c := newTestClient(t, newFakeClock())

	dir, err := Fetch(context.Background(), c, DirectoryKey(), testPolicy, func(ctx context.Context) (map[string][]string, error) {
		return map[string][]string{"R3": {"CD-SEM"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"CD-SEM"}, dir["R3"])

	_, err = Fetch(context.Background(), c, DirectoryKey(), testPolicy, func(ctx context.Context) (string, error) {
		return "wrong", nil
	})
	assert.Error(t, err, "a cached value of another type is reported")
}

func TestClient_Lookup(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(t, clock)
	var calls atomic.Int32
	fetch := countingFetcher(&calls, "v1", "v2")
	key := Key{"fab", "list"}

	_, ok := c.Lookup(key, fetch, testPolicy)
	assert.False(t, ok)
	assert.Equal(t, int32(0), calls.Load(), "a miss never fetches")

	_, err := c.Get(context.Background(), key, fetch, testPolicy)
	require.NoError(t, err)

	// reads keep the entry alive past its eviction horizon
	clock.Advance(4 * time.Minute)
	v, ok := c.Lookup(key, fetch, testPolicy)
	require.True(t, ok)
	assert.Equal(t, "v1", v)
	clock.Advance(4 * time.Minute)
	assert.Equal(t, 0, c.Sweep())

	assert.Eventually(t, func() bool {
		data, ok := c.Peek(key)
		return ok && data == "v2"
	}, time.Second, 5*time.Millisecond, "stale lookup refetches in the background")
}

func TestClient_MissJoiningRefreshIsCached(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(t, clock)
	key := Key{"equipment-status", "storage", "R3"}

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		n := calls.Add(1)
		if n == 2 {
			<-release
		}
		return n, nil
	}

	_, err := c.Get(context.Background(), key, fetch, testPolicy)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = c.Get(context.Background(), key, fetch, testPolicy)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	clock.Advance(time.Hour)
	require.Equal(t, 1, c.Sweep())

	out := make(chan error, 1)
	go func() {
		_, err := c.Get(context.Background(), key, fetch, testPolicy)
		out <- err
	}()
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(c.metrics.requests.WithLabelValues("test", "miss")) == 2
	}, time.Second, 5*time.Millisecond)
	close(release)
	require.NoError(t, <-out)

	_, ok := c.Peek(key)
	assert.True(t, ok, "the miss caches the shared result")

	before := calls.Load()
	_, err = c.Get(context.Background(), key, fetch, testPolicy)
	require.NoError(t, err)
	assert.Equal(t, before, calls.Load())
}
