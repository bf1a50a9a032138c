// query/client.go
package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	logger "github.com/dev-mohitbeniwal/fabdash/logging"
)

// Fetcher loads the value of one key from its source.
type Fetcher func(ctx context.Context) (any, error)

type entry struct {
	key       Key
	data      any
	fetchedAt time.Time
	lastRead  time.Time
	policy    Policy
	fetcher   Fetcher
	stop      chan struct{} // non-nil while an auto refetch loop runs
}

// Client memoizes fetch results per key. At most one fetch per key is in
// flight at any time; concurrent callers share its result.
type Client struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	now           func() time.Time
	sleep         func(ctx context.Context, d time.Duration) error
	registerer    prometheus.Registerer
	sweepInterval time.Duration
	metrics       *metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Client)

// WithClock replaces time.Now for staleness and eviction decisions.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithSleep replaces the wait between retries.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// WithRegisterer registers the cache metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = reg
	}
}

// WithSweepInterval sets how often the janitor started by Start purges entries.
func WithSweepInterval(d time.Duration) Option {
	return func(c *Client) {
		c.sweepInterval = d
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		entries:       make(map[string]*entry),
		now:           time.Now,
		sleep:         sleepContext,
		sweepInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics = newMetrics(c.registerer)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// Get returns the value of key. Fresh entries are served from memory, stale
// entries are served from memory while a background refetch runs, and misses
// wait for a fetch shared with every other caller of the same key.
func (c *Client) Get(ctx context.Context, key Key, fetcher Fetcher, policy Policy) (any, error) {
	data, ok, err := c.cached(key, fetcher, policy)
	if err != nil {
		return nil, err
	}
	if ok {
		return data, nil
	}

	c.metrics.requests.WithLabelValues(resourceLabel(key, policy), "miss").Inc()
	ch := c.group.DoChan(key.String(), func() (any, error) {
		return c.fetch(key, fetcher, policy, true)
	})
	select {
	case res := <-ch:
		if res.Err == nil && res.Shared {
			// The miss may have joined a background refresh, which does not
			// recreate a purged entry.
			c.adopt(key, res.Val, fetcher, policy)
		}
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Lookup returns the cached value of key and counts as a read, like Get, but
// never fetches on a miss. A stale value schedules a background refetch.
func (c *Client) Lookup(key Key, fetcher Fetcher, policy Policy) (any, bool) {
	data, ok, err := c.cached(key, fetcher, policy)
	if err != nil {
		return nil, false
	}
	return data, ok
}

func (c *Client) cached(key Key, fetcher Fetcher, policy Policy) (any, bool, error) {
	resource := resourceLabel(key, policy)

	c.mu.Lock()
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return nil, false, fab_errors.ErrCacheClosed
	}
	e, ok := c.entries[key.String()]
	if !ok {
		c.mu.Unlock()
		return nil, false, nil
	}
	now := c.now()
	e.lastRead = now
	data := e.data
	stale := now.Sub(e.fetchedAt) >= policy.StaleTime
	c.mu.Unlock()

	if !stale {
		c.metrics.requests.WithLabelValues(resource, "hit").Inc()
		return data, true, nil
	}
	c.metrics.requests.WithLabelValues(resource, "stale").Inc()
	c.refresh(key, fetcher, policy)
	return data, true, nil
}

// Fetch is the typed form of Client.Get.
func Fetch[T any](ctx context.Context, c *Client, key Key, policy Policy, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return data, nil
	}, policy)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached value for %s has type %T", key, v)
	}
	return out, nil
}

// Peek returns the cached value of key without fetching or counting as a read.
func (c *Client) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	return e.data, true
}

// Invalidate drops every entry whose key starts with prefix and returns how many went.
func (c *Client) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			c.removeLocked(id, e)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("Query cache invalidated", zap.String("prefix", prefix.String()), zap.Int("removed", removed))
	}
	return removed
}

// Sweep purges entries that have not been read within their eviction horizon.
// In-flight fetches for purged keys keep running.
func (c *Client) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	purged := 0
	for id, e := range c.entries {
		if e.policy.EvictTime <= 0 {
			continue
		}
		if now.Sub(e.lastRead) > e.policy.EvictTime {
			c.removeLocked(id, e)
			purged++
		}
	}
	if purged > 0 {
		logger.Debug("Query cache swept", zap.Int("purged", purged))
	}
	return purged
}

// Len returns the number of cached entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Start runs the eviction janitor until ctx is done or the client is closed.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Sweep()
			case <-ctx.Done():
				return
			case <-c.ctx.Done():
				return
			}
		}
	}()
}

// Close stops background refetches and the janitor and waits for them.
func (c *Client) Close() {
	c.mu.Lock()
	c.cancel()
	for _, e := range c.entries {
		if e.stop != nil {
			close(e.stop)
			e.stop = nil
		}
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// refresh triggers a fetch without waiting for it. It joins the in-flight
// fetch of key when there is one.
func (c *Client) refresh(key Key, fetcher Fetcher, policy Policy) {
	c.mu.Lock()
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	ch := c.group.DoChan(key.String(), func() (any, error) {
		return c.fetch(key, fetcher, policy, false)
	})
	go func() {
		defer c.wg.Done()
		res := <-ch
		if res.Err != nil {
			logger.Warn("Background refetch failed, keeping cached data",
				zap.String("key", key.String()),
				zap.Error(res.Err))
		}
	}()
}

// fetch runs on the client context so a caller giving up does not cancel a
// result other callers are waiting for. Background refreshes pass create=false
// so a purged entry is not brought back by a refresh that was already running.
func (c *Client) fetch(key Key, fetcher Fetcher, policy Policy, create bool) (any, error) {
	resource := resourceLabel(key, policy)

	var lastErr error
	for attempt := 0; ; attempt++ {
		data, err := fetcher(c.ctx)
		if err == nil {
			c.metrics.attempts.WithLabelValues(resource, "success").Inc()
			c.store(key, data, fetcher, policy, create)
			return data, nil
		}
		lastErr = err
		c.metrics.attempts.WithLabelValues(resource, "failure").Inc()

		if attempt >= policy.RetryCount {
			break
		}
		delay := policy.RetryDelay(attempt)
		logger.Debug("Fetch failed, retrying",
			zap.String("key", key.String()),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err))
		if err := c.sleep(c.ctx, delay); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", fab_errors.ErrFetchFailed, key, err)
		}
	}

	logger.Error("Fetch failed after retries",
		zap.String("key", key.String()),
		zap.Int("attempts", policy.RetryCount+1),
		zap.Error(lastErr))
	return nil, fmt.Errorf("%w: %s after %d attempts: %w", fab_errors.ErrFetchFailed, key, policy.RetryCount+1, lastErr)
}

func (c *Client) store(key Key, data any, fetcher Fetcher, policy Policy, create bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ctx.Err() != nil {
		return
	}

	id := key.String()
	now := c.now()
	e, ok := c.entries[id]
	if !ok {
		if !create {
			return
		}
		e = &entry{key: key, lastRead: now}
		c.entries[id] = e
		c.metrics.entries.Inc()
	}
	e.data = data
	e.fetchedAt = now
	e.policy = policy
	e.fetcher = fetcher

	if policy.RefetchInterval > 0 && e.stop == nil {
		e.stop = make(chan struct{})
		c.wg.Add(1)
		go c.autoRefetch(key, e.stop, policy.RefetchInterval)
	}
}

// adopt caches data for key unless an entry already exists.
func (c *Client) adopt(key Key, data any, fetcher Fetcher, policy Policy) {
	c.mu.Lock()
	_, ok := c.entries[key.String()]
	c.mu.Unlock()
	if !ok {
		c.store(key, data, fetcher, policy, true)
	}
}

// autoRefetch refreshes key on every tick until its entry is purged.
func (c *Client) autoRefetch(key Key, stop chan struct{}, interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	id := key.String()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			e, ok := c.entries[id]
			if !ok || e.stop != stop {
				c.mu.Unlock()
				return
			}
			fetcher, policy := e.fetcher, e.policy
			c.mu.Unlock()
			c.refresh(key, fetcher, policy)
		case <-stop:
			return
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) removeLocked(id string, e *entry) {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
	delete(c.entries, id)
	c.metrics.entries.Dec()
}

func resourceLabel(key Key, policy Policy) string {
	if policy.Name != "" {
		return policy.Name
	}
	if len(key) > 0 {
		return key[0]
	}
	return "unknown"
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
