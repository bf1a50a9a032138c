// directory/loader.go
package directory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/query"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

const defaultRetryBackoff = 30 * time.Second

// Source fetches the facility to tool mapping.
type Source interface {
	FacilityDirectory(ctx context.Context) (model.FacilityDirectory, error)
}

// Loader owns the facility directory. Every read goes through the query cache:
// a stale entry is revalidated in the background and an evicted or missing one
// is loaded again, so the fab-list policy decides when the directory is refetched.
type Loader struct {
	cache          *query.Client
	source         Source
	validationUtil *util.ValidationUtil
	eventBus       *util.EventBus
	policy         query.Policy
	now            func() time.Time
	sleep          func(ctx context.Context, d time.Duration) error
	retryBackoff   time.Duration

	mu         sync.RWMutex
	directory  model.FacilityDirectory
	pending    int
	loaded     bool
	loadedAt   time.Time
	retryAfter time.Time
	baseCtx    context.Context

	ready     chan struct{}
	readyOnce sync.Once
	startOnce sync.Once
}

type Option func(*Loader)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		l.now = now
	}
}

// WithRetryBackoff sets how long a failed load holds off the next attempt.
func WithRetryBackoff(d time.Duration) Option {
	return func(l *Loader) {
		l.retryBackoff = d
	}
}

// WithSleep replaces the wait between the retries Start schedules.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(l *Loader) {
		l.sleep = sleep
	}
}

// NewLoader creates a loader. eventBus may be nil.
func NewLoader(cache *query.Client, source Source, validationUtil *util.ValidationUtil, eventBus *util.EventBus, opts ...Option) *Loader {
	l := &Loader{
		cache:          cache,
		source:         source,
		validationUtil: validationUtil,
		eventBus:       eventBus,
		policy:         query.PolicyFor(query.ResourceFacilityDirectory),
		now:            time.Now,
		sleep:          sleepContext,
		retryBackoff:   defaultRetryBackoff,
		baseCtx:        context.Background(),
		ready:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Snapshot returns the current directory and loading flags together. Loading
// only covers the time before a directory first arrives. Snapshot reads the
// cache, so it may start a background refetch.
func (l *Loader) Snapshot() model.DirectorySnapshot {
	l.revalidate()

	l.mu.RLock()
	defer l.mu.RUnlock()
	return model.DirectorySnapshot{
		Directory: l.directory,
		Loading:   !l.loaded && (l.pending > 0 || !l.settled()),
		Loaded:    l.loaded,
		LoadedAt:  l.loadedAt,
	}
}

// Ready is closed once the first load has finished, whether it succeeded or not.
// EventDirectoryLoaded is published at that point and after every later
// successful load.
func (l *Loader) Ready() <-chan struct{} {
	return l.ready
}

// Start triggers the first load in the background and keeps retrying it every
// retry backoff until a directory has been loaded. Later calls do nothing.
func (l *Loader) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		l.mu.Lock()
		l.baseCtx = ctx
		l.mu.Unlock()

		go func() {
			for {
				_, err := l.Load(ctx)
				if err == nil || l.isLoaded() {
					return
				}
				logger.Warn("Facility directory load failed, using fallback list until it recovers",
					zap.Duration("retryIn", l.retryBackoff),
					zap.Error(err))
				if err := l.sleep(ctx, l.retryBackoff); err != nil {
					return
				}
			}
		}()
	})
}

// Load returns the directory, fetching it when the cache has nothing fresh.
func (l *Loader) Load(ctx context.Context) (model.FacilityDirectory, error) {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
	return l.load(ctx)
}

// Refresh drops the cached directory and loads it again. The previous
// directory stays in use if the reload fails.
func (l *Loader) Refresh(ctx context.Context) (model.FacilityDirectory, error) {
	l.cache.Invalidate(query.DirectoryKey())
	return l.Load(ctx)
}

// load expects pending to have been incremented by the caller.
func (l *Loader) load(ctx context.Context) (model.FacilityDirectory, error) {
	dir, err := query.Fetch(ctx, l.cache, query.DirectoryKey(), l.policy, l.fetch)

	l.mu.Lock()
	l.pending--
	if err != nil {
		l.retryAfter = l.now().Add(l.retryBackoff)
		snapshot := model.DirectorySnapshot{Directory: l.directory, Loaded: l.loaded, LoadedAt: l.loadedAt, Loading: !l.loaded && l.pending > 0}
		l.mu.Unlock()
		logger.Error("Failed to load facility directory", zap.Error(err))
		// Sessions waiting on the first load validate against the fallback list.
		if l.markReady() && l.eventBus != nil {
			l.eventBus.Publish(context.WithoutCancel(ctx), util.EventDirectoryLoaded, snapshot)
		}
		return nil, err
	}
	l.mu.Unlock()
	return dir, nil
}

// revalidate reads the cached directory. A stale entry is refetched by the
// cache itself; a missing one (evicted, invalidated or never loaded because the
// first load failed) is loaded again once the retry backoff has passed.
func (l *Loader) revalidate() {
	if _, ok := l.cache.Lookup(query.DirectoryKey(), l.fetcher, l.policy); ok {
		return
	}

	l.mu.Lock()
	if l.pending > 0 || !l.settled() || l.now().Before(l.retryAfter) {
		l.mu.Unlock()
		return
	}
	l.pending++
	ctx := l.baseCtx
	l.mu.Unlock()

	logger.Debug("Facility directory not cached, reloading")
	go func() {
		_, _ = l.load(ctx)
	}()
}

func (l *Loader) fetcher(ctx context.Context) (any, error) {
	return l.fetch(ctx)
}

// fetch runs for every load and every background refetch the cache makes, so
// it is where a new directory is committed and announced.
func (l *Loader) fetch(ctx context.Context) (model.FacilityDirectory, error) {
	dir, err := l.source.FacilityDirectory(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.validationUtil.ValidateDirectory(dir); err != nil {
		return nil, err
	}
	dir = dir.Clone()

	l.mu.Lock()
	l.directory = dir
	l.loaded = true
	l.loadedAt = l.now()
	l.retryAfter = time.Time{}
	snapshot := model.DirectorySnapshot{Directory: dir, Loaded: true, LoadedAt: l.loadedAt}
	l.mu.Unlock()

	l.markReady()
	logger.Info("Facility directory loaded", zap.Int("facilities", len(dir)))
	if l.eventBus != nil {
		l.eventBus.Publish(context.WithoutCancel(ctx), util.EventDirectoryLoaded, snapshot)
	}
	return dir, nil
}

func (l *Loader) isLoaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// markReady reports whether this call closed the ready channel.
func (l *Loader) markReady() bool {
	closed := false
	l.readyOnce.Do(func() {
		close(l.ready)
		closed = true
	})
	return closed
}

// settled reports whether the first load has finished.
func (l *Loader) settled() bool {
	select {
	case <-l.ready:
		return true
	default:
		return false
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
