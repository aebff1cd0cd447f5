package recordcache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-record-cache/cache"
)

// Loader fetches a value from the source of truth on a cache miss. It is
// the only operation in the subsystem allowed to block on I/O; its timeout
// is the record store's concern, not the cache's.
type Loader func(ctx context.Context) (any, error)

// Accessor implements the cache-aside contract over a registry: look the
// key up in the named instance, fall back to the loader on a miss, store
// the result, and evict on write.
//
// Loader failures propagate to the caller unchanged; they are never cached
// and never retried here.
type Accessor struct {
	registry *cache.Registry
	logger   *slog.Logger
	flight   *singleflight.Group
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithLogger sets the logger used for invalidation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Accessor) {
		a.logger = logger
	}
}

// WithSingleFlight collapses concurrent misses for the same cache/key into
// one loader call. Off by default: duplicate loads on concurrent misses are
// the documented baseline behavior, and this is the explicit opt-in
// strengthening of it.
func WithSingleFlight() Option {
	return func(a *Accessor) {
		a.flight = new(singleflight.Group)
	}
}

// NewAccessor creates an accessor over the given registry.
func NewAccessor(registry *cache.Registry, opts ...Option) *Accessor {
	a := &Accessor{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ReadThrough returns the cached value for key in the named cache, loading
// and storing it on a miss. The load is timed and recorded on the instance
// so average load penalty stays observable.
func (a *Accessor) ReadThrough(ctx context.Context, cacheName, key string, load Loader) (any, error) {
	inst, err := a.registry.Get(cacheName)
	if err != nil {
		return nil, err
	}

	if v, ok := inst.Get(key); ok {
		return v, nil
	}

	if a.flight != nil {
		v, err, _ := a.flight.Do(cacheName+"\x00"+key, func() (any, error) {
			return a.loadAndStore(ctx, inst, key, load)
		})
		return v, err
	}

	return a.loadAndStore(ctx, inst, key, load)
}

func (a *Accessor) loadAndStore(ctx context.Context, inst cache.Instance, key string, load Loader) (any, error) {
	start := time.Now()
	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	inst.RecordLoad(time.Since(start))
	inst.Put(key, v)
	return v, nil
}

// InvalidateOnWrite clears every named cache. Call it after the write has
// committed; clearing first would let a concurrent reader re-populate the
// caches with pre-write state.
func (a *Accessor) InvalidateOnWrite(ctx context.Context, cacheNames ...string) error {
	for _, name := range cacheNames {
		inst, err := a.registry.Get(name)
		if err != nil {
			return err
		}
		inst.Clear()
		a.logger.DebugContext(ctx, "cleared cache on write", "cache", name)
	}
	return nil
}

// InvalidateKey evicts a single key from the named cache.
func (a *Accessor) InvalidateKey(cacheName, key string) error {
	inst, err := a.registry.Get(cacheName)
	if err != nil {
		return err
	}
	inst.Evict(key)
	return nil
}

// ReadThrough is the type-safe wrapper over Accessor.ReadThrough, mirroring
// the any-based contract with a typed loader and result.
func ReadThrough[T any](ctx context.Context, a *Accessor, cacheName, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	v, err := a.ReadThrough(ctx, cacheName, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: have %T", cache.ErrInvalidResultType, v)
	}
	return typed, nil
}
