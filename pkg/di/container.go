// Package di wires the caching subsystem together for host processes:
// registry, cache-aside accessor, cached record store, warmup, and the
// statistics monitor.
package di

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-record-cache/cache"
	"github.com/goliatone/go-record-cache/recordcache"
	"github.com/goliatone/go-record-cache/storage"
)

// Container owns the caching subsystem's components for one process. It is
// constructed once at startup and handed by reference to whatever needs
// cache access; there is no global state.
type Container struct {
	registry *cache.Registry
	accessor *recordcache.Accessor
	keys     cache.KeySerializer
	store    *recordcache.CachedStore
	warmer   *recordcache.Warmer
	monitor  *recordcache.Monitor
}

// ContainerOption configures container construction.
type ContainerOption func(*settings)

type settings struct {
	logger       *slog.Logger
	singleFlight bool
}

// WithLogger sets the logger shared by the accessor, warmer, and monitor.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithSingleFlight enables single-flight loading on the accessor.
func WithSingleFlight() ContainerOption {
	return func(s *settings) {
		s.singleFlight = true
	}
}

// NewContainer builds the subsystem over the given base record store and
// per-cache configuration. Invalid configuration fails construction.
func NewContainer(base storage.RecordStore, configs map[string]cache.Config, opts ...ContainerOption) (*Container, error) {
	s := &settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	registry, err := cache.NewRegistry(configs)
	if err != nil {
		return nil, err
	}

	accessorOpts := []recordcache.Option{recordcache.WithLogger(s.logger)}
	if s.singleFlight {
		accessorOpts = append(accessorOpts, recordcache.WithSingleFlight())
	}
	accessor := recordcache.NewAccessor(registry, accessorOpts...)

	keys := cache.NewDefaultKeySerializer()

	return &Container{
		registry: registry,
		accessor: accessor,
		keys:     keys,
		store:    recordcache.NewCachedStore(base, accessor, keys),
		warmer:   recordcache.NewWarmer(base, registry, s.logger),
		monitor:  recordcache.NewMonitor(registry, recordcache.WithMonitorLogger(s.logger)),
	}, nil
}

// NewContainerWithDefaults builds the subsystem with the default four-cache
// topology.
func NewContainerWithDefaults(base storage.RecordStore, opts ...ContainerOption) (*Container, error) {
	return NewContainer(base, cache.DefaultConfigs(), opts...)
}

// Start runs the bootstrap sequence: warm the caches once (the record store
// must already be reachable) and launch the statistics monitor.
func (c *Container) Start(ctx context.Context) {
	c.warmer.Run(ctx)
	c.monitor.Start()
}

// Stop shuts the background monitor down cleanly.
func (c *Container) Stop() {
	c.monitor.Stop()
}

// Registry returns the cache registry for administrative access.
func (c *Container) Registry() *cache.Registry {
	return c.registry
}

// Accessor returns the cache-aside accessor.
func (c *Container) Accessor() *recordcache.Accessor {
	return c.accessor
}

// KeySerializer returns the shared key serializer.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keys
}

// Store returns the cached record store decorator.
func (c *Container) Store() *recordcache.CachedStore {
	return c.store
}

// Warmer returns the warmup coordinator, for manual re-warming.
func (c *Container) Warmer() *recordcache.Warmer {
	return c.warmer
}

// Monitor returns the statistics monitor, for snapshots.
func (c *Container) Monitor() *recordcache.Monitor {
	return c.monitor
}
