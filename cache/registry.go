package cache

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-record-cache/internal/cacheinfra"
)

// Cache names registered by default. The registry's name set is fixed at
// construction and never mutated afterwards.
const (
	// Records is the general-purpose keyed cache.
	Records = "records"

	// RecordByID caches single records keyed by record identifier.
	RecordByID = "record_by_id"

	// PaginatedRecords caches pages keyed by the PageKey composite.
	PaginatedRecords = "paginated_records"

	// RecordList caches bulk-list results.
	RecordList = "record_list"
)

// ErrUnknownCache is returned when a name was not registered at construction.
var ErrUnknownCache = errors.New("cache: unknown cache name")

// Registry owns a fixed set of named cache instances. It is constructed
// once at process start and passed by reference to every component that
// needs cache access; there is no ambient global cache manager.
type Registry struct {
	instances map[string]Instance
}

// DefaultConfigs returns the default per-cache configuration for the four
// standard caches.
func DefaultConfigs() map[string]Config {
	return map[string]Config{
		Records:          DefaultConfig(),
		RecordByID:       DefaultConfig(),
		PaginatedRecords: DefaultConfig(),
		RecordList:       DefaultConfig(),
	}
}

// NewRegistry constructs one instance per named config. Any invalid config
// fails construction; configuration errors are not recoverable at runtime.
func NewRegistry(configs map[string]Config) (*Registry, error) {
	if len(configs) == 0 {
		return nil, errors.New("cache: registry requires at least one cache config")
	}

	instances := make(map[string]Instance, len(configs))
	for name, cfg := range configs {
		store, err := cacheinfra.New(name, cfg.toInternal())
		if err != nil {
			return nil, fmt.Errorf("cache %q: %w", name, err)
		}
		instances[name] = store
	}

	return &Registry{instances: instances}, nil
}

// Get returns the named instance, or ErrUnknownCache when the name was not
// registered at construction.
func (r *Registry) Get(name string) (Instance, error) {
	inst, ok := r.instances[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCache, name)
	}
	return inst, nil
}

// Names returns the registered cache names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
