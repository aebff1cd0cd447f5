package cache

import (
	"errors"
	"time"
)

// ErrInvalidResultType is returned by typed helpers when a cached value does
// not match the requested type. Instances are populated through a single
// loader per cache, so hitting this at runtime is a programming error.
var ErrInvalidResultType = errors.New("cache: result type does not match requested type")

// Instance is a single named, bounded, TTL-aware key/value store.
//
// All methods are safe for concurrent use. Get and Put never block on I/O;
// the only blocking work in the subsystem happens in loaders invoked by the
// cache-aside accessor on a miss.
type Instance interface {
	// Get returns the value for key if present and not expired. A hit
	// refreshes the entry's last-access time; a miss on an expired entry
	// removes it.
	Get(key string) (any, bool)

	// Put inserts or overwrites key, evicting the least-recently-used
	// entry first when a new key would exceed capacity.
	Put(key string, value any)

	// Evict removes one key unconditionally. No-op if absent. Explicit
	// eviction is not counted in the evictions statistic.
	Evict(key string)

	// Clear removes all entries without resetting cumulative statistics.
	Clear()

	// Len reports the current entry count.
	Len() int

	// RecordLoad accumulates one source-of-truth load and its latency,
	// feeding the loads counter and average load penalty.
	RecordLoad(elapsed time.Duration)

	// Stats returns a snapshot of the cumulative counters.
	Stats() Stats
}

// KeySerializer builds a cache key from a method name + arbitrary args.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}
