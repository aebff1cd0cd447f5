// Package recordcache layers the cache-aside contract over the cache
// registry and the record store: read-through on miss, explicit
// invalidation on write, startup warmup, and background statistics
// monitoring.
//
// The Accessor is the read/write contract request-serving code uses
// directly; CachedStore wraps a storage.RecordStore with that contract so
// callers get caching as a drop-in decorator. Warmer pre-populates the
// hottest caches once the record store is reachable, and Monitor
// periodically logs per-cache statistics and raises advisory warnings when
// hit rates degrade or evictions run hot.
//
// Concurrent read-through misses for the same key may each invoke the
// loader; duplicate work is accepted and the last write wins. Callers that
// want single-flight loading opt in with WithSingleFlight.
package recordcache
