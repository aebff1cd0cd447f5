package cache

import "github.com/goliatone/go-record-cache/internal/cacheinfra"

// Stats is a point-in-time snapshot of one instance's cumulative counters:
// hits, misses, evictions, loads, and total load latency, with derived
// TotalRequests, HitRate, and AverageLoadPenalty.
//
// It aliases the internal snapshot type so instances built by the internal
// store satisfy Instance directly.
type Stats = cacheinfra.Stats
