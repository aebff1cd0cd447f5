// Package cache provides the cache topology for the record store caching
// subsystem: named, bounded, TTL-aware instances with observable statistics,
// a fixed registry of those instances, and key serialization for composite
// lookups.
//
// # Overview
//
// The package exports:
//
//   - Instance: a single bounded LRU key/value store with write- and
//     access-based expiry and cumulative hit/miss/eviction/load counters
//   - Registry: the fixed set of named instances, created once at process
//     start from per-cache Config values
//   - KeySerializer: builds stable cache keys from a method name and
//     arbitrary arguments, for the general-purpose keyed cache
//   - PageKey: the composite key for paginated lookups, normalized so that
//     equivalent page requests collapse to one entry
//
// # Topology
//
// Four caches exist for the lifetime of the process:
//
//	registry, err := cache.NewRegistry(cache.DefaultConfigs())
//	byID, err := registry.Get(cache.RecordByID)
//
// The set of names is fixed after construction. Instances are never
// destroyed; entries come and go through cache-miss loads, warmup, explicit
// invalidation, and the capacity/TTL policy.
//
// # Statistics
//
// Every instance maintains monotonically increasing counters. Clear and
// Evict remove entries without resetting them, so hit rates and eviction
// counts stay meaningful for the statistics monitor:
//
//	st := byID.Stats()
//	fmt.Println(st.HitRate(), st.AverageLoadPenalty())
//
// # Key Serialization
//
// The default serializer uses reflection to produce deterministic keys for
// basic types, slices, maps, and structs, with a JSON fallback for anything
// else. Function pointers serialize by address and are stable only within a
// single process lifetime.
//
// For the read-through and invalidation contract layered on top of these
// instances, see the recordcache package.
package cache
