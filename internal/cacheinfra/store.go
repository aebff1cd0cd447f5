package cacheinfra

import (
	"container/list"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// entry is the unit of storage. insertedAt drives write-based expiry,
// lastAccessedAt drives access-based expiry and LRU victim selection.
type entry struct {
	key            string
	value          any
	insertedAt     time.Time
	lastAccessedAt time.Time
}

// Store is a named, bounded key/value store with LRU eviction, write- and
// access-based expiry, and cumulative statistics.
//
// A single mutex guards the map and the recency list; the counters are
// xsync counters so callers (the cache-aside accessor in particular) can
// record load latency without taking the store lock.
type Store struct {
	name string
	cfg  Config
	now  func() time.Time

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List // front = most recently used

	hits      *xsync.Counter
	misses    *xsync.Counter
	evictions *xsync.Counter
	loads     *xsync.Counter
	loadTime  *xsync.Counter // nanoseconds
}

// New creates a store after validating the configuration.
func New(name string, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Store{
		name:      name,
		cfg:       cfg,
		now:       time.Now,
		items:     make(map[string]*list.Element),
		order:     list.New(),
		hits:      xsync.NewCounter(),
		misses:    xsync.NewCounter(),
		evictions: xsync.NewCounter(),
		loads:     xsync.NewCounter(),
		loadTime:  xsync.NewCounter(),
	}, nil
}

// Name returns the store's registry name.
func (s *Store) Name() string {
	return s.name
}

// Get returns the cached value for key if present and not expired.
// A hit refreshes the entry's last-access time and its LRU position.
// An expired entry is removed in the same critical section as the lookup
// and counts as both a miss and a TTL-driven eviction.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	el, ok := s.items[key]
	if !ok {
		s.mu.Unlock()
		s.misses.Inc()
		return nil, false
	}

	e := el.Value.(*entry)
	now := s.now()
	if s.expired(e, now) {
		s.removeLocked(el)
		s.mu.Unlock()
		s.evictions.Inc()
		s.misses.Inc()
		return nil, false
	}

	e.lastAccessedAt = now
	s.order.MoveToFront(el)
	v := e.value
	s.mu.Unlock()

	s.hits.Inc()
	return v, true
}

// Put inserts or overwrites key. When the key is new and the store is at
// capacity, the least-recently-used entry is evicted first; victim selection
// happens under the store lock so concurrent Puts cannot overshoot capacity.
func (s *Store) Put(key string, value any) {
	now := s.now()
	evicted := false

	s.mu.Lock()
	if el, ok := s.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.insertedAt = now
		e.lastAccessedAt = now
		s.order.MoveToFront(el)
		s.mu.Unlock()
		return
	}

	if s.order.Len() >= s.cfg.Capacity {
		if back := s.order.Back(); back != nil {
			s.removeLocked(back)
			evicted = true
		}
	}

	s.items[key] = s.order.PushFront(&entry{
		key:            key,
		value:          value,
		insertedAt:     now,
		lastAccessedAt: now,
	})
	s.mu.Unlock()

	if evicted {
		s.evictions.Inc()
	}
}

// Evict removes key unconditionally. It is a no-op for absent keys and does
// not touch statistics: the evictions counter tracks capacity/TTL removals
// only, so explicit invalidation cannot skew the degradation signal.
func (s *Store) Evict(key string) {
	s.mu.Lock()
	if el, ok := s.items[key]; ok {
		s.removeLocked(el)
	}
	s.mu.Unlock()
}

// Clear removes every entry. Cumulative statistics are retained.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = make(map[string]*list.Element)
	s.order.Init()
	s.mu.Unlock()
}

// Len returns the current number of entries, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	n := s.order.Len()
	s.mu.Unlock()
	return n
}

// RecordLoad accumulates one source-of-truth load and its latency.
func (s *Store) RecordLoad(elapsed time.Duration) {
	s.loads.Inc()
	s.loadTime.Add(int64(elapsed))
}

// Stats returns a snapshot of the cumulative counters.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:          s.hits.Value(),
		Misses:        s.misses.Value(),
		Evictions:     s.evictions.Value(),
		Loads:         s.loads.Value(),
		TotalLoadTime: time.Duration(s.loadTime.Value()),
	}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	if s.cfg.TTLWrite > 0 && now.Sub(e.insertedAt) > s.cfg.TTLWrite {
		return true
	}
	if s.cfg.TTLAccess > 0 && now.Sub(e.lastAccessedAt) > s.cfg.TTLAccess {
		return true
	}
	return false
}

// removeLocked unlinks el from both the map and the recency list.
// Callers must hold s.mu.
func (s *Store) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	delete(s.items, e.key)
	s.order.Remove(el)
}
