package cacheinfra

import "time"

// Stats is a point-in-time snapshot of a store's cumulative counters.
// Counters only ever increase; Clear and explicit Evict do not reset them.
type Stats struct {
	Hits          int64
	Misses        int64
	Evictions     int64
	Loads         int64
	TotalLoadTime time.Duration
}

// TotalRequests returns hits plus misses.
func (s Stats) TotalRequests() int64 {
	return s.Hits + s.Misses
}

// HitRate returns hits over total requests, or 0 when nothing has been
// requested yet.
func (s Stats) HitRate() float64 {
	total := s.TotalRequests()
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// AverageLoadPenalty returns the mean duration spent loading a value on the
// miss path, or 0 when no loads have been recorded.
func (s Stats) AverageLoadPenalty() time.Duration {
	if s.Loads == 0 {
		return 0
	}
	return s.TotalLoadTime / time.Duration(s.Loads)
}
