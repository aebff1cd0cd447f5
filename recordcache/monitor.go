package recordcache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-record-cache/cache"
)

const (
	defaultLogInterval   = 5 * time.Minute
	defaultCheckInterval = 10 * time.Minute

	// lowHitRateThreshold triggers a warning when a cache's hit rate falls
	// below it, once the cache has seen more than minRequestsForCheck
	// lookups (cold caches would otherwise produce false positives).
	lowHitRateThreshold = 0.70
	minRequestsForCheck = 100

	// evictionRateThreshold triggers a warning when evictions exceed this
	// fraction of hits.
	evictionRateThreshold = 0.10
)

// Monitor periodically samples every registered cache's counters, logs a
// structured statistics record, and raises advisory degradation warnings.
// It never mutates cache state; its only job is surfacing capacity/TTL
// misconfiguration to an operator.
type Monitor struct {
	registry      *cache.Registry
	logger        *slog.Logger
	logInterval   time.Duration
	checkInterval time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stop      chan struct{}
	done      chan struct{}
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithMonitorLogger sets the logger statistics are emitted to.
func WithMonitorLogger(logger *slog.Logger) MonitorOption {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithLogInterval overrides how often statistics are logged.
func WithLogInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		m.logInterval = d
	}
}

// WithCheckInterval overrides how often threshold rules are evaluated.
func WithCheckInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		m.checkInterval = d
	}
}

// NewMonitor creates a monitor over the registry. Defaults: slog.Default,
// statistics every 5 minutes, threshold checks every 10 minutes.
func NewMonitor(registry *cache.Registry, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		registry:      registry,
		logger:        slog.Default(),
		logInterval:   defaultLogInterval,
		checkInterval: defaultCheckInterval,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches the background sampling loop. Subsequent calls are no-ops.
func (m *Monitor) Start() {
	m.startOnce.Do(func() {
		m.started = true
		go m.run()
	})
}

// Stop terminates the sampling loop and waits for it to exit. Idempotent,
// safe to call during shutdown regardless of whether Start ran.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
	if m.started {
		<-m.done
	}
}

func (m *Monitor) run() {
	defer close(m.done)

	logTicker := time.NewTicker(m.logInterval)
	defer logTicker.Stop()
	checkTicker := time.NewTicker(m.checkInterval)
	defer checkTicker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-logTicker.C:
			m.LogStatistics()
		case <-checkTicker.C:
			m.CheckPerformance()
		}
	}
}

// LogStatistics emits one structured statistics record per cache.
func (m *Monitor) LogStatistics() {
	for _, name := range m.registry.Names() {
		inst, err := m.registry.Get(name)
		if err != nil {
			continue
		}
		st := inst.Stats()
		m.logger.Info("cache statistics",
			"cache", name,
			"hits", st.Hits,
			"misses", st.Misses,
			"hit_rate", st.HitRate(),
			"evictions", st.Evictions,
			"loads", st.Loads,
			"avg_load_penalty_ms", float64(st.AverageLoadPenalty())/float64(time.Millisecond),
		)
	}
}

// CheckPerformance evaluates the degradation rules for every cache and
// warns on breaches. Advisory only: no cache state changes, no corrective
// action.
func (m *Monitor) CheckPerformance() {
	for _, name := range m.registry.Names() {
		inst, err := m.registry.Get(name)
		if err != nil {
			continue
		}
		st := inst.Stats()

		if st.TotalRequests() > minRequestsForCheck && st.HitRate() < lowHitRateThreshold {
			m.logger.Warn("cache has low hit rate",
				"cache", name,
				"hit_rate", st.HitRate(),
				"total_requests", st.TotalRequests(),
			)
		}

		if st.Hits > 0 && float64(st.Evictions) > evictionRateThreshold*float64(st.Hits) {
			m.logger.Warn("cache has high eviction rate",
				"cache", name,
				"evictions", st.Evictions,
				"hits", st.Hits,
			)
		}
	}
}

// Snapshot returns the named cache's statistics for on-demand introspection
// (health and metrics endpoints).
func (m *Monitor) Snapshot(cacheName string) (cache.Stats, error) {
	inst, err := m.registry.Get(cacheName)
	if err != nil {
		return cache.Stats{}, err
	}
	return inst.Stats(), nil
}

// SnapshotAll returns statistics for every registered cache.
func (m *Monitor) SnapshotAll() map[string]cache.Stats {
	all := make(map[string]cache.Stats, len(m.registry.Names()))
	for _, name := range m.registry.Names() {
		inst, err := m.registry.Get(name)
		if err != nil {
			continue
		}
		all[name] = inst.Stats()
	}
	return all
}
