package recordcache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/goliatone/go-record-cache/cache"
	"github.com/goliatone/go-record-cache/storage"
)

// warmRecentRecords is how many of the most recent records are loaded into
// the by-ID cache during warmup.
const warmRecentRecords = 50

// warmPageCount is how many leading pages are warmed per sort/size pair.
const warmPageCount = 2

var (
	warmSorts     = []string{"timestamp,desc", "amount,desc", "id,asc"}
	warmPageSizes = []int{10, 20, 50}
)

// Warmer pre-populates the hottest-read caches once the record store is
// reachable, so first real traffic does not pay cold-cache latency.
//
// The bootstrap sequence calls Run after the record store's readiness is
// confirmed; Run executes at most once per process. Warmup failures are
// logged and skipped, never propagated: partial warmup is a non-fatal
// outcome and must not abort startup.
type Warmer struct {
	store    storage.RecordStore
	registry *cache.Registry
	logger   *slog.Logger
	once     sync.Once
}

// NewWarmer creates a warmer over the given store and registry. A nil
// logger falls back to slog.Default.
func NewWarmer(store storage.RecordStore, registry *cache.Registry, logger *slog.Logger) *Warmer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Warmer{
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Run performs the warmup once; subsequent calls are no-ops. Use Manual to
// re-trigger explicitly.
func (w *Warmer) Run(ctx context.Context) {
	w.once.Do(func() {
		w.warm(ctx)
	})
}

// Manual re-runs the warmup on demand, bypassing the once guard.
func (w *Warmer) Manual(ctx context.Context) {
	w.logger.InfoContext(ctx, "manual cache warmup triggered")
	w.warm(ctx)
}

func (w *Warmer) warm(ctx context.Context) {
	w.logger.InfoContext(ctx, "starting cache warmup")
	w.warmRecordByID(ctx)
	w.warmPaginated(ctx)
	w.logger.InfoContext(ctx, "cache warmup completed")
}

// warmRecordByID loads the most recent records into the by-ID cache.
func (w *Warmer) warmRecordByID(ctx context.Context) {
	inst, err := w.registry.Get(cache.RecordByID)
	if err != nil {
		w.logger.WarnContext(ctx, "by-id cache not found, skipping warmup", "error", err)
		return
	}

	page, err := w.store.LoadPage(ctx, 0, warmRecentRecords, storage.DefaultSort())
	if err != nil {
		w.logger.WarnContext(ctx, "failed to warm up by-id cache", "error", err)
		return
	}

	warmed := 0
	for _, rec := range page.Records {
		if rec == nil || rec.ID == "" {
			continue
		}
		inst.Put(rec.ID, rec)
		warmed++
	}

	w.logger.InfoContext(ctx, "warmed up by-id cache", "entries", warmed)
}

// warmPaginated loads a fixed cross-product of common sorts, page sizes,
// and the first pages into the paginated cache. Empty pages are skipped so
// an empty store leaves the caches empty.
func (w *Warmer) warmPaginated(ctx context.Context) {
	inst, err := w.registry.Get(cache.PaginatedRecords)
	if err != nil {
		w.logger.WarnContext(ctx, "paginated cache not found, skipping warmup", "error", err)
		return
	}

	warmed := 0
	for _, spec := range warmSorts {
		sort, err := storage.ParseSort(spec)
		if err != nil {
			w.logger.WarnContext(ctx, "skipping invalid warmup sort", "sort", spec, "error", err)
			continue
		}

		for _, size := range warmPageSizes {
			for pageNo := 0; pageNo < warmPageCount; pageNo++ {
				page, err := w.store.LoadPage(ctx, pageNo, size, sort)
				if err != nil {
					w.logger.WarnContext(ctx, "failed to warm up page",
						"sort", spec, "size", size, "page", pageNo, "error", err)
					continue
				}
				if len(page.Records) == 0 {
					continue
				}

				key := cache.PageKey{Page: pageNo, Size: size, Sort: sort.String()}.String()
				inst.Put(key, page)
				warmed++
			}
		}
	}

	w.logger.InfoContext(ctx, "warmed up paginated cache", "entries", warmed)
}

// ClearAll clears every registered cache. Administrative reset; cumulative
// statistics survive.
func (w *Warmer) ClearAll() {
	for _, name := range w.registry.Names() {
		inst, err := w.registry.Get(name)
		if err != nil {
			continue
		}
		inst.Clear()
		w.logger.Debug("cleared cache", "cache", name)
	}
	w.logger.Info("all caches cleared")
}
