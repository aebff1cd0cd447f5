package recordcache

import (
	"context"

	"github.com/goliatone/go-record-cache/cache"
	"github.com/goliatone/go-record-cache/storage"
)

// Interface assertion to ensure CachedStore implements storage.RecordStore.
var _ storage.RecordStore = (*CachedStore)(nil)

// CachedStore decorates a base record store with the cache-aside contract:
// reads go through the registry's caches, writes pass through and then
// invalidate. It replaces declarative caching annotations with explicit
// calls, so the contract is testable without a DI container.
type CachedStore struct {
	base     storage.RecordStore
	accessor *Accessor
	keys     cache.KeySerializer
}

// NewCachedStore wraps base with caching through the given accessor.
func NewCachedStore(base storage.RecordStore, accessor *Accessor, keys cache.KeySerializer) *CachedStore {
	return &CachedStore{
		base:     base,
		accessor: accessor,
		keys:     keys,
	}
}

// LoadByID reads through the by-ID cache, keyed by the raw record ID so
// warmup-inserted entries are shared.
func (s *CachedStore) LoadByID(ctx context.Context, id string) (*storage.Record, error) {
	return ReadThrough(ctx, s.accessor, cache.RecordByID, id, func(ctx context.Context) (*storage.Record, error) {
		return s.base.LoadByID(ctx, id)
	})
}

// LoadPage reads through the paginated cache under the composite page key.
func (s *CachedStore) LoadPage(ctx context.Context, page, size int, sort storage.Sort) (*storage.Page, error) {
	key := cache.PageKey{Page: page, Size: size, Sort: sort.String()}.String()
	return ReadThrough(ctx, s.accessor, cache.PaginatedRecords, key, func(ctx context.Context) (*storage.Page, error) {
		return s.base.LoadPage(ctx, page, size, sort)
	})
}

// ListAll reads through the bulk-list cache.
func (s *CachedStore) ListAll(ctx context.Context) ([]*storage.Record, error) {
	key := s.keys.SerializeKey("ListAll")
	return ReadThrough(ctx, s.accessor, cache.RecordList, key, func(ctx context.Context) ([]*storage.Record, error) {
		return s.base.ListAll(ctx)
	})
}

// Create persists through the base store and invalidates on success.
func (s *CachedStore) Create(ctx context.Context, rec *storage.Record) (*storage.Record, error) {
	created, err := s.base.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.invalidateAfterWrite(ctx, created.ID)
	return created, nil
}

// Update persists through the base store and invalidates on success.
func (s *CachedStore) Update(ctx context.Context, rec *storage.Record) (*storage.Record, error) {
	updated, err := s.base.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.invalidateAfterWrite(ctx, updated.ID)
	return updated, nil
}

// Delete removes through the base store and invalidates on success.
func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.base.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAfterWrite(ctx, id)
	return nil
}

// invalidateAfterWrite evicts the affected by-ID entry and clears every
// list-shaped cache: a single mutation can shift every page boundary, so
// per-key eviction is only sound for the by-ID cache.
func (s *CachedStore) invalidateAfterWrite(ctx context.Context, id string) {
	if id != "" {
		if err := s.accessor.InvalidateKey(cache.RecordByID, id); err != nil {
			s.accessor.logger.WarnContext(ctx, "by-id invalidation failed", "id", id, "error", err)
		}
	}
	if err := s.accessor.InvalidateOnWrite(ctx, cache.PaginatedRecords, cache.RecordList, cache.Records); err != nil {
		s.accessor.logger.WarnContext(ctx, "write invalidation failed", "error", err)
	}
}
