package recordcache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-record-cache/cache"
	"github.com/goliatone/go-record-cache/pkg/testsupport"
	"github.com/goliatone/go-record-cache/recordcache"
	"github.com/goliatone/go-record-cache/storage"
)

func newCachedStore(t *testing.T, fake *testsupport.FakeStore) (*recordcache.CachedStore, *cache.Registry) {
	t.Helper()

	registry := newTestRegistry(t)
	accessor := recordcache.NewAccessor(registry)
	return recordcache.NewCachedStore(fake, accessor, cache.NewDefaultKeySerializer()), registry
}

func TestCachedStore_LoadByIDCaches(t *testing.T) {
	fake := testsupport.NewFakeStore(testsupport.SeedRecords(3)...)
	store, _ := newCachedStore(t, fake)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec, err := store.LoadByID(ctx, "rec-0002")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if rec.ID != "rec-0002" {
			t.Errorf("unexpected record: %+v", rec)
		}
	}

	if fake.LoadByIDCalls != 1 {
		t.Errorf("expected one base load, got %d", fake.LoadByIDCalls)
	}
}

func TestCachedStore_LoadByIDNotFoundPropagates(t *testing.T) {
	fake := testsupport.NewFakeStore()
	store, _ := newCachedStore(t, fake)

	_, err := store.LoadByID(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Failures are never cached: each read retries the base store.
	store.LoadByID(context.Background(), "missing")
	if fake.LoadByIDCalls != 2 {
		t.Errorf("expected both loads to reach the base store, got %d", fake.LoadByIDCalls)
	}
}

func TestCachedStore_LoadPageCachesByCompositeKey(t *testing.T) {
	fake := testsupport.NewFakeStore(testsupport.SeedRecords(30)...)
	store, _ := newCachedStore(t, fake)
	ctx := context.Background()

	// Equivalent sort specs normalize to the same composite key.
	sortA, err := storage.ParseSort("Timestamp,DESC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sortB, err := storage.ParseSort("timestamp,desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pageA, err := store.LoadPage(ctx, 0, 10, sortA)
	if err != nil {
		t.Fatalf("load page failed: %v", err)
	}
	pageB, err := store.LoadPage(ctx, 0, 10, sortB)
	if err != nil {
		t.Fatalf("load page failed: %v", err)
	}

	if fake.LoadPageCalls != 1 {
		t.Errorf("expected one base load for equivalent composites, got %d", fake.LoadPageCalls)
	}
	if pageA.Total != 30 || pageB.Total != 30 {
		t.Errorf("unexpected totals: %d, %d", pageA.Total, pageB.Total)
	}

	// A different page number is a different entry.
	if _, err := store.LoadPage(ctx, 1, 10, sortA); err != nil {
		t.Fatalf("load page failed: %v", err)
	}
	if fake.LoadPageCalls != 2 {
		t.Errorf("expected a second base load for page 1, got %d", fake.LoadPageCalls)
	}
}

func TestCachedStore_ListAllCaches(t *testing.T) {
	fake := testsupport.NewFakeStore(testsupport.SeedRecords(5)...)
	store, _ := newCachedStore(t, fake)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		recs, err := store.ListAll(ctx)
		if err != nil {
			t.Fatalf("list all failed: %v", err)
		}
		if len(recs) != 5 {
			t.Errorf("expected 5 records, got %d", len(recs))
		}
	}

	if fake.ListAllCalls != 1 {
		t.Errorf("expected one base list, got %d", fake.ListAllCalls)
	}
}

func TestCachedStore_CreateInvalidatesListCachesOnly(t *testing.T) {
	fake := testsupport.NewFakeStore(testsupport.SeedRecords(10)...)
	store, _ := newCachedStore(t, fake)
	ctx := context.Background()

	// Prime every read cache.
	if _, err := store.LoadByID(ctx, "rec-0001"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := store.LoadPage(ctx, 0, 10, storage.DefaultSort()); err != nil {
		t.Fatalf("load page failed: %v", err)
	}
	if _, err := store.ListAll(ctx); err != nil {
		t.Fatalf("list all failed: %v", err)
	}

	created, err := store.Create(ctx, testsupport.NewRecord(99))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// List-shaped caches were cleared: a mutation shifts page boundaries.
	store.LoadPage(ctx, 0, 10, storage.DefaultSort())
	if fake.LoadPageCalls != 2 {
		t.Errorf("expected page reload after create, got %d calls", fake.LoadPageCalls)
	}
	store.ListAll(ctx)
	if fake.ListAllCalls != 2 {
		t.Errorf("expected list reload after create, got %d calls", fake.ListAllCalls)
	}

	// Unaffected by-ID entries survive.
	store.LoadByID(ctx, "rec-0001")
	if fake.LoadByIDCalls != 1 {
		t.Errorf("expected rec-0001 to stay cached, got %d base loads", fake.LoadByIDCalls)
	}

	// The created record reads fresh.
	got, err := store.LoadByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestCachedStore_UpdateEvictsAffectedRecord(t *testing.T) {
	fake := testsupport.NewFakeStore(testsupport.SeedRecords(3)...)
	store, _ := newCachedStore(t, fake)
	ctx := context.Background()

	stale, err := store.LoadByID(ctx, "rec-0001")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	amended := *stale
	amended.Description = "amended"
	if _, err := store.Update(ctx, &amended); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	fresh, err := store.LoadByID(ctx, "rec-0001")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if fresh.Description != "amended" {
		t.Errorf("expected fresh read after update, got %q", fresh.Description)
	}
	if fake.LoadByIDCalls != 2 {
		t.Errorf("expected the post-update read to reach the base store, got %d", fake.LoadByIDCalls)
	}
}

func TestCachedStore_DeleteEvictsAffectedRecord(t *testing.T) {
	fake := testsupport.NewFakeStore(testsupport.SeedRecords(3)...)
	store, _ := newCachedStore(t, fake)
	ctx := context.Background()

	if _, err := store.LoadByID(ctx, "rec-0002"); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := store.Delete(ctx, "rec-0002"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.LoadByID(ctx, "rec-0002"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCachedStore_FailedWriteDoesNotInvalidate(t *testing.T) {
	recs := testsupport.SeedRecords(5)
	fake := testsupport.NewFakeStore(recs...)
	store, _ := newCachedStore(t, fake)
	ctx := context.Background()

	if _, err := store.ListAll(ctx); err != nil {
		t.Fatalf("list all failed: %v", err)
	}

	// Duplicate create fails in the base store before any commit.
	dup := *recs[0]
	dup.ID = ""
	if _, err := store.Create(ctx, &dup); !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	store.ListAll(ctx)
	if fake.ListAllCalls != 1 {
		t.Errorf("expected caches to survive a failed write, got %d base lists", fake.ListAllCalls)
	}
}
