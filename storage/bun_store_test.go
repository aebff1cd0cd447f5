package storage_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-record-cache/storage"
)

func newTestStore(t *testing.T) *storage.SQLStore {
	t.Helper()

	store, err := storage.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return store
}

func seedStore(t *testing.T, store *storage.SQLStore, n int) []*storage.Record {
	t.Helper()

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	recs := make([]*storage.Record, 0, n)
	for i := 1; i <= n; i++ {
		rec, err := store.Create(context.Background(), &storage.Record{
			Amount:        float64(100 + i),
			Description:   fmt.Sprintf("seed record %d", i),
			Type:          storage.TypeCredit,
			AccountNumber: "1234567890",
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("failed to seed record %d: %v", i, err)
		}
		recs = append(recs, rec)
	}
	return recs
}

func TestSQLStore_CreateAndLoadByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &storage.Record{
		Amount:        250.75,
		Description:   "grocery run",
		Type:          storage.TypeDebit,
		AccountNumber: "1234567890",
		Timestamp:     time.Date(2024, time.March, 2, 9, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected create to assign an ID")
	}

	loaded, err := store.LoadByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Description != "grocery run" || loaded.Amount != 250.75 {
		t.Errorf("unexpected record: %+v", loaded)
	}
}

func TestSQLStore_LoadByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadByID(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_CreateDuplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := storage.Record{
		Amount:        10,
		Description:   "same transaction",
		Type:          storage.TypeDebit,
		AccountNumber: "1234567890",
		Timestamp:     time.Date(2024, time.March, 2, 9, 30, 0, 0, time.UTC),
	}

	first := rec
	if _, err := store.Create(ctx, &first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := rec
	if _, err := store.Create(ctx, &second); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestSQLStore_LoadPage(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store, 25)
	ctx := context.Background()

	sort, err := storage.ParseSort("timestamp,desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page, err := store.LoadPage(ctx, 0, 10, sort)
	if err != nil {
		t.Fatalf("load page failed: %v", err)
	}

	if page.Total != 25 {
		t.Errorf("expected total 25, got %d", page.Total)
	}
	if len(page.Records) != 10 {
		t.Fatalf("expected 10 records, got %d", len(page.Records))
	}
	for i := 1; i < len(page.Records); i++ {
		if page.Records[i].Timestamp.After(page.Records[i-1].Timestamp) {
			t.Fatalf("records not ordered newest-first at index %d", i)
		}
	}

	last, err := store.LoadPage(ctx, 2, 10, sort)
	if err != nil {
		t.Fatalf("load last page failed: %v", err)
	}
	if len(last.Records) != 5 {
		t.Errorf("expected 5 records on final page, got %d", len(last.Records))
	}
}

func TestSQLStore_UpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	recs := seedStore(t, store, 3)
	ctx := context.Background()

	target := recs[0]
	target.Description = "amended"
	updated, err := store.Update(ctx, target)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Description != "amended" {
		t.Errorf("expected amended description, got %q", updated.Description)
	}

	if err := store.Delete(ctx, target.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.LoadByID(ctx, target.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLStore_UpdateMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Update(context.Background(), &storage.Record{
		ID:          "missing",
		Amount:      1,
		Description: "ghost",
		Type:        storage.TypeDebit,
		Timestamp:   time.Now(),
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_DeleteMissing(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_ListAll(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store, 5)

	recs, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("expected 5 records, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Timestamp.After(recs[i-1].Timestamp) {
			t.Fatalf("records not ordered newest-first at index %d", i)
		}
	}
}
