// Package testsupport provides record fixtures and an in-memory record
// store fake shared by the package tests.
package testsupport

import (
	"context"
	"fmt"
	gosort "sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-record-cache/storage"
)

// BaseTime anchors fixture timestamps so ordering assertions are stable.
var BaseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// NewRecord builds a deterministic fixture record. Higher i means a more
// recent timestamp and a larger amount.
func NewRecord(i int) *storage.Record {
	return &storage.Record{
		ID:              fmt.Sprintf("rec-%04d", i),
		Amount:          float64(100 + i),
		Description:     fmt.Sprintf("fixture record %d", i),
		Type:            storage.TypeDebit,
		AccountNumber:   "1234567890",
		ReferenceNumber: fmt.Sprintf("REF%06d", i),
		Timestamp:       BaseTime.Add(time.Duration(i) * time.Minute),
		CreatedAt:       BaseTime,
		UpdatedAt:       BaseTime,
	}
}

// SeedRecords builds n fixture records, rec-0001 through rec-000n.
func SeedRecords(n int) []*storage.Record {
	recs := make([]*storage.Record, n)
	for i := range recs {
		recs[i] = NewRecord(i + 1)
	}
	return recs
}

// FakeStore is an in-memory storage.RecordStore with call counters and an
// injectable page-load failure hook, for exercising the cache layer without
// a database.
type FakeStore struct {
	mu      sync.Mutex
	records []*storage.Record

	// FailLoadPage, when set, is consulted before serving a page; a
	// non-nil return is surfaced as the load error.
	FailLoadPage func(page, size int, sort storage.Sort) error

	LoadByIDCalls int
	LoadPageCalls int
	ListAllCalls  int
}

var _ storage.RecordStore = (*FakeStore)(nil)

// NewFakeStore creates a fake store seeded with the given records.
func NewFakeStore(records ...*storage.Record) *FakeStore {
	return &FakeStore{records: append([]*storage.Record(nil), records...)}
}

// LoadByID implements storage.RecordStore.
func (f *FakeStore) LoadByID(ctx context.Context, id string) (*storage.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.LoadByIDCalls++
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, storage.ErrNotFound
}

// LoadPage implements storage.RecordStore.
func (f *FakeStore) LoadPage(ctx context.Context, page, size int, sort storage.Sort) (*storage.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.LoadPageCalls++
	if f.FailLoadPage != nil {
		if err := f.FailLoadPage(page, size, sort); err != nil {
			return nil, err
		}
	}

	sorted := f.sortedLocked(sort)
	start := page * size
	if start > len(sorted) {
		start = len(sorted)
	}
	end := start + size
	if end > len(sorted) {
		end = len(sorted)
	}

	return &storage.Page{
		Records: sorted[start:end],
		Total:   len(sorted),
		Page:    page,
		Size:    size,
		Sort:    sort.String(),
	}, nil
}

// ListAll implements storage.RecordStore.
func (f *FakeStore) ListAll(ctx context.Context) ([]*storage.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ListAllCalls++
	return f.sortedLocked(storage.DefaultSort()), nil
}

// Create implements storage.RecordStore.
func (f *FakeStore) Create(ctx context.Context, rec *storage.Record) (*storage.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.records {
		if existing.Amount == rec.Amount &&
			existing.Description == rec.Description &&
			existing.Timestamp.Equal(rec.Timestamp) {
			return nil, storage.ErrDuplicate
		}
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	f.records = append(f.records, rec)
	return rec, nil
}

// Update implements storage.RecordStore.
func (f *FakeStore) Update(ctx context.Context, rec *storage.Record) (*storage.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, existing := range f.records {
		if existing.ID == rec.ID {
			f.records[i] = rec
			return rec, nil
		}
	}
	return nil, storage.ErrNotFound
}

// Delete implements storage.RecordStore.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, existing := range f.records {
		if existing.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

// Len reports the number of stored records.
func (f *FakeStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *FakeStore) sortedLocked(sort storage.Sort) []*storage.Record {
	sorted := append([]*storage.Record(nil), f.records...)
	gosort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if sort.Desc {
			a, b = b, a
		}
		switch sort.Field {
		case "amount":
			return a.Amount < b.Amount
		case "id":
			return a.ID < b.ID
		default:
			return a.Timestamp.Before(b.Timestamp)
		}
	})
	return sorted
}
