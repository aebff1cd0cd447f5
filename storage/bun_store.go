package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore is the bun-backed RecordStore implementation.
type SQLStore struct {
	db  *bun.DB
	now func() time.Time
}

var _ RecordStore = (*SQLStore)(nil)

// NewSQLite opens a SQLite-backed store. Use ":memory:" for tests.
func NewSQLite(dsn string) (*SQLStore, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	return NewWithDB(bun.NewDB(sqldb, sqlitedialect.New())), nil
}

// NewPostgres opens a Postgres-backed store.
func NewPostgres(dsn string) (*SQLStore, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return NewWithDB(bun.NewDB(sqldb, pgdialect.New())), nil
}

// NewWithDB wraps an existing bun handle.
func NewWithDB(db *bun.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// Init creates the records table when it does not exist yet.
func (s *SQLStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*Record)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// LoadByID implements RecordStore.
func (s *SQLStore) LoadByID(ctx context.Context, id string) (*Record, error) {
	rec := new(Record)
	err := s.db.NewSelect().
		Model(rec).
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// LoadPage implements RecordStore.
func (s *SQLStore) LoadPage(ctx context.Context, page, size int, sort Sort) (*Page, error) {
	var recs []*Record
	total, err := s.db.NewSelect().
		Model(&recs).
		OrderExpr(sort.OrderExpr()).
		Limit(size).
		Offset(page * size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	return &Page{
		Records: recs,
		Total:   total,
		Page:    page,
		Size:    size,
		Sort:    sort.String(),
	}, nil
}

// ListAll implements RecordStore.
func (s *SQLStore) ListAll(ctx context.Context) ([]*Record, error) {
	var recs []*Record
	err := s.db.NewSelect().
		Model(&recs).
		OrderExpr(DefaultSort().OrderExpr()).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Create implements RecordStore. A record matching an existing one on
// amount, description, and timestamp is rejected with ErrDuplicate.
func (s *SQLStore) Create(ctx context.Context, rec *Record) (*Record, error) {
	dup, err := s.db.NewSelect().
		Model((*Record)(nil)).
		Where("amount = ?", rec.Amount).
		Where("description = ?", rec.Description).
		Where("timestamp = ?", rec.Timestamp).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicate
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := s.now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if _, err := s.db.NewInsert().Model(rec).Exec(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update implements RecordStore.
func (s *SQLStore) Update(ctx context.Context, rec *Record) (*Record, error) {
	rec.UpdatedAt = s.now()

	res, err := s.db.NewUpdate().
		Model(rec).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Delete implements RecordStore.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*Record)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
