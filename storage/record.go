package storage

import (
	"time"

	"github.com/uptrace/bun"
)

// RecordType classifies a transaction record.
type RecordType string

const (
	TypeDebit      RecordType = "DEBIT"
	TypeCredit     RecordType = "CREDIT"
	TypeTransfer   RecordType = "TRANSFER"
	TypeDeposit    RecordType = "DEPOSIT"
	TypeWithdrawal RecordType = "WITHDRAWAL"
)

// Record is a single transaction record as served by the record store.
type Record struct {
	bun.BaseModel `bun:"table:records,alias:r"`

	ID              string     `bun:"id,pk" json:"id"`
	Amount          float64    `bun:"amount,notnull" json:"amount"`
	Description     string     `bun:"description,notnull" json:"description"`
	Type            RecordType `bun:"type,notnull" json:"type"`
	AccountNumber   string     `bun:"account_number,notnull" json:"accountNumber"`
	ReferenceNumber string     `bun:"reference_number" json:"referenceNumber"`
	Timestamp       time.Time  `bun:"timestamp,notnull" json:"timestamp"`
	CreatedAt       time.Time  `bun:"created_at,nullzero" json:"createdAt"`
	UpdatedAt       time.Time  `bun:"updated_at,nullzero" json:"updatedAt"`
}

// Page is one page of records together with pagination metadata.
type Page struct {
	Records []*Record `json:"records"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	Size    int       `json:"size"`
	Sort    string    `json:"sort"`
}
