package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted JournalStatus = "POSTED"
	Voided JournalStatus = "VOIDED"
)

// JournalEntry mirrors a row of journal_entries.
type JournalEntry struct {
	EntryID     string        `db:"entry_id"`
	EntryDate   time.Time     `db:"entry_date"`
	Description *string       `db:"description"` // Nullable
	Reference   *string       `db:"reference"`   // Nullable
	Status      JournalStatus `db:"status"`
	IsVoid      bool          `db:"is_void"`
	ReversedOf  *string       `db:"reversed_of"` // Nullable FK -> journal_entries.entry_id
	CreatedAt   time.Time     `db:"created_at"`
}

// JournalLine mirrors a row of journal_lines, optionally joined with accounts.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	CreatedAt time.Time       `db:"created_at"`

	// Populated by joined reads only
	AccountCode string      `db:"code"`
	AccountName string      `db:"name"`
	AccountType AccountType `db:"account_type"`
}
