package repositories

import (
	"context"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry joined with their account's code, name and type.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves every entry header ordered by date descending, newest first on ties.
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)

	// ListEntriesPage retrieves one page of entry headers in the ListEntries order using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntriesPage(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// SumLinesByAccount returns total debits and credits posted to an account.
	SumLinesByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// InsertEntry persists a new entry header.
	InsertEntry(ctx context.Context, entry domain.JournalEntry) error

	// InsertLines persists lines for an already inserted header.
	InsertLines(ctx context.Context, lines []domain.JournalLine) error

	// UpdateEntryHeader updates date, description and reference of a non-void entry.
	// It returns ErrNotFound for a missing entry and ErrAlreadyVoided for a voided one.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// DeleteLinesByEntryID removes every line of an entry.
	DeleteLinesByEntryID(ctx context.Context, entryID string) error

	// MarkEntryVoided sets is_void and the Voided status on a posted entry.
	// It returns ErrNotFound for a missing entry and ErrAlreadyVoided if another
	// caller voided it first.
	MarkEntryVoided(ctx context.Context, entryID string) error

	// DeleteEntry physically removes an entry; its lines go with it.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
