package services

import (
	"context"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/SscSPs/smallbiz_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetJournalEntry retrieves an entry with its account-enriched lines.
	GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves every entry header, date descending.
	ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error)

	// ListJournalEntriesPage retrieves one page of entry headers in the same order.
	ListJournalEntriesPage(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateJournalEntry validates and persists a balanced entry with its lines.
	CreateJournalEntry(ctx context.Context, req dto.JournalEntryRequest) (*domain.JournalEntry, error)

	// UpdateJournalEntry replaces header fields and every line of a non-void entry.
	UpdateJournalEntry(ctx context.Context, entryID string, req dto.JournalEntryRequest) (*domain.JournalEntry, error)

	// DeleteJournalEntry physically removes a voided entry. Maintenance only.
	DeleteJournalEntry(ctx context.Context, entryID string) error
}

// JournalReversalSvc defines the reversal operation
type JournalReversalSvc interface {
	// ReverseJournalEntry posts an offsetting entry and voids the original.
	// The returned entry is the reversal; its ReversedOf holds the original ID.
	ReverseJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalReversalSvc
}
