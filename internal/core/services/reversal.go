package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// ReversalReferenceSuffix marks the reference of a reversal entry.
const ReversalReferenceSuffix = "-REV"

// buildReversal derives the offsetting entry for original. Each line keeps its
// account with debit and credit exchanged, so a balanced original yields a
// balanced reversal.
func buildReversal(original domain.JournalEntry, lines []domain.JournalLine, now time.Time) domain.JournalEntry {
	reversalID := uuid.NewString()
	originalID := original.EntryID

	description := fmt.Sprintf("Reversal of journal entry %s", originalID)
	referenceBase := originalID
	if original.Reference != nil && *original.Reference != "" {
		referenceBase = *original.Reference
	}
	reference := referenceBase + ReversalReferenceSuffix

	reversal := domain.JournalEntry{
		EntryID:     reversalID,
		EntryDate:   now.Truncate(24 * time.Hour),
		Description: &description,
		Reference:   &reference,
		Status:      domain.Posted,
		IsVoid:      false,
		ReversedOf:  &originalID,
		CreatedAt:   now,
		Lines:       make([]domain.JournalLine, len(lines)),
	}
	for i, line := range lines {
		swapped := line.Swapped()
		swapped.LineID = uuid.NewString()
		swapped.EntryID = reversalID
		swapped.CreatedAt = now
		reversal.Lines[i] = swapped
	}
	return reversal
}

// reverseEntry offsets and voids entryID using the repositories of scope.
// It must run inside a transaction: either the reversal is inserted and the
// original voided, or nothing is written.
func reverseEntry(ctx context.Context, scope portsrepo.TxScope, entryID string, now time.Time) (*domain.JournalEntry, error) {
	journals := scope.Journals()

	original, err := journals.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to load journal entry %s: %w", entryID, err)
	}
	if original.IsVoid {
		return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrAlreadyVoided, entryID)
	}

	lines, err := journals.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines of journal entry %s: %w", entryID, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNoLines, entryID)
	}

	reversal := buildReversal(*original, lines, now)

	if err := journals.InsertEntry(ctx, reversal); err != nil {
		return nil, err
	}
	if err := journals.InsertLines(ctx, reversal.Lines); err != nil {
		return nil, err
	}
	// The guarded update fails if a concurrent reversal voided the entry first
	if err := journals.MarkEntryVoided(ctx, original.EntryID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyVoided) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrAlreadyVoided, entryID)
		}
		return nil, err
	}

	return &reversal, nil
}
