package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smallbiz_ledger/internal/core/ports/services"
	"github.com/SscSPs/smallbiz_ledger/internal/dto"
	"github.com/SscSPs/smallbiz_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// journalService provides journal entry persistence and the reversal engine.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalReader
	txRunner    portsrepo.TransactionRunner
}

// NewJournalService creates a new JournalService. Reads go through journalRepo,
// every write through txRunner.
func NewJournalService(journalRepo portsrepo.JournalReader, txRunner portsrepo.TransactionRunner, options ...ServiceOption) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(options...),
		journalRepo: journalRepo,
		txRunner:    txRunner,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// prepareEntry validates a request completely before anything is written.
func (s *journalService) prepareEntry(req dto.JournalEntryRequest) (domain.JournalEntry, error) {
	entryDate, err := ParseDate(req.Date)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	lines, err := NormalizeLines(req.Lines)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	if err := accounting.CheckBalance(lines); err != nil {
		return domain.JournalEntry{}, err
	}

	return domain.JournalEntry{
		EntryDate:   entryDate,
		Description: nonEmpty(req.Description),
		Reference:   nonEmpty(req.Reference),
		Lines:       lines,
	}, nil
}

// assignLines stamps fresh IDs on every line and attaches them to entry.
func (s *journalService) assignLines(entry *domain.JournalEntry) {
	for i := range entry.Lines {
		entry.Lines[i].LineID = uuid.NewString()
		entry.Lines[i].EntryID = entry.EntryID
		entry.Lines[i].CreatedAt = entry.CreatedAt
	}
}

// ensureAccountsExist rejects lines pointing at accounts missing from the chart.
func ensureAccountsExist(ctx context.Context, accounts portsrepo.AccountReader, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	found, err := accounts.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load line accounts: %w", err)
	}
	for i, l := range lines {
		if _, ok := found[l.AccountID]; !ok {
			return fmt.Errorf("%w: line %d references unknown account %s", apperrors.ErrInvalidLine, i+1, l.AccountID)
		}
	}
	return nil
}

// CreateJournalEntry validates and persists a new entry with its lines in one transaction.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.JournalEntryRequest) (*domain.JournalEntry, error) {
	entry, err := s.prepareEntry(req)
	if err != nil {
		s.GetLogger(ctx).Warn("Rejected journal entry", slog.String("error", err.Error()))
		return nil, err
	}

	entry.EntryID = uuid.NewString()
	entry.Status = domain.Posted
	entry.IsVoid = false
	entry.CreatedAt = s.Now()
	s.assignLines(&entry)

	err = s.txRunner.RunInTx(ctx, func(scope portsrepo.TxScope) error {
		if err := ensureAccountsExist(ctx, scope.Accounts(), entry.Lines); err != nil {
			return err
		}
		if err := scope.Journals().InsertEntry(ctx, entry); err != nil {
			return err
		}
		return scope.Journals().InsertLines(ctx, entry.Lines)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry")
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entry.EntryID), slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

// UpdateJournalEntry replaces the header and all lines of a non-void entry.
// Lines missing from the request are dropped; this is a full replacement, not a merge.
func (s *journalService) UpdateJournalEntry(ctx context.Context, entryID string, req dto.JournalEntryRequest) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.String("entry_id", entryID))

	entry, err := s.prepareEntry(req)
	if err != nil {
		logger.Warn("Rejected journal entry update", slog.String("error", err.Error()))
		return nil, err
	}

	err = s.txRunner.RunInTx(ctx, func(scope portsrepo.TxScope) error {
		journals := scope.Journals()

		existing, err := journals.FindEntryByID(ctx, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
			}
			return err
		}
		if existing.IsVoid {
			return fmt.Errorf("%w: journal entry %s cannot be edited", apperrors.ErrAlreadyVoided, entryID)
		}
		if err := ensureAccountsExist(ctx, scope.Accounts(), entry.Lines); err != nil {
			return err
		}

		entry.EntryID = existing.EntryID
		entry.Status = existing.Status
		entry.IsVoid = existing.IsVoid
		entry.ReversedOf = existing.ReversedOf
		entry.CreatedAt = existing.CreatedAt
		s.assignLines(&entry)
		now := s.Now()
		for i := range entry.Lines {
			entry.Lines[i].CreatedAt = now
		}

		if err := journals.UpdateEntryHeader(ctx, entry); err != nil {
			return err
		}
		if err := journals.DeleteLinesByEntryID(ctx, entryID); err != nil {
			return err
		}
		return journals.InsertLines(ctx, entry.Lines)
	})
	if err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal entry updated", slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

// GetJournalEntry retrieves an entry header joined with its account-enriched lines.
// Header and lines come from one snapshot so a concurrent update is never seen half applied.
func (s *journalService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txRunner.RunInSnapshot(ctx, func(scope portsrepo.TxScope) error {
		found, err := scope.Journals().FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		lines, err := scope.Journals().FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return err
		}
		found.Lines = lines
		entry = found
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		s.LogError(ctx, err, "Failed to get journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

// ListJournalEntries retrieves all entry headers, newest date first.
func (s *journalService) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}
	return entries, nil
}

// ListJournalEntriesPage retrieves one page of entry headers.
func (s *journalService) ListJournalEntriesPage(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	entries, nextToken, err := s.journalRepo.ListEntriesPage(ctx, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entry page", slog.Int("limit", params.Limit))
		return nil, err
	}

	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// ReverseJournalEntry offsets a posted entry and voids it atomically.
func (s *journalService) ReverseJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.String("entry_id", entryID))

	var reversal *domain.JournalEntry
	err := s.txRunner.RunInTx(ctx, func(scope portsrepo.TxScope) error {
		r, err := reverseEntry(ctx, scope, entryID, s.Now())
		if err != nil {
			return err
		}
		reversal = r
		return nil
	})
	if err != nil {
		logger.Warn("Failed to reverse journal entry", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal entry reversed", slog.String("reversal_id", reversal.EntryID))
	return reversal, nil
}

// DeleteJournalEntry physically removes a voided entry and its lines.
// Posted entries must be reversed first; they are never physically deleted.
func (s *journalService) DeleteJournalEntry(ctx context.Context, entryID string) error {
	err := s.txRunner.RunInTx(ctx, func(scope portsrepo.TxScope) error {
		existing, err := scope.Journals().FindEntryByID(ctx, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
			}
			return err
		}
		if !existing.IsVoid {
			return fmt.Errorf("%w: journal entry %s is posted; reverse it before deleting", apperrors.ErrConflict, entryID)
		}
		return scope.Journals().DeleteEntry(ctx, entryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Voided journal entry deleted", slog.String("entry_id", entryID))
	return nil
}
