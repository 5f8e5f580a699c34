package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AutoJournalInput describes the movement a journal is derived from.
type AutoJournalInput struct {
	MovementID          string
	MovementType        domain.MovementType
	Quantity            decimal.Decimal
	UnitCost            decimal.Decimal
	InventoryAccountID  string
	AdjustmentAccountID *string
	Reference           *string
	MovementDate        time.Time
	ProductID           string
	ProductName         string
}

// AutoJournalGenerator turns stock movements into balanced two-line entries.
// Fallback accounts are looked up through the caller's transaction so a
// movement never needs a second pooled connection.
type AutoJournalGenerator struct {
	BaseService
}

func NewAutoJournalGenerator(options ...ServiceOption) *AutoJournalGenerator {
	return &AutoJournalGenerator{BaseService: newBaseService(options...)}
}

// firstOfTypeOr returns the first account of accountType, or fallback when the chart has none.
func firstOfTypeOr(ctx context.Context, accounts portsrepo.AccountReader, accountType domain.AccountType, fallback string) (string, error) {
	account, err := accounts.FindFirstAccountByType(ctx, accountType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fallback, nil
		}
		return "", err
	}
	return account.AccountID, nil
}

// selectAccounts picks the debit and credit accounts for a movement.
// ok is false for movement types that produce no journal.
func selectAccounts(ctx context.Context, accounts portsrepo.AccountReader, in AutoJournalInput) (debitID, creditID string, ok bool, err error) {
	inventory := in.InventoryAccountID
	adjustment := inventory
	if in.AdjustmentAccountID != nil && *in.AdjustmentAccountID != "" {
		adjustment = *in.AdjustmentAccountID
	}

	switch in.MovementType {
	case domain.MovementIn:
		creditID, err = firstOfTypeOr(ctx, accounts, domain.Equity, inventory)
		return inventory, creditID, err == nil, err
	case domain.MovementOut:
		debitID, err = firstOfTypeOr(ctx, accounts, domain.Expense, inventory)
		return debitID, inventory, err == nil, err
	case domain.MovementAdjustment:
		if in.Quantity.IsNegative() {
			return adjustment, inventory, true, nil
		}
		return inventory, adjustment, true, nil
	}
	return "", "", false, nil
}

// Plan derives the journal entry for a movement without writing anything.
// It returns nil when the movement yields no journal: an unknown type or a zero amount.
func (g *AutoJournalGenerator) Plan(ctx context.Context, accounts portsrepo.AccountReader, in AutoJournalInput) (*domain.JournalEntry, error) {
	// Amounts are always posted positive; direction is carried by the account choice
	amount := in.Quantity.Abs().Mul(in.UnitCost).Round(2)
	if amount.IsZero() {
		g.LogDebug(ctx, "Skipping auto journal for zero amount", slog.String("movement_id", in.MovementID))
		return nil, nil
	}

	debitID, creditID, ok, err := selectAccounts(ctx, accounts, in)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	now := g.Now()
	entryID := uuid.NewString()

	reference := defaultStockReference(in.MovementID)
	if in.Reference != nil && *in.Reference != "" {
		reference = *in.Reference
	}
	description := fmt.Sprintf("Auto journal: %s %s x %s", in.MovementType, in.Quantity.String(), productLabel(in))

	return &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   in.MovementDate,
		Description: &description,
		Reference:   &reference,
		Status:      domain.Posted,
		CreatedAt:   now,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: debitID, Debit: amount, Credit: decimal.Zero, CreatedAt: now},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: creditID, Debit: decimal.Zero, Credit: amount, CreatedAt: now},
		},
	}, nil
}

// Post plans and writes the movement's journal inside a savepoint of scope and
// links it to the movement. Any failure is logged and rolled back to the savepoint;
// the caller gets nil and its own transaction stays intact.
func (g *AutoJournalGenerator) Post(ctx context.Context, scope portsrepo.TxScope, in AutoJournalInput) *string {
	logger := g.GetLogger(ctx).With(slog.String("movement_id", in.MovementID))

	entry, err := g.Plan(ctx, scope.Accounts(), in)
	if err != nil {
		logger.Warn("Auto journal not posted", slog.String("error", err.Error()))
		return nil
	}
	if entry == nil {
		return nil
	}

	err = scope.Nested(ctx, func(nested portsrepo.TxScope) error {
		if err := nested.Journals().InsertEntry(ctx, *entry); err != nil {
			return err
		}
		if err := nested.Journals().InsertLines(ctx, entry.Lines); err != nil {
			return err
		}
		return nested.Movements().SetRelatedJournal(ctx, in.MovementID, entry.EntryID)
	})
	if err != nil {
		logger.Warn("Auto journal not posted", slog.String("error", err.Error()))
		return nil
	}

	logger.Info("Auto journal posted", slog.String("entry_id", entry.EntryID))
	return &entry.EntryID
}

func defaultStockReference(movementID string) string {
	short := movementID
	if len(short) > 8 {
		short = short[:8]
	}
	return "STK-" + short
}

func productLabel(in AutoJournalInput) string {
	if in.ProductName != "" {
		return in.ProductName
	}
	return in.ProductID
}
