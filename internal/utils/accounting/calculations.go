package accounting

import (
	"fmt"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount returns the effect of a line on the balance of an account of the given type.
// This is used wherever a balance is derived from ledger lines, so the sign convention lives in one place.
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// CheckBalance verifies that total debits equal total credits within domain.BalanceTolerance.
// On failure it returns an *apperrors.UnbalancedError carrying both totals.
func CheckBalance(lines []domain.JournalLine) error {
	totalDebit, totalCredit := domain.SumLines(lines)
	if !domain.IsBalanced(totalDebit, totalCredit) {
		return apperrors.NewUnbalancedError(totalDebit, totalCredit)
	}
	return nil
}
