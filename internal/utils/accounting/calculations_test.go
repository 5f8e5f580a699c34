package accounting

import (
	"errors"
	"testing"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSignedAmount(t *testing.T) {
	debit100 := domain.JournalLine{AccountID: "acc", Debit: decimal.NewFromInt(100), Credit: decimal.Zero}
	credit40 := domain.JournalLine{AccountID: "acc", Debit: decimal.Zero, Credit: decimal.NewFromInt(40)}

	tests := []struct {
		name        string
		line        domain.JournalLine
		accountType domain.AccountType
		want        decimal.Decimal
	}{
		{"debit to asset", debit100, domain.Asset, decimal.NewFromInt(100)},
		{"credit to asset", credit40, domain.Asset, decimal.NewFromInt(-40)},
		{"debit to expense", debit100, domain.Expense, decimal.NewFromInt(100)},
		{"debit to liability", debit100, domain.Liability, decimal.NewFromInt(-100)},
		{"credit to equity", credit40, domain.Equity, decimal.NewFromInt(40)},
		{"credit to revenue", credit40, domain.Revenue, decimal.NewFromInt(40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateSignedAmount(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestCalculateSignedAmount_UnknownType(t *testing.T) {
	_, err := CalculateSignedAmount(domain.JournalLine{AccountID: "acc-9"}, domain.AccountType("INCOME"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acc-9")
}

func TestCheckBalance(t *testing.T) {
	balanced := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{AccountID: "b", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}
	assert.NoError(t, CheckBalance(balanced))

	withinTolerance := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.RequireFromString("100.01"), Credit: decimal.Zero},
		{AccountID: "b", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}
	assert.NoError(t, CheckBalance(withinTolerance))

	unbalanced := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{AccountID: "b", Debit: decimal.Zero, Credit: decimal.NewFromInt(90)},
	}
	err := CheckBalance(unbalanced)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnbalanced)

	var ue *apperrors.UnbalancedError
	require.True(t, errors.As(err, &ue))
	assert.True(t, ue.TotalDebit.Equal(decimal.NewFromInt(100)))
	assert.True(t, ue.TotalCredit.Equal(decimal.NewFromInt(90)))
}
