package domain

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

// BalanceTolerance is the largest debit/credit difference still treated as balanced.
var BalanceTolerance = decimal.New(1, -2)

// JournalEntry is the header of one accounting transaction.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	EntryDate   time.Time     `json:"entryDate"`
	Description *string       `json:"description,omitempty"`
	Reference   *string       `json:"reference,omitempty"`
	Status      JournalStatus `json:"status"`
	IsVoid      bool          `json:"isVoid"`
	ReversedOf  *string       `json:"reversedOf,omitempty"` // Set only on entries produced by a reversal
	CreatedAt   time.Time     `json:"createdAt"`
	Lines       []JournalLine `json:"lines,omitempty"`
}

// JournalLine is a single posting within an entry.
// Account fields are populated on reads for display and ignored on writes.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	AccountType AccountType     `json:"accountType,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Swapped returns a copy of the line with debit and credit exchanged.
func (l JournalLine) Swapped() JournalLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}

// SumLines returns total debits and total credits.
func SumLines(lines []JournalLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return totalDebit, totalCredit
}

// IsBalanced reports whether debits and credits agree within BalanceTolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}
