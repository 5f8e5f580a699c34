package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// JournalLineRequest is one posting as submitted by a client.
// Debit and Credit accept a JSON number, a numeric string, an empty string or null.
type JournalLineRequest struct {
	AccountID string          `json:"accountID"`
	Debit     json.RawMessage `json:"debit,omitempty" swaggertype:"string" example:"100.00"`
	Credit    json.RawMessage `json:"credit,omitempty" swaggertype:"string" example:"0"`
}

// JournalEntryRequest is the body for creating or fully replacing a journal entry.
type JournalEntryRequest struct {
	Date        string               `json:"date" binding:"required" example:"2024-01-01"`
	Description *string              `json:"description,omitempty" binding:"omitempty,max=500"`
	Reference   *string              `json:"reference,omitempty" binding:"omitempty,max=100"`
	Lines       []JournalLineRequest `json:"lines" binding:"required"`
}

// ListJournalEntriesParams holds optional paging query parameters.
// With no limit every entry is returned.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	AccountType string          `json:"accountType,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	Date        string                `json:"date"`
	Description *string               `json:"description,omitempty"`
	Reference   *string               `json:"reference,omitempty"`
	Status      string                `json:"status"`
	IsVoid      bool                  `json:"isVoid"`
	ReversedOf  *string               `json:"reversedOf,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	TotalDebit  *decimal.Decimal      `json:"totalDebit,omitempty"`
	TotalCredit *decimal.Decimal      `json:"totalCredit,omitempty"`
}

// ListJournalEntriesResponse wraps a list of entries and an optional next-page token.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// CreateJournalEntryResponse is returned after a successful create.
type CreateJournalEntryResponse struct {
	EntryID string `json:"entryID"`
}

// ReverseJournalEntryResponse links the voided original to its offsetting entry.
type ReverseJournalEntryResponse struct {
	OriginalID string `json:"originalID"`
	ReversalID string `json:"reversalID"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse DTO.
func ToJournalLineResponse(l domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		AccountCode: l.AccountCode,
		AccountName: l.AccountName,
		AccountType: string(l.AccountType),
		Debit:       l.Debit,
		Credit:      l.Credit,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
// Totals are only filled when lines are present.
func ToJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     e.EntryID,
		Date:        e.EntryDate.Format(DateLayout),
		Description: e.Description,
		Reference:   e.Reference,
		Status:      string(e.Status),
		IsVoid:      e.IsVoid,
		ReversedOf:  e.ReversedOf,
		CreatedAt:   e.CreatedAt,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(l)
		}
		totalDebit, totalCredit := domain.SumLines(e.Lines)
		resp.TotalDebit = &totalDebit
		resp.TotalCredit = &totalCredit
	}
	return resp
}

// ToJournalEntryResponses converts a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToJournalEntryResponse(e)
	}
	return responses
}
