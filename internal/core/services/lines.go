package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/SscSPs/smallbiz_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// amountScale matches the NUMERIC(18,2) debit and credit columns.
const amountScale = 2

// parseAmount turns one raw debit/credit value into a decimal.
// Absent, null and "" mean zero; numbers and numeric strings are parsed once.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return decimal.Zero, nil
	}

	var text string
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return decimal.Zero, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return decimal.Zero, nil
		}
	} else {
		text = string(trimmed)
	}

	return decimal.NewFromString(text)
}

// NormalizeLines converts request lines into domain lines with strict amounts.
// Every failure wraps apperrors.ErrInvalidLine and names the offending line (1-based).
func NormalizeLines(reqLines []dto.JournalLineRequest) ([]domain.JournalLine, error) {
	if len(reqLines) == 0 {
		return nil, fmt.Errorf("%w: at least one line is required", apperrors.ErrInvalidLine)
	}

	lines := make([]domain.JournalLine, 0, len(reqLines))
	for i, rl := range reqLines {
		n := i + 1
		accountID := strings.TrimSpace(rl.AccountID)
		if accountID == "" {
			return nil, fmt.Errorf("%w: line %d has no account", apperrors.ErrInvalidLine, n)
		}

		debit, err := parseAmount(rl.Debit)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has a malformed debit %s", apperrors.ErrInvalidLine, n, string(rl.Debit))
		}
		credit, err := parseAmount(rl.Credit)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has a malformed credit %s", apperrors.ErrInvalidLine, n, string(rl.Credit))
		}

		if debit.IsNegative() || credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrInvalidLine, n)
		}
		if !fitsScale(debit, amountScale) || !fitsScale(credit, amountScale) {
			return nil, fmt.Errorf("%w: line %d has an amount finer than %d decimal places", apperrors.ErrInvalidLine, n, amountScale)
		}
		if debit.IsZero() && credit.IsZero() {
			return nil, fmt.Errorf("%w: line %d has neither a debit nor a credit", apperrors.ErrInvalidLine, n)
		}

		lines = append(lines, domain.JournalLine{
			AccountID: accountID,
			Debit:     debit,
			Credit:    credit,
		})
	}
	return lines, nil
}

// fitsScale reports whether d is stored exactly in a column with scale decimal places.
func fitsScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Truncate(scale))
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar date at midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if t, err := time.Parse(dto.DateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD or RFC3339", apperrors.ErrValidation, value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// nonEmpty returns nil for nil or blank strings so optional text is stored as NULL.
func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
