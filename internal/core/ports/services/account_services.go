package services

import (
	"context"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/SscSPs/smallbiz_ledger/internal/dto"
)

// AccountResolverSvc defines read-only chart-of-accounts lookups
type AccountResolverSvc interface {
	// GetAccount retrieves a specific account by its unique identifier.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// FindFirstByClassification returns the first active account of a type.
	// It returns apperrors.ErrNotFound when the chart has no such account.
	FindFirstByClassification(ctx context.Context, accountType domain.AccountType) (*domain.Account, error)
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// GetAccountBalance sums every line posted to the account.
	GetAccountBalance(ctx context.Context, accountID string) (*dto.AccountBalance, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountResolverSvc
	AccountCalculatorSvc
}
