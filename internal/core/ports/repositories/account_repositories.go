package repositories

import (
	"context"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs, keyed by ID.
	// Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindFirstAccountByType returns the active account of the given type with the
	// lowest code. It returns apperrors.ErrNotFound when none exists.
	FindFirstAccountByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// UpsertAccount inserts an account or updates name, type and status of the
	// account with the same code. The stored account is returned.
	UpsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
