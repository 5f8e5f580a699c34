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
)

// accountServiceImpl resolves chart-of-accounts lookups against the store on
// every call. There is no process-wide cache of the chart.
type accountServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
}

// NewAccountServiceImpl creates a new account service with the given repositories.
func NewAccountServiceImpl(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountServiceImpl{
		BaseService: newBaseService(options...),
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// Ensure accountServiceImpl implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

// GetAccount retrieves a specific account by its unique identifier.
func (s *accountServiceImpl) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account", accountID)
		}
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// FindFirstByClassification returns the lowest-coded active account of accountType.
func (s *accountServiceImpl) FindFirstByClassification(ctx context.Context, accountType domain.AccountType) (*domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}

	account, err := s.accountRepo.FindFirstAccountByType(ctx, accountType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No account of type in chart", slog.String("account_type", string(accountType)))
			return nil, fmt.Errorf("%w: no active %s account", apperrors.ErrNotFound, accountType)
		}
		s.LogError(ctx, err, "Failed to resolve account by type", slog.String("account_type", string(accountType)))
		return nil, err
	}
	return account, nil
}

// GetAccountBalance sums every posted line of an account, voided entries and
// their reversals included, since the two cancel out.
func (s *accountServiceImpl) GetAccountBalance(ctx context.Context, accountID string) (*dto.AccountBalance, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit, err := s.journalRepo.SumLinesByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account lines", slog.String("account_id", accountID))
		return nil, err
	}

	balance, err := accounting.CalculateSignedAmount(domain.JournalLine{
		AccountID: accountID,
		Debit:     totalDebit,
		Credit:    totalCredit,
	}, account.AccountType)
	if err != nil {
		return nil, err
	}

	return &dto.AccountBalance{
		AccountID:   accountID,
		AccountType: string(account.AccountType),
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Balance:     balance,
	}, nil
}
