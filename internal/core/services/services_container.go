package services

import (
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smallbiz_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountServiceImpl(repos.AccountRepo, repos.JournalRepo, options...)

	container.Journal = NewJournalService(repos.JournalRepo, repos.TxRunner, options...)

	autoJournal := NewAutoJournalGenerator(options...)
	container.StockMovement = NewStockMovementService(repos.MovementRepo, repos.TxRunner, autoJournal, options...)

	return container
}
