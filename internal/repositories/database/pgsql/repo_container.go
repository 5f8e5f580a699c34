package pgsql

import (
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires pool-backed repositories and the transaction runner.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		MovementRepo:  newPgxStockMovementRepository(dbPool),
		ProductRepo:   newPgxProductRepository(dbPool),
		WarehouseRepo: newPgxWarehouseRepository(dbPool),
		TxRunner:      newPgxTransactionRunner(dbPool),
	}
}
