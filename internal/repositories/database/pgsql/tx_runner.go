package pgsql

import (
	"context"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRunner runs callbacks inside a PostgreSQL transaction.
type PgxTransactionRunner struct {
	pool *pgxpool.Pool
}

func newPgxTransactionRunner(pool *pgxpool.Pool) *PgxTransactionRunner {
	return &PgxTransactionRunner{pool: pool}
}

var _ portsrepo.TransactionRunner = (*PgxTransactionRunner)(nil)

// RunInTx begins a transaction, runs fn with repositories bound to it and
// commits. The deferred rollback is a no-op after a successful commit.
func (r *PgxTransactionRunner) RunInTx(ctx context.Context, fn func(scope portsrepo.TxScope) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// RunInSnapshot uses REPEATABLE READ so all statements in fn share one snapshot.
func (r *PgxTransactionRunner) RunInSnapshot(ctx context.Context, fn func(scope portsrepo.TxScope) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *PgxTransactionRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(scope portsrepo.TxScope) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newTxScope(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// txScope binds every repository to the same pgx.Tx.
type txScope struct {
	tx         pgx.Tx
	accounts   *PgxAccountRepository
	journals   *PgxJournalRepository
	movements  *PgxStockMovementRepository
	products   *PgxProductRepository
	warehouses *PgxWarehouseRepository
}

func newTxScope(tx pgx.Tx) *txScope {
	return &txScope{
		tx:         tx,
		accounts:   newPgxAccountRepository(tx),
		journals:   newPgxJournalRepository(tx),
		movements:  newPgxStockMovementRepository(tx),
		products:   newPgxProductRepository(tx),
		warehouses: newPgxWarehouseRepository(tx),
	}
}

func (s *txScope) Accounts() portsrepo.AccountRepositoryFacade        { return s.accounts }
func (s *txScope) Journals() portsrepo.JournalRepositoryFacade        { return s.journals }
func (s *txScope) Movements() portsrepo.StockMovementRepositoryFacade { return s.movements }
func (s *txScope) Products() portsrepo.ProductRepositoryFacade        { return s.products }
func (s *txScope) Warehouses() portsrepo.WarehouseRepository          { return s.warehouses }

// Nested uses pgx's pseudo nested transaction, which is a SAVEPOINT on the
// outer transaction. Rollback here only undoes work done since the savepoint.
func (s *txScope) Nested(ctx context.Context, fn func(scope portsrepo.TxScope) error) error {
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to create savepoint", err)
	}
	defer func() { _ = sp.Rollback(ctx) }()

	if err := fn(newTxScope(sp)); err != nil {
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to release savepoint", err)
	}
	return nil
}
