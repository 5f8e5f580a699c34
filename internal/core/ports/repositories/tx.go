package repositories

import "context"

// TxScope exposes repositories bound to a single open database transaction.
// Every write made through a scope commits or rolls back together.
type TxScope interface {
	Accounts() AccountRepositoryFacade
	Journals() JournalRepositoryFacade
	Movements() StockMovementRepositoryFacade
	Products() ProductRepositoryFacade
	Warehouses() WarehouseRepository

	// Nested runs fn inside a savepoint of the current transaction.
	// When fn returns an error only the savepoint is rolled back; the enclosing
	// transaction remains usable and the error is returned to the caller.
	Nested(ctx context.Context, fn func(scope TxScope) error) error
}

// TransactionRunner opens a transaction, hands fn a scope bound to it and
// commits when fn returns nil. Any error from fn rolls the transaction back.
type TransactionRunner interface {
	RunInTx(ctx context.Context, fn func(scope TxScope) error) error

	// RunInSnapshot runs fn in a read-only transaction where every statement
	// sees the same snapshot, so related rows are read consistently.
	RunInSnapshot(ctx context.Context, fn func(scope TxScope) error) error
}
