package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// The non-transactional repositories serve plain reads; every multi-row write
// goes through TxRunner.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	MovementRepo  StockMovementRepositoryFacade
	ProductRepo   ProductRepositoryFacade
	WarehouseRepo WarehouseRepository
	TxRunner      TransactionRunner
}
