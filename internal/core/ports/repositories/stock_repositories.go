package repositories

import (
	"context"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StockMovementReader defines read operations for stock movements
type StockMovementReader interface {
	// FindMovementByID retrieves a movement by its unique identifier.
	FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error)

	// FindMovementByIDForUpdate retrieves a movement and locks its row until the
	// surrounding transaction ends. Only meaningful inside a TxScope.
	FindMovementByIDForUpdate(ctx context.Context, movementID string) (*domain.StockMovement, error)

	// ListMovements retrieves a page of movements, newest first, optionally for one product.
	// It returns the movements, a token for the next page, and an error.
	ListMovements(ctx context.Context, productID *string, limit int, nextToken *string) ([]domain.StockMovement, *string, error)
}

// StockMovementWriter defines write operations for stock movements
type StockMovementWriter interface {
	SaveMovement(ctx context.Context, movement domain.StockMovement) error
	UpdateMovement(ctx context.Context, movement domain.StockMovement) error

	// SetRelatedJournal links a movement to the journal entry generated for it.
	SetRelatedJournal(ctx context.Context, movementID string, journalID string) error

	DeleteMovement(ctx context.Context, movementID string) error
}

// StockMovementRepositoryFacade combines all movement-related repository interfaces
type StockMovementRepositoryFacade interface {
	StockMovementReader
	StockMovementWriter
}

// ProductReader defines read operations for products
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

// ProductWriter defines write operations for products
type ProductWriter interface {
	// AdjustQuantityOnHand adds delta to the product's on-hand quantity in a single
	// statement and returns the resulting quantity. Concurrent adjustments accumulate.
	AdjustQuantityOnHand(ctx context.Context, productID string, delta decimal.Decimal) (decimal.Decimal, error)

	// UpsertProduct inserts a product or renames the product with the same SKU.
	// On-hand quantity is never overwritten by an upsert.
	UpsertProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

// WarehouseRepository persists stock locations.
type WarehouseRepository interface {
	UpsertWarehouse(ctx context.Context, warehouse domain.Warehouse) (*domain.Warehouse, error)
}
