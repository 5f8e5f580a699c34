package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement mirrors a row of stock_movements.
type StockMovement struct {
	MovementID       string          `db:"movement_id"`
	ProductID        string          `db:"product_id"`
	WarehouseID      *string         `db:"warehouse_id"`
	MovementType     string          `db:"movement_type"`
	Quantity         decimal.Decimal `db:"quantity"`
	UnitCost         decimal.Decimal `db:"unit_cost"`
	Reference        *string         `db:"reference"`
	Description      *string         `db:"description"`
	MovementDate     time.Time       `db:"movement_date"`
	RelatedJournalID *string         `db:"related_journal_id"`
	CreatedAt        time.Time       `db:"created_at"`
}

// Product mirrors a row of products.
type Product struct {
	ProductID      string          `db:"product_id"`
	SKU            string          `db:"sku"`
	Name           string          `db:"name"`
	QuantityOnHand decimal.Decimal `db:"quantity_on_hand"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Warehouse mirrors a row of warehouses.
type Warehouse struct {
	WarehouseID string    `db:"warehouse_id"`
	Name        string    `db:"name"`
	CreatedAt   time.Time `db:"created_at"`
}
