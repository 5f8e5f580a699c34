package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the direction of an inventory change.
type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

func (t MovementType) IsValid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

// StockMovement records one inventory change. Quantity is the signed delta
// applied to the product's on-hand quantity.
type StockMovement struct {
	MovementID       string          `json:"movementID"`
	ProductID        string          `json:"productID"`
	WarehouseID      *string         `json:"warehouseID,omitempty"`
	MovementType     MovementType    `json:"movementType"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unitCost"`
	Reference        *string         `json:"reference,omitempty"`
	Description      *string         `json:"description,omitempty"`
	MovementDate     time.Time       `json:"movementDate"`
	RelatedJournalID *string         `json:"relatedJournalID,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Product is the inventory aggregate whose on-hand quantity movements maintain.
type Product struct {
	ProductID      string          `json:"productID"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	QuantityOnHand decimal.Decimal `json:"quantityOnHand"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Warehouse is a stock location. It is referenced by movements but not managed here.
type Warehouse struct {
	WarehouseID string    `json:"warehouseID"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}
