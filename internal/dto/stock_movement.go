package dto

import (
	"time"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordStockMovementRequest is the body for recording an inventory movement.
// Quantity is the signed delta applied to the product; the movement type does not change its sign.
type RecordStockMovementRequest struct {
	ProductID           string           `json:"productID" binding:"required"`
	WarehouseID         *string          `json:"warehouseID,omitempty"`
	MovementType        string           `json:"movementType" binding:"required" example:"IN"`
	Quantity            decimal.Decimal  `json:"quantity" swaggertype:"string" example:"10"`
	UnitCost            *decimal.Decimal `json:"unitCost,omitempty" swaggertype:"string" example:"5.00"`
	Reference           *string          `json:"reference,omitempty" binding:"omitempty,max=100"`
	Description         *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	MovementDate        *string          `json:"movementDate,omitempty" example:"2024-01-01"`
	AutoCreateJournal   *bool            `json:"autoCreateJournal,omitempty"`
	InventoryAccountID  *string          `json:"inventoryAccountID,omitempty"`
	AdjustmentAccountID *string          `json:"adjustmentAccountID,omitempty"`
}

// UpdateStockMovementRequest carries the fields to change; nil fields are left untouched.
// The product cannot be changed and the linked journal entry is never regenerated.
type UpdateStockMovementRequest struct {
	WarehouseID  *string          `json:"warehouseID,omitempty"`
	MovementType *string          `json:"movementType,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty" swaggertype:"string"`
	UnitCost     *decimal.Decimal `json:"unitCost,omitempty" swaggertype:"string"`
	Reference    *string          `json:"reference,omitempty" binding:"omitempty,max=100"`
	Description  *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	MovementDate *string          `json:"movementDate,omitempty"`
}

// ListStockMovementsParams holds query parameters for listing movements.
type ListStockMovementsParams struct {
	ProductID *string `form:"productID"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// RecordStockMovementResult is what the service reports after recording a movement.
// JournalID is nil whenever no journal was posted, including when posting failed.
type RecordStockMovementResult struct {
	Movement       domain.StockMovement
	JournalID      *string
	QuantityOnHand decimal.Decimal
}

// DeleteStockMovementResult reports the reversal posted for a deleted movement's journal, if any.
type DeleteStockMovementResult struct {
	MovementID        string
	ReversalJournalID *string
	QuantityOnHand    decimal.Decimal
}

// StockMovementResponse defines the data returned for a stock movement.
type StockMovementResponse struct {
	MovementID       string          `json:"movementID"`
	ProductID        string          `json:"productID"`
	WarehouseID      *string         `json:"warehouseID,omitempty"`
	MovementType     string          `json:"movementType"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unitCost"`
	Reference        *string         `json:"reference,omitempty"`
	Description      *string         `json:"description,omitempty"`
	MovementDate     string          `json:"movementDate"`
	RelatedJournalID *string         `json:"relatedJournalID,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// RecordStockMovementResponse is returned after a movement is recorded.
type RecordStockMovementResponse struct {
	MovementID     string          `json:"movementID"`
	JournalID      *string         `json:"journalID"`
	JournalPosted  bool            `json:"journalPosted"`
	QuantityOnHand decimal.Decimal `json:"quantityOnHand"`
}

// DeleteStockMovementResponse is returned after a movement is deleted.
type DeleteStockMovementResponse struct {
	MovementID        string          `json:"movementID"`
	ReversalJournalID *string         `json:"reversalJournalID,omitempty"`
	QuantityOnHand    decimal.Decimal `json:"quantityOnHand"`
}

// ListStockMovementsResponse wraps a page of movements.
type ListStockMovementsResponse struct {
	Movements []StockMovementResponse `json:"movements"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToStockMovementResponse converts a domain.StockMovement to StockMovementResponse DTO.
func ToStockMovementResponse(m domain.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		MovementID:       m.MovementID,
		ProductID:        m.ProductID,
		WarehouseID:      m.WarehouseID,
		MovementType:     string(m.MovementType),
		Quantity:         m.Quantity,
		UnitCost:         m.UnitCost,
		Reference:        m.Reference,
		Description:      m.Description,
		MovementDate:     m.MovementDate.Format(DateLayout),
		RelatedJournalID: m.RelatedJournalID,
		CreatedAt:        m.CreatedAt,
	}
}

func ToStockMovementResponses(ms []domain.StockMovement) []StockMovementResponse {
	responses := make([]StockMovementResponse, len(ms))
	for i, m := range ms {
		responses[i] = ToStockMovementResponse(m)
	}
	return responses
}

// ToRecordStockMovementResponse flattens a RecordStockMovementResult.
func ToRecordStockMovementResponse(r RecordStockMovementResult) RecordStockMovementResponse {
	return RecordStockMovementResponse{
		MovementID:     r.Movement.MovementID,
		JournalID:      r.JournalID,
		JournalPosted:  r.JournalID != nil,
		QuantityOnHand: r.QuantityOnHand,
	}
}
