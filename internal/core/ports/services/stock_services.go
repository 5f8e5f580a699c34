package services

import (
	"context"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/SscSPs/smallbiz_ledger/internal/dto"
)

// StockMovementReaderSvc defines read operations for stock movements
type StockMovementReaderSvc interface {
	GetMovement(ctx context.Context, movementID string) (*domain.StockMovement, error)
	ListMovements(ctx context.Context, params dto.ListStockMovementsParams) (*dto.ListStockMovementsResponse, error)
}

// StockMovementWriterSvc defines write operations for stock movements
type StockMovementWriterSvc interface {
	// RecordMovement persists a movement, adjusts the product's on-hand quantity and,
	// when requested, posts an automatic journal. A failed posting never fails the call.
	RecordMovement(ctx context.Context, req dto.RecordStockMovementRequest) (*dto.RecordStockMovementResult, error)

	// UpdateMovement applies a partial change and moves the product quantity by the delta.
	UpdateMovement(ctx context.Context, movementID string, req dto.UpdateStockMovementRequest) (*domain.StockMovement, error)

	// DeleteMovement removes a movement, takes its quantity back out of the product and
	// reverses its posted journal entry.
	DeleteMovement(ctx context.Context, movementID string) (*dto.DeleteStockMovementResult, error)
}

// StockMovementSvcFacade combines all stock movement service interfaces
type StockMovementSvcFacade interface {
	StockMovementReaderSvc
	StockMovementWriterSvc
}
