package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smallbiz_ledger/internal/core/ports/services"
	"github.com/SscSPs/smallbiz_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stockMovementService struct {
	BaseService
	movementRepo portsrepo.StockMovementReader
	txRunner     portsrepo.TransactionRunner
	autoJournal  *AutoJournalGenerator
}

// NewStockMovementService creates a new stock movement service. autoJournal may be
// nil, in which case movements never post journals.
func NewStockMovementService(
	movementRepo portsrepo.StockMovementReader,
	txRunner portsrepo.TransactionRunner,
	autoJournal *AutoJournalGenerator,
	options ...ServiceOption,
) portssvc.StockMovementSvcFacade {
	return &stockMovementService{
		BaseService:  newBaseService(options...),
		movementRepo: movementRepo,
		txRunner:     txRunner,
		autoJournal:  autoJournal,
	}
}

var _ portssvc.StockMovementSvcFacade = (*stockMovementService)(nil)

func parseMovementType(value string) (domain.MovementType, error) {
	movementType := domain.MovementType(strings.ToUpper(strings.TrimSpace(value)))
	if !movementType.IsValid() {
		return "", fmt.Errorf("%w: movementType must be one of IN, OUT, ADJUSTMENT, got %q", apperrors.ErrInvalidInput, value)
	}
	return movementType, nil
}

// quantityScale matches the NUMERIC(18,4) quantity and unit_cost columns.
const quantityScale = 4

func validateQuantity(quantity decimal.Decimal) error {
	if quantity.IsZero() {
		return fmt.Errorf("%w: quantity must be non-zero", apperrors.ErrInvalidInput)
	}
	if !fitsScale(quantity, quantityScale) {
		return fmt.Errorf("%w: quantity allows at most %d decimal places", apperrors.ErrInvalidInput, quantityScale)
	}
	return nil
}

func validateUnitCost(unitCost decimal.Decimal) error {
	if unitCost.IsNegative() {
		return fmt.Errorf("%w: unitCost cannot be negative", apperrors.ErrInvalidInput)
	}
	if !fitsScale(unitCost, quantityScale) {
		return fmt.Errorf("%w: unitCost allows at most %d decimal places", apperrors.ErrInvalidInput, quantityScale)
	}
	return nil
}

func parseMovementDate(value string) (time.Time, error) {
	date, err := ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: movementDate: %v", apperrors.ErrInvalidInput, err)
	}
	return date, nil
}

func movementNotFound(err error, movementID string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError("stock movement", movementID)
	}
	return err
}

// RecordMovement persists a movement and applies its quantity to the product.
func (s *stockMovementService) RecordMovement(ctx context.Context, req dto.RecordStockMovementRequest) (*dto.RecordStockMovementResult, error) {
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return nil, fmt.Errorf("%w: productID is required", apperrors.ErrInvalidInput)
	}
	movementType, err := parseMovementType(req.MovementType)
	if err != nil {
		return nil, err
	}
	if err := validateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	unitCost := decimal.Zero
	if req.UnitCost != nil {
		if err := validateUnitCost(*req.UnitCost); err != nil {
			return nil, err
		}
		unitCost = *req.UnitCost
	}
	movementDate := s.Today()
	if req.MovementDate != nil && strings.TrimSpace(*req.MovementDate) != "" {
		if movementDate, err = parseMovementDate(*req.MovementDate); err != nil {
			return nil, err
		}
	}
	autoCreate := true
	if req.AutoCreateJournal != nil {
		autoCreate = *req.AutoCreateJournal
	}
	inventoryAccountID := nonEmpty(req.InventoryAccountID)

	movement := domain.StockMovement{
		MovementID:   uuid.NewString(),
		ProductID:    productID,
		WarehouseID:  nonEmpty(req.WarehouseID),
		MovementType: movementType,
		Quantity:     req.Quantity,
		UnitCost:     unitCost,
		Reference:    nonEmpty(req.Reference),
		Description:  nonEmpty(req.Description),
		MovementDate: movementDate,
		CreatedAt:    s.Now(),
	}
	logger := s.GetLogger(ctx).With(slog.String("movement_id", movement.MovementID), slog.String("product_id", productID))

	result := &dto.RecordStockMovementResult{}
	err = s.txRunner.RunInTx(ctx, func(scope portsrepo.TxScope) error {
		product, err := scope.Products().FindProductByID(ctx, productID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("product", productID)
			}
			return err
		}

		if err := scope.Movements().SaveMovement(ctx, movement); err != nil {
			return err
		}
		quantityOnHand, err := scope.Products().AdjustQuantityOnHand(ctx, productID, movement.Quantity)
		if err != nil {
			return err
		}
		result.QuantityOnHand = quantityOnHand

		if autoCreate && inventoryAccountID != nil && s.autoJournal != nil {
			result.JournalID = s.autoJournal.Post(ctx, scope, AutoJournalInput{
				MovementID:          movement.MovementID,
				MovementType:        movement.MovementType,
				Quantity:            movement.Quantity,
				UnitCost:            movement.UnitCost,
				InventoryAccountID:  *inventoryAccountID,
				AdjustmentAccountID: nonEmpty(req.AdjustmentAccountID),
				Reference:           movement.Reference,
				MovementDate:        movement.MovementDate,
				ProductID:           product.ProductID,
				ProductName:         product.Name,
			})
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to record stock movement", slog.String("error", err.Error()))
		return nil, err
	}

	movement.RelatedJournalID = result.JournalID
	result.Movement = movement
	logger.Info("Stock movement recorded",
		slog.String("quantity", movement.Quantity.String()),
		slog.String("quantity_on_hand", result.QuantityOnHand.String()),
		slog.Bool("journal_posted", result.JournalID != nil))
	return result, nil
}

// applyUpdate validates req and returns existing with the requested fields changed.
func applyUpdate(existing domain.StockMovement, req dto.UpdateStockMovementRequest) (domain.StockMovement, error) {
	updated := existing
	if req.WarehouseID != nil {
		updated.WarehouseID = nonEmpty(req.WarehouseID)
	}
	if req.MovementType != nil {
		movementType, err := parseMovementType(*req.MovementType)
		if err != nil {
			return updated, err
		}
		updated.MovementType = movementType
	}
	if req.Quantity != nil {
		if err := validateQuantity(*req.Quantity); err != nil {
			return updated, err
		}
		updated.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		if err := validateUnitCost(*req.UnitCost); err != nil {
			return updated, err
		}
		updated.UnitCost = *req.UnitCost
	}
	if req.Reference != nil {
		updated.Reference = nonEmpty(req.Reference)
	}
	if req.Description != nil {
		updated.Description = nonEmpty(req.Description)
	}
	if req.MovementDate != nil {
		date, err := parseMovementDate(*req.MovementDate)
		if err != nil {
			return updated, err
		}
		updated.MovementDate = date
	}
	return updated, nil
}

// UpdateMovement applies a partial change. A quantity change moves the product's
// on-hand quantity by the difference; the linked journal is left as posted.
func (s *stockMovementService) UpdateMovement(ctx context.Context, movementID string, req dto.UpdateStockMovementRequest) (*domain.StockMovement, error) {
	logger := s.GetLogger(ctx).With(slog.String("movement_id", movementID))

	// Validate against a zero movement first so bad input never opens a transaction
	if _, err := applyUpdate(domain.StockMovement{}, req); err != nil {
		return nil, err
	}

	var updated domain.StockMovement
	err := s.txRunner.RunInTx(ctx, func(scope portsrepo.TxScope) error {
		existing, err := scope.Movements().FindMovementByIDForUpdate(ctx, movementID)
		if err != nil {
			return movementNotFound(err, movementID)
		}

		updated, err = applyUpdate(*existing, req)
		if err != nil {
			return err
		}
		if err := scope.Movements().UpdateMovement(ctx, updated); err != nil {
			return movementNotFound(err, movementID)
		}

		delta := updated.Quantity.Sub(existing.Quantity)
		if delta.IsZero() {
			return nil
		}
		_, err = scope.Products().AdjustQuantityOnHand(ctx, existing.ProductID, delta)
		return err
	})
	if err != nil {
		logger.Error("Failed to update stock movement", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Stock movement updated")
	return &updated, nil
}

// DeleteMovement removes a movement and takes its quantity back out of the product.
// A linked journal entry is reversed rather than deleted so the ledger keeps its history.
func (s *stockMovementService) DeleteMovement(ctx context.Context, movementID string) (*dto.DeleteStockMovementResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("movement_id", movementID))

	result := &dto.DeleteStockMovementResult{MovementID: movementID}
	err := s.txRunner.RunInTx(ctx, func(scope portsrepo.TxScope) error {
		existing, err := scope.Movements().FindMovementByIDForUpdate(ctx, movementID)
		if err != nil {
			return movementNotFound(err, movementID)
		}

		if existing.RelatedJournalID != nil {
			journalID := *existing.RelatedJournalID
			err := scope.Nested(ctx, func(nested portsrepo.TxScope) error {
				reversal, err := reverseEntry(ctx, nested, journalID, s.Now())
				if err != nil {
					return err
				}
				result.ReversalJournalID = &reversal.EntryID
				return nil
			})
			switch {
			case err == nil:
			case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrAlreadyVoided), errors.Is(err, apperrors.ErrNoLines):
				// Already reversed by hand or nothing left to offset
				logger.Info("Linked journal not reversed", slog.String("journal_id", journalID), slog.String("reason", err.Error()))
			default:
				return err
			}
		}

		if err := scope.Movements().DeleteMovement(ctx, movementID); err != nil {
			return movementNotFound(err, movementID)
		}
		quantityOnHand, err := scope.Products().AdjustQuantityOnHand(ctx, existing.ProductID, existing.Quantity.Neg())
		if err != nil {
			return err
		}
		result.QuantityOnHand = quantityOnHand
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete stock movement", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Stock movement deleted", slog.Bool("journal_reversed", result.ReversalJournalID != nil))
	return result, nil
}

// GetMovement retrieves a movement by its unique identifier.
func (s *stockMovementService) GetMovement(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get stock movement", slog.String("movement_id", movementID))
		}
		return nil, movementNotFound(err, movementID)
	}
	return movement, nil
}

// ListMovements retrieves a page of movements, newest first.
func (s *stockMovementService) ListMovements(ctx context.Context, params dto.ListStockMovementsParams) (*dto.ListStockMovementsResponse, error) {
	movements, nextToken, err := s.movementRepo.ListMovements(ctx, nonEmpty(params.ProductID), params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock movements")
		return nil, err
	}
	return &dto.ListStockMovementsResponse{
		Movements: dto.ToStockMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}
