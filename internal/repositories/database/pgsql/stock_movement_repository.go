package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smallbiz_ledger/internal/models"
	"github.com/SscSPs/smallbiz_ledger/internal/utils/mapping"
	"github.com/SscSPs/smallbiz_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type PgxStockMovementRepository struct {
	BaseRepository
}

func newPgxStockMovementRepository(db Querier) *PgxStockMovementRepository {
	return &PgxStockMovementRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.StockMovementRepositoryFacade = (*PgxStockMovementRepository)(nil)

const movementColumns = `movement_id, product_id, warehouse_id, movement_type, quantity, unit_cost,
	reference, description, movement_date, related_journal_id, created_at`

func scanMovement(row pgx.Row) (models.StockMovement, error) {
	var m models.StockMovement
	err := row.Scan(
		&m.MovementID,
		&m.ProductID,
		&m.WarehouseID,
		&m.MovementType,
		&m.Quantity,
		&m.UnitCost,
		&m.Reference,
		&m.Description,
		&m.MovementDate,
		&m.RelatedJournalID,
		&m.CreatedAt,
	)
	return m, err
}

// SaveMovement inserts a stock movement.
func (r *PgxStockMovementRepository) SaveMovement(ctx context.Context, movement domain.StockMovement) error {
	m := mapping.ToModelStockMovement(movement)
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.DB.Exec(ctx, query,
		m.MovementID,
		m.ProductID,
		m.WarehouseID,
		m.MovementType,
		m.Quantity,
		m.UnitCost,
		m.Reference,
		m.Description,
		m.MovementDate,
		m.RelatedJournalID,
		m.CreatedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert stock movement %s", m.MovementID)
	}
	return nil
}

func (r *PgxStockMovementRepository) findMovement(ctx context.Context, movementID string, forUpdate bool) (*domain.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE movement_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	m, err := scanMovement(r.DB.QueryRow(ctx, query+";", movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock movement by ID %s: %w", movementID, err)
	}

	movement := mapping.ToDomainStockMovement(m)
	return &movement, nil
}

// FindMovementByID retrieves a stock movement by its ID.
func (r *PgxStockMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	return r.findMovement(ctx, movementID, false)
}

// FindMovementByIDForUpdate retrieves a stock movement and row-locks it.
func (r *PgxStockMovementRepository) FindMovementByIDForUpdate(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	return r.findMovement(ctx, movementID, true)
}

// ListMovements retrieves a page of movements ordered by movement date, newest first.
func (r *PgxStockMovementRepository) ListMovements(ctx context.Context, productID *string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE TRUE`
	args := []any{}

	if productID != nil && *productID != "" {
		args = append(args, *productID)
		query += ` AND product_id = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (movement_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY movement_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	movements := make([]models.StockMovement, 0, fetchLimit)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan stock movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating stock movement rows: %w", err)
	}

	var nextTokenVal *string
	if len(movements) > limit {
		last := movements[limit-1]
		token := pagination.EncodeToken(last.MovementDate, last.CreatedAt)
		nextTokenVal = &token
		movements = movements[:limit]
	}

	return mapping.ToDomainStockMovementSlice(movements), nextTokenVal, nil
}

// UpdateMovement rewrites the mutable fields of a movement. The journal link is left alone.
func (r *PgxStockMovementRepository) UpdateMovement(ctx context.Context, movement domain.StockMovement) error {
	m := mapping.ToModelStockMovement(movement)
	query := `
		UPDATE stock_movements
		SET warehouse_id = $2, movement_type = $3, quantity = $4, unit_cost = $5,
		    reference = $6, description = $7, movement_date = $8
		WHERE movement_id = $1;
	`
	cmdTag, err := r.DB.Exec(ctx, query,
		m.MovementID,
		m.WarehouseID,
		m.MovementType,
		m.Quantity,
		m.UnitCost,
		m.Reference,
		m.Description,
		m.MovementDate,
	)
	if err != nil {
		return mapWriteError(err, "failed to update stock movement %s", m.MovementID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetRelatedJournal links a movement to its generated journal entry.
func (r *PgxStockMovementRepository) SetRelatedJournal(ctx context.Context, movementID string, journalID string) error {
	query := `UPDATE stock_movements SET related_journal_id = $2 WHERE movement_id = $1;`
	cmdTag, err := r.DB.Exec(ctx, query, movementID, journalID)
	if err != nil {
		return mapWriteError(err, "failed to link stock movement %s to journal entry %s", movementID, journalID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteMovement removes a stock movement row.
func (r *PgxStockMovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	cmdTag, err := r.DB.Exec(ctx, `DELETE FROM stock_movements WHERE movement_id = $1;`, movementID)
	if err != nil {
		return fmt.Errorf("failed to delete stock movement %s: %w", movementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
