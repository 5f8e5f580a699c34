package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smallbiz_ledger/internal/models"
	"github.com/SscSPs/smallbiz_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(db Querier) *PgxProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(&m.ProductID, &m.SKU, &m.Name, &m.QuantityOnHand, &m.CreatedAt)
	return m, err
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT product_id, sku, name, quantity_on_hand, created_at FROM products WHERE product_id = $1;`

	m, err := scanProduct(r.DB.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	product := mapping.ToDomainProduct(m)
	return &product, nil
}

// AdjustQuantityOnHand applies delta relative to the stored value, never to a value read earlier.
func (r *PgxProductRepository) AdjustQuantityOnHand(ctx context.Context, productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE products
		SET quantity_on_hand = quantity_on_hand + $2
		WHERE product_id = $1
		RETURNING quantity_on_hand;
	`
	var newQuantity decimal.Decimal
	err := r.DB.QueryRow(ctx, query, productID, delta).Scan(&newQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to adjust quantity on hand for product %s: %w", productID, err)
	}
	return newQuantity, nil
}

// UpsertProduct inserts a product or renames the one with the same SKU.
func (r *PgxProductRepository) UpsertProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (product_id, sku, name, quantity_on_hand, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name
		RETURNING product_id, sku, name, quantity_on_hand, created_at;
	`
	stored, err := scanProduct(r.DB.QueryRow(ctx, query, m.ProductID, m.SKU, m.Name, m.QuantityOnHand, m.CreatedAt))
	if err != nil {
		return nil, mapWriteError(err, "failed to upsert product %s", m.SKU)
	}

	p := mapping.ToDomainProduct(stored)
	return &p, nil
}
