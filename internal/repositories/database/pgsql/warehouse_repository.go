package pgsql

import (
	"context"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smallbiz_ledger/internal/utils/mapping"
)

type PgxWarehouseRepository struct {
	BaseRepository
}

func newPgxWarehouseRepository(db Querier) *PgxWarehouseRepository {
	return &PgxWarehouseRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.WarehouseRepository = (*PgxWarehouseRepository)(nil)

// UpsertWarehouse inserts a warehouse or returns the existing one with the same name.
func (r *PgxWarehouseRepository) UpsertWarehouse(ctx context.Context, warehouse domain.Warehouse) (*domain.Warehouse, error) {
	m := mapping.ToModelWarehouse(warehouse)
	query := `
		INSERT INTO warehouses (warehouse_id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING warehouse_id, name, created_at;
	`
	var stored domain.Warehouse
	err := r.DB.QueryRow(ctx, query, m.WarehouseID, m.Name, m.CreatedAt).Scan(&stored.WarehouseID, &stored.Name, &stored.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err, "failed to upsert warehouse %s", m.Name)
	}
	return &stored, nil
}
