package mapping

import (
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	"github.com/SscSPs/smallbiz_ledger/internal/models"
)

func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	return models.StockMovement{
		MovementID:       d.MovementID,
		ProductID:        d.ProductID,
		WarehouseID:      d.WarehouseID,
		MovementType:     string(d.MovementType),
		Quantity:         d.Quantity,
		UnitCost:         d.UnitCost,
		Reference:        d.Reference,
		Description:      d.Description,
		MovementDate:     d.MovementDate,
		RelatedJournalID: d.RelatedJournalID,
		CreatedAt:        d.CreatedAt,
	}
}

func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID:       m.MovementID,
		ProductID:        m.ProductID,
		WarehouseID:      m.WarehouseID,
		MovementType:     domain.MovementType(m.MovementType),
		Quantity:         m.Quantity,
		UnitCost:         m.UnitCost,
		Reference:        m.Reference,
		Description:      m.Description,
		MovementDate:     m.MovementDate,
		RelatedJournalID: m.RelatedJournalID,
		CreatedAt:        m.CreatedAt,
	}
}

func ToDomainStockMovementSlice(ms []models.StockMovement) []domain.StockMovement {
	ds := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockMovement(m)
	}
	return ds
}

func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:      d.ProductID,
		SKU:            d.SKU,
		Name:           d.Name,
		QuantityOnHand: d.QuantityOnHand,
		CreatedAt:      d.CreatedAt,
	}
}

func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:      m.ProductID,
		SKU:            m.SKU,
		Name:           m.Name,
		QuantityOnHand: m.QuantityOnHand,
		CreatedAt:      m.CreatedAt,
	}
}

func ToModelWarehouse(d domain.Warehouse) models.Warehouse {
	return models.Warehouse{
		WarehouseID: d.WarehouseID,
		Name:        d.Name,
		CreatedAt:   d.CreatedAt,
	}
}
