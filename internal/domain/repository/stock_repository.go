package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ReplenishmentRow producto bajo punto de reorden con los datos para sugerir pedido.
type ReplenishmentRow struct {
	ProductID    string
	SKU          string
	ProductName  string
	WarehouseID  string
	CurrentStock decimal.Decimal
	ReorderPoint decimal.Decimal
	UnitCost     decimal.Decimal
	Price        decimal.Decimal
}

// StockRepository define el puerto para consultar/actualizar stock por producto+bodega.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el registro; si no existe, un registro en cero (creación perezosa).
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Solo dentro de tx.
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error)
	// ListBelowReorderPoint devuelve, por empresa (y bodega opcional), los productos
	// cuyo stock actual está en o por debajo del punto de reorden.
	ListBelowReorderPoint(companyID, warehouseID string) ([]*ReplenishmentRow, error)
}
