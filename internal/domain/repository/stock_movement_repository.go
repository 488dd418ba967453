package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro mayor de movimientos.
// Solo inserta y consulta: los movimientos nunca se actualizan ni se borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListByReference devuelve todos los movimientos de una operación
	// (ej. todas las líneas de una venta, los dos lados de un traslado).
	ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error)
}
