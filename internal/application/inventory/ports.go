package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// StockChangedEvent evento "el stock cambió" para suscriptores en vivo.
type StockChangedEvent struct {
	ProductID        string          `json:"product_id"`
	WarehouseID      string          `json:"warehouse_id"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	Direction        string          `json:"direction"`
}

// LowStockEvent evento "stock bajo": la cantidad quedó en o bajo el punto de reorden.
type LowStockEvent struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	WarehouseID     string          `json:"warehouse_id"`
}

// Notifier publica eventos a suscriptores en vivo. Fire-and-forget, at-most-once:
// se invoca SIEMPRE después del Commit, nunca dentro de la transacción, y un error
// aquí jamás revierte una mutación ya confirmada (solo se loggea).
type Notifier interface {
	StockChanged(ctx context.Context, ev StockChangedEvent) error
	LowStockAlert(ctx context.Context, ev LowStockEvent) error
}
