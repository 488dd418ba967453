package purchasing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// PurchaseTxRunner ejecuta una transacción con los repos de inventario y
// órdenes de compra (recepción: líneas + stock + estado en una sola tx).
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// StockReceiver abstrae la entrada de stock del motor de inventario que la
// recepción compone dentro de su propia transacción, más la emisión post-commit.
type StockReceiver interface {
	InInTx(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		product *entity.Product,
		warehouseID, userID string,
		quantity decimal.Decimal,
		referenceType, referenceID, notes, location, batchNumber string,
		now time.Time,
	) (inventory.StockChangedEvent, error)
	EmitStockChanged(ctx context.Context, ev inventory.StockChangedEvent)
}
