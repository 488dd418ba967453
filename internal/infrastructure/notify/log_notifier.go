package notify

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

var _ inventory.Notifier = (*LogNotifier)(nil)

// LogNotifier emisor de respaldo que solo escribe al log estructurado.
// Es el driver por defecto en desarrollo (NOTIFY_DRIVER=log).
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el emisor de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// StockChanged registra el cambio de stock en el log.
func (n *LogNotifier) StockChanged(ctx context.Context, ev inventory.StockChangedEvent) error {
	n.log.Info().
		Str("product_id", ev.ProductID).
		Str("warehouse_id", ev.WarehouseID).
		Str("direction", ev.Direction).
		Str("previous_quantity", ev.PreviousQuantity.String()).
		Str("new_quantity", ev.NewQuantity.String()).
		Msg("stock cambiado")
	return nil
}

// LowStockAlert registra la alerta de stock bajo en el log.
func (n *LogNotifier) LowStockAlert(ctx context.Context, ev inventory.LowStockEvent) error {
	n.log.Warn().
		Str("product_id", ev.ProductID).
		Str("product_name", ev.ProductName).
		Str("warehouse_id", ev.WarehouseID).
		Str("current_quantity", ev.CurrentQuantity.String()).
		Str("reorder_point", ev.ReorderPoint.String()).
		Msg("stock bajo punto de reorden")
	return nil
}
