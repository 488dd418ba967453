package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una transacción con los repos de inventario y ventas
// (para CreateSale/VoidSale: venta + descuentos de stock en una sola tx).
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockMutator abstrae las operaciones del motor de inventario que ventas
// compone dentro de su propia transacción, más la emisión post-commit.
type StockMutator interface {
	OutInTx(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		product *entity.Product,
		warehouseID, userID string,
		quantity decimal.Decimal,
		referenceType, referenceID, notes string,
		now time.Time,
	) (inventory.StockChangedEvent, error)
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
	EmitLowStock(ctx context.Context, product *entity.Product, warehouseID string, newQuantity decimal.Decimal)
}

// SaleItemForPDF línea de venta enriquecida con datos del producto para el recibo.
type SaleItemForPDF struct {
	Item        *entity.SaleItem
	ProductName string
	SKU         string
}

// ReceiptPDFGenerator genera el recibo de una venta en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, warehouse *entity.Warehouse, items []SaleItemForPDF) ([]byte, error)
}
