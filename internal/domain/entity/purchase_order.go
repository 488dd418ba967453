package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// El estado se gobierna con la tabla de transiciones de internal/domain/purchasing.
type PurchaseOrder struct {
	ID                   string
	CompanyID            string
	WarehouseID          string // bodega destino de la mercancía
	SupplierName         string
	Status               string // draft, pending, approved, ordered, received, cancelled
	Notes                string
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time // se estampa al quedar received
	CreatedAt            time.Time
	UpdatedAt            time.Time
	CreatedBy            string
	Items                []*PurchaseOrderItem
}

// PurchaseOrderItem es una línea de la orden.
// Invariante: ReceivedQuantity <= OrderedQuantity en todo momento.
type PurchaseOrderItem struct {
	ID               string
	OrderID          string
	ProductID        string
	OrderedQuantity  decimal.Decimal
	ReceivedQuantity decimal.Decimal
	UnitCost         decimal.Decimal
}

// Pending devuelve la cantidad que falta por recibir de la línea.
func (it *PurchaseOrderItem) Pending() decimal.Decimal {
	return it.OrderedQuantity.Sub(it.ReceivedQuantity)
}

// FullyReceived indica si cada línea completó su cantidad ordenada.
func (o *PurchaseOrder) FullyReceived() bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, it := range o.Items {
		if it.ReceivedQuantity.LessThan(it.OrderedQuantity) {
			return false
		}
	}
	return true
}
