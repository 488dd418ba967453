package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento de inventario.
const (
	DirectionIn         = "in"         // entrada
	DirectionOut        = "out"        // salida
	DirectionTransfer   = "transfer"   // traslado entre bodegas
	DirectionAdjustment = "adjustment" // ajuste manual
	DirectionReturn     = "return"     // devolución (anulación de venta)
)

// Tipos de referencia: indican qué operación originó el movimiento.
const (
	ReferenceSale          = "sale"
	ReferencePurchaseOrder = "purchase_order"
	ReferenceTransfer      = "transfer"
	ReferenceAdjustment    = "adjustment"
	ReferenceReturn        = "return" // reverso de venta anulada
)

// StockMovement es el registro inmutable de un cambio de cantidad (libro mayor).
// Quantity es siempre magnitud positiva; el signo lo da Increases().
// Invariante: NewQuantity == PreviousQuantity ± Quantity según la dirección.
// Nunca se actualiza ni se borra después de crearse.
type StockMovement struct {
	ID               string
	ProductID        string
	WarehouseID      string
	Direction        string // in, out, transfer, adjustment, return
	Quantity         decimal.Decimal
	PreviousQuantity decimal.Decimal
	NewQuantity      decimal.Decimal
	ReferenceType    string // sale, purchase_order, transfer, adjustment
	ReferenceID      string // id de la venta/orden o correlación del traslado
	Notes            string
	CreatedAt        time.Time
	CreatedBy        string // UserID que ejecutó la operación
}

// Increases indica si el movimiento aumenta el stock de su bodega.
// Para transfer y adjustment el sentido lo determina NewQuantity vs PreviousQuantity.
func (m *StockMovement) Increases() bool {
	switch m.Direction {
	case DirectionIn, DirectionReturn:
		return true
	case DirectionOut:
		return false
	default:
		return m.NewQuantity.GreaterThan(m.PreviousQuantity)
	}
}

// SignedQuantity devuelve la cantidad con signo según la dirección.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Increases() {
		return m.Quantity
	}
	return m.Quantity.Neg()
}
