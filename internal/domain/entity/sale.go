package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusVoid      = "void"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale representa una venta de punto de venta (checkout).
// Number es el consecutivo legible por día: SALE-YYYYMMDD-NNNN.
// Una venta anulada conserva su registro: Status pasa a void y se registran
// VoidedBy, VoidedAt y VoidReason.
type Sale struct {
	ID            string
	CompanyID     string
	WarehouseID   string
	Number        string
	Status        string // completed, void
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	PaymentAmount decimal.Decimal
	ChangeAmount  decimal.Decimal // max(0, PaymentAmount - Total)
	Notes         string
	CreatedAt     time.Time
	CreatedBy     string // UserID del cajero
	VoidedAt      *time.Time
	VoidedBy      string
	VoidReason    string
}

// SaleItem es una línea de venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // descuento absoluto por línea
	Subtotal  decimal.Decimal // Quantity*UnitPrice - Discount
}
