package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea del checkout.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"` // 0 = usar precio del producto
	Discount  decimal.Decimal `json:"discount,omitempty"`   // descuento absoluto por línea
}

// CreateSaleRequest body para POST /api/sales (checkout POS).
type CreateSaleRequest struct {
	WarehouseID   string            `json:"warehouse_id"`
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	PaymentAmount decimal.Decimal   `json:"payment_amount"`
	Notes         string            `json:"notes,omitempty"`
}

// VoidSaleRequest body para POST /api/sales/:id/void.
type VoidSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	WarehouseID   string             `json:"warehouse_id"`
	Status        string             `json:"status"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountTotal decimal.Decimal    `json:"discount_total"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	PaymentAmount decimal.Decimal    `json:"payment_amount"`
	ChangeAmount  decimal.Decimal    `json:"change_amount"`
	CreatedAt     time.Time          `json:"created_at"`
	VoidedAt      *time.Time         `json:"voided_at,omitempty"`
	VoidReason    string             `json:"void_reason,omitempty"`
	Items         []SaleItemResponse `json:"items"`
}
