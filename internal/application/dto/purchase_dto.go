package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea al crear una orden de compra.
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	WarehouseID          string                     `json:"warehouse_id"`
	SupplierName         string                     `json:"supplier_name"`
	Notes                string                     `json:"notes,omitempty"`
	ExpectedDeliveryDate *time.Time                 `json:"expected_delivery_date,omitempty"`
	Items                []PurchaseOrderItemRequest `json:"items"`
}

// ReceiveItemRequest línea recibida físicamente contra la orden.
type ReceiveItemRequest struct {
	ItemID      string          `json:"item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Location    string          `json:"location,omitempty"`
	BatchNumber string          `json:"batch_number,omitempty"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
}

// ReceiveOrderRequest body para POST /api/purchase-orders/:id/receive.
type ReceiveOrderRequest struct {
	Items []ReceiveItemRequest `json:"items"`
}

// PurchaseOrderItemResponse línea de la orden en respuestas.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse orden con sus líneas.
type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	WarehouseID          string                      `json:"warehouse_id"`
	SupplierName         string                      `json:"supplier_name"`
	Status               string                      `json:"status"`
	Notes                string                      `json:"notes,omitempty"`
	ExpectedDeliveryDate *time.Time                  `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time                  `json:"actual_delivery_date,omitempty"`
	CreatedAt            time.Time                   `json:"created_at"`
	Items                []PurchaseOrderItemResponse `json:"items"`
}
