package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// Create persiste cabecera y líneas.
	Create(order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas; nil si no existe.
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE) y carga las líneas.
	// Solo dentro de tx: serializa recepciones concurrentes sobre la misma orden.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(orderID, status string, actualDeliveryDate *time.Time) error
	UpdateItemReceived(itemID string, receivedQuantity decimal.Decimal) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
