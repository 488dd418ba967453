package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas POS.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	// MarkVoid marca la venta como anulada con auditoría de quién y por qué.
	MarkVoid(saleID, voidedBy, reason string, voidedAt time.Time) error
	// CountByDay cuenta las ventas de una empresa creadas en el día natural de day.
	// Se usa dentro de la misma tx que crea la venta para el consecutivo diario.
	CountByDay(companyID string, day time.Time) (int, error)
	ListByCompany(companyID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
}
