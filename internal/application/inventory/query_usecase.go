package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre stock y movimientos.
// Opera sobre repos respaldados por el pool, fuera de transacción.
type QueryUseCase struct {
	stockRepo     repository.StockRepository
	movRepo       repository.StockMovementRepository
	warehouseRepo repository.WarehouseRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, warehouseRepo repository.WarehouseRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo, warehouseRepo: warehouseRepo}
}

// GetStock devuelve el stock actual de un producto en una bodega.
// Si nunca hubo movimiento devuelve cantidades en cero.
func (uc *QueryUseCase) GetStock(ctx context.Context, companyID, productID, warehouseID string) (*dto.StockResponse, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	stock, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// ListStockByWarehouse lista el stock de una bodega con paginación.
func (uc *QueryUseCase) ListStockByWarehouse(ctx context.Context, companyID, warehouseID string, limit, offset int) ([]dto.StockResponse, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	list, err := uc.stockRepo.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStockResponse(s))
	}
	return out, nil
}

// ListMovementsByProduct devuelve el historial de movimientos de un producto,
// opcionalmente acotado a una bodega y un rango de fechas. Orden cronológico inverso.
func (uc *QueryUseCase) ListMovementsByProduct(ctx context.Context, companyID, productID, warehouseID string, from, to *time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	if warehouseID != "" {
		if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
			return nil, err
		}
	}
	list, err := uc.movRepo.ListByProduct(productID, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListMovementsByWarehouse devuelve el historial completo de una bodega.
func (uc *QueryUseCase) ListMovementsByWarehouse(ctx context.Context, companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	list, err := uc.movRepo.ListByWarehouse(warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListMovementsByReference devuelve todos los movimientos de una operación
// (las líneas de una venta, los dos lados de un traslado, una recepción).
func (uc *QueryUseCase) ListMovementsByReference(ctx context.Context, referenceType, referenceID string) ([]dto.MovementResponse, error) {
	if referenceType == "" || referenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movRepo.ListByReference(referenceType, referenceID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

func (uc *QueryUseCase) checkWarehouse(companyID, warehouseID string) error {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ProductID:         s.ProductID,
		WarehouseID:       s.WarehouseID,
		Quantity:          s.Quantity,
		ReservedQuantity:  s.ReservedQuantity,
		AvailableQuantity: s.Available(),
		Location:          s.Location,
		BatchNumber:       s.BatchNumber,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toMovementResponses(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:               m.ID,
			ProductID:        m.ProductID,
			WarehouseID:      m.WarehouseID,
			Direction:        m.Direction,
			Quantity:         m.Quantity,
			PreviousQuantity: m.PreviousQuantity,
			NewQuantity:      m.NewQuantity,
			ReferenceType:    m.ReferenceType,
			ReferenceID:      m.ReferenceID,
			Notes:            m.Notes,
			CreatedAt:        m.CreatedAt,
			CreatedBy:        m.CreatedBy,
		})
	}
	return out
}
