package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo su
// punto de reorden con la cantidad sugerida de pedido.
type ReplenishmentUseCase struct {
	stockRepo repository.StockRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(stockRepo repository.StockRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{stockRepo: stockRepo}
}

// GenerateReplenishmentList devuelve los productos bajo punto de reorden con la
// cantidad sugerida de pedido. warehouseID puede ser vacío para stock global.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(
	ctx context.Context,
	companyID, warehouseID string,
) ([]dto.ReplenishmentSuggestionDTO, error) {
	rows, err := uc.stockRepo.ListBelowReorderPoint(companyID, warehouseID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rows))
	for _, row := range rows {
		// Stock ideal: 1.5x el punto de reorden, para no pedir al ras
		idealStock := row.ReorderPoint.Mul(decimal.NewFromFloat(1.5))
		suggestedQty := idealStock.Sub(row.CurrentStock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          row.ProductID,
			SKU:                row.SKU,
			ProductName:        row.ProductName,
			WarehouseID:        row.WarehouseID,
			CurrentStock:       row.CurrentStock,
			ReorderPoint:       row.ReorderPoint,
			IdealStock:         idealStock,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           row.UnitCost,
			EstimatedOrderCost: suggestedQty.Mul(row.UnitCost),
		})
	}
	return suggestions, nil
}
