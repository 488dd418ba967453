package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// VoidSaleUseCase anula una venta completada: restaura el stock de cada línea
// con un movimiento `in` de referencia `return` y marca la venta como void.
// La venta anulada conserva su registro con auditoría de quién y por qué.
type VoidSaleUseCase struct {
	txRunner    SaleTxRunner
	inventoryUC StockMutator
	saleRepo    repository.SaleRepository
}

// NewVoidSaleUseCase construye el caso de uso.
func NewVoidSaleUseCase(txRunner SaleTxRunner, inventoryUC StockMutator, saleRepo repository.SaleRepository) *VoidSaleUseCase {
	return &VoidSaleUseCase{txRunner: txRunner, inventoryUC: inventoryUC, saleRepo: saleRepo}
}

// VoidSale revierte la venta saleID. Falla con ErrInvalidState si ya está
// anulada. Restauración de stock + marca void en una sola transacción; la
// emisión de notificaciones es best-effort e independiente por línea.
func (uc *VoidSaleUseCase) VoidSale(ctx context.Context, companyID, userID, saleID, reason string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil || sale.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusVoid {
		return domain.ErrInvalidState
	}

	now := time.Now()
	var events []inventory.StockChangedEvent

	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Re-verificar el estado dentro de la tx por si otro caller anuló primero
		current, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.Status == entity.SaleStatusVoid {
			return domain.ErrInvalidState
		}

		items, err := saleRepo.GetItems(saleID)
		if err != nil {
			return err
		}
		for _, item := range items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil || product == nil {
				return domain.ErrNotFound
			}
			ev, err := uc.inventoryUC.InInTx(
				movRepo, stockRepo, product,
				sale.WarehouseID, userID,
				item.Quantity,
				entity.ReferenceReturn, saleID, "anulación venta "+sale.Number,
				"", "",
				now,
			)
			if err != nil {
				return err
			}
			events = append(events, ev)
		}
		return saleRepo.MarkVoid(saleID, userID, reason, now)
	})
	if err != nil {
		return err
	}

	// Best-effort por línea: un fallo de notificación no bloquea las demás.
	for _, ev := range events {
		uc.inventoryUC.EmitStockChanged(ctx, ev)
	}
	return nil
}
