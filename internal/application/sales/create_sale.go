package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// CreateSaleUseCase ejecuta el checkout de punto de venta: valida stock de
// todas las líneas, crea la venta con consecutivo diario y descuenta el
// inventario línea por línea, todo en una sola transacción.
type CreateSaleUseCase struct {
	txRunner      SaleTxRunner
	inventoryUC   StockMutator
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	inventoryUC StockMutator,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:      txRunner,
		inventoryUC:   inventoryUC,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// CreateSale crea la venta y descuenta stock por cada línea. Si alguna línea
// no tiene stock suficiente, la operación completa falla sin efecto parcial
// (el error identifica el producto ofensor). Las notificaciones se emiten
// solo después del commit, una por par producto/bodega.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentCash
	}
	switch paymentMethod {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	wh, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	// Validar productos y precios (fuera de la tx, solo lectura)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.Discount.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = product.Price
		}
		productsByID[item.ProductID] = product
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale
	var saleItems []*entity.SaleItem
	events := make([]inventory.StockChangedEvent, 0, len(in.Items))

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Pre-validación dentro de la tx: cada GetForUpdate deja la fila
		// bloqueada, así que un escritor concurrente no puede invalidar la
		// verificación antes del descuento.
		for _, item := range in.Items {
			stock, err := stockRepo.GetForUpdate(item.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(item.Quantity) {
				return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, productsByID[item.ProductID].SKU)
			}
		}

		// 2) Consecutivo diario dentro de la misma tx: SALE-YYYYMMDD-NNNN
		count, err := saleRepo.CountByDay(companyID, now)
		if err != nil {
			return err
		}
		number := fmt.Sprintf("SALE-%s-%04d", now.Format("20060102"), count+1)

		// 3) Totales y cambio
		var subtotal, discountTotal decimal.Decimal
		for _, item := range in.Items {
			subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice))
			discountTotal = discountTotal.Add(item.Discount)
		}
		total := subtotal.Sub(discountTotal)
		change := in.PaymentAmount.Sub(total)
		if change.LessThan(decimal.Zero) {
			change = decimal.Zero
		}

		sale = &entity.Sale{
			ID:            saleID,
			CompanyID:     companyID,
			WarehouseID:   in.WarehouseID,
			Number:        number,
			Status:        entity.SaleStatusCompleted,
			Subtotal:      subtotal,
			DiscountTotal: discountTotal,
			Total:         total,
			PaymentMethod: paymentMethod,
			PaymentAmount: in.PaymentAmount,
			ChangeAmount:  change,
			Notes:         in.Notes,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// 4) Por cada línea: SaleItem + descuento de stock + movimiento `out`
		// referenciando la venta. Un error en cualquier línea revierte todo.
		for _, item := range in.Items {
			product := productsByID[item.ProductID]
			saleItem := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Discount:  item.Discount,
				Subtotal:  item.Quantity.Mul(item.UnitPrice).Sub(item.Discount),
			}
			if err := saleRepo.CreateItem(saleItem); err != nil {
				return err
			}
			saleItems = append(saleItems, saleItem)

			ev, err := uc.inventoryUC.OutInTx(
				movRepo, stockRepo, product,
				in.WarehouseID, userID,
				item.Quantity,
				entity.ReferenceSale, saleID, "venta "+number,
				now,
			)
			if err != nil {
				return err
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit: una notificación por par producto/bodega afectado.
	for _, ev := range events {
		uc.inventoryUC.EmitStockChanged(ctx, ev)
		uc.inventoryUC.EmitLowStock(ctx, productsByID[ev.ProductID], ev.WarehouseID, ev.NewQuantity)
	}

	return toSaleResponse(sale, saleItems), nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		Number:        sale.Number,
		WarehouseID:   sale.WarehouseID,
		Status:        sale.Status,
		Subtotal:      sale.Subtotal,
		DiscountTotal: sale.DiscountTotal,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		PaymentAmount: sale.PaymentAmount,
		ChangeAmount:  sale.ChangeAmount,
		CreatedAt:     sale.CreatedAt,
		VoidedAt:      sale.VoidedAt,
		VoidReason:    sale.VoidReason,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
