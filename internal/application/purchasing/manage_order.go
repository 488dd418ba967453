package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	purchasingdom "github.com/jhoicas/Bodega-api/internal/domain/purchasing"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// OrderUseCase administra el ciclo de vida de una orden de compra:
// draft → pending → approved → ordered → received, con cancelled alcanzable
// antes de ordenar. Toda transición pasa por la tabla de purchasing.CanTransition.
type OrderUseCase struct {
	orderRepo     repository.PurchaseOrderRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// CreateOrder crea una orden en estado draft con sus líneas.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, companyID, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.WarehouseID == "" || in.SupplierName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	wh, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:                   uuid.New().String(),
		CompanyID:            companyID,
		WarehouseID:          in.WarehouseID,
		SupplierName:         in.SupplierName,
		Status:               purchasingdom.StatusDraft,
		Notes:                in.Notes,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		CreatedAt:            now,
		UpdatedAt:            now,
		CreatedBy:            userID,
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		order.Items = append(order.Items, &entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			OrderedQuantity: item.Quantity,
			UnitCost:        item.UnitCost,
		})
	}

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetOrder devuelve la orden con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, companyID, orderID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.getOwned(companyID, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListOrders lista las órdenes de la empresa, opcionalmente por estado.
func (uc *OrderUseCase) ListOrders(ctx context.Context, companyID, status string, limit, offset int) ([]*dto.PurchaseOrderResponse, error) {
	if status != "" && !purchasingdom.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	orders, err := uc.orderRepo.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// Submit pasa draft → pending.
func (uc *OrderUseCase) Submit(ctx context.Context, companyID, orderID string) error {
	return uc.transition(companyID, orderID, purchasingdom.StatusPending)
}

// Approve pasa pending → approved.
func (uc *OrderUseCase) Approve(ctx context.Context, companyID, orderID string) error {
	return uc.transition(companyID, orderID, purchasingdom.StatusApproved)
}

// MarkOrdered pasa approved → ordered (la orden fue enviada al proveedor).
func (uc *OrderUseCase) MarkOrdered(ctx context.Context, companyID, orderID string) error {
	return uc.transition(companyID, orderID, purchasingdom.StatusOrdered)
}

// Cancel cancela la orden si su estado lo permite (antes de ordenar).
func (uc *OrderUseCase) Cancel(ctx context.Context, companyID, orderID string) error {
	return uc.transition(companyID, orderID, purchasingdom.StatusCancelled)
}

// transition valida contra la tabla de transiciones y persiste el nuevo estado.
func (uc *OrderUseCase) transition(companyID, orderID, to string) error {
	order, err := uc.getOwned(companyID, orderID)
	if err != nil {
		return err
	}
	if !purchasingdom.CanTransition(order.Status, to) {
		return domain.ErrInvalidState
	}
	return uc.orderRepo.UpdateStatus(orderID, to, nil)
}

func (uc *OrderUseCase) getOwned(companyID, orderID string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func toOrderResponse(order *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:                   order.ID,
		WarehouseID:          order.WarehouseID,
		SupplierName:         order.SupplierName,
		Status:               order.Status,
		Notes:                order.Notes,
		ExpectedDeliveryDate: order.ExpectedDeliveryDate,
		ActualDeliveryDate:   order.ActualDeliveryDate,
		CreatedAt:            order.CreatedAt,
	}
	for _, it := range order.Items {
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			OrderedQuantity:  it.OrderedQuantity,
			ReceivedQuantity: it.ReceivedQuantity,
			UnitCost:         it.UnitCost,
		})
	}
	return resp
}
