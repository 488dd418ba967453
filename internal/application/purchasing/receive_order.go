package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	appinventory "github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	dominventory "github.com/jhoicas/Bodega-api/internal/domain/inventory"
	purchasingdom "github.com/jhoicas/Bodega-api/internal/domain/purchasing"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ReceiveOrderUseCase registra la recepción física de mercancía contra una
// orden de compra: acumula lo recibido por línea, suma stock en la bodega
// destino con su movimiento `in`, actualiza el costo promedio del producto y
// converge el estado de la orden, todo en una sola transacción.
type ReceiveOrderUseCase struct {
	txRunner    PurchaseTxRunner
	inventoryUC StockReceiver
}

// NewReceiveOrderUseCase construye el caso de uso.
func NewReceiveOrderUseCase(txRunner PurchaseTxRunner, inventoryUC StockReceiver) *ReceiveOrderUseCase {
	return &ReceiveOrderUseCase{txRunner: txRunner, inventoryUC: inventoryUC}
}

// ReceiveOrder procesa las líneas recibidas de la orden orderID.
// Solo opera sobre órdenes approved u ordered (ErrInvalidState en otro caso).
// Una línea que excedería su cantidad ordenada rechaza la recepción completa.
// Si todas las líneas quedan completas la orden pasa a received y se estampa
// la fecha real de entrega; si no, queda en ordered (parcialmente recibida).
func (uc *ReceiveOrderUseCase) ReceiveOrder(ctx context.Context, companyID, userID, orderID string, in dto.ReceiveOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if orderID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ItemID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	var order *entity.PurchaseOrder
	var events []appinventory.StockChangedEvent

	err := uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		// Bloquea la cabecera: recepciones concurrentes sobre la misma orden
		// se serializan aquí.
		var err error
		order, err = orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if !purchasingdom.CanReceive(order.Status) {
			return domain.ErrInvalidState
		}

		itemsByID := make(map[string]*entity.PurchaseOrderItem, len(order.Items))
		for _, it := range order.Items {
			itemsByID[it.ID] = it
		}

		for _, recv := range in.Items {
			item, ok := itemsByID[recv.ItemID]
			if !ok {
				return fmt.Errorf("%w: línea %s no pertenece a la orden", domain.ErrInvalidInput, recv.ItemID)
			}
			// Guardia de sobre-recepción: recibido nunca supera lo ordenado
			if item.ReceivedQuantity.Add(recv.Quantity).GreaterThan(item.OrderedQuantity) {
				return fmt.Errorf("%w: línea %s excedería la cantidad ordenada", domain.ErrInvalidState, recv.ItemID)
			}

			product, err := productRepo.GetByID(item.ProductID)
			if err != nil || product == nil {
				return domain.ErrNotFound
			}

			notes := "recepción orden de compra, proveedor " + order.SupplierName
			if recv.ExpiryDate != nil {
				notes += ", vence " + recv.ExpiryDate.Format("2006-01-02")
			}
			ev, err := uc.inventoryUC.InInTx(
				movRepo, stockRepo, product,
				order.WarehouseID, userID,
				recv.Quantity,
				entity.ReferencePurchaseOrder, orderID, notes,
				recv.Location, recv.BatchNumber,
				now,
			)
			if err != nil {
				return err
			}
			events = append(events, ev)

			// Costo promedio ponderado sobre el stock previo a la entrada
			newCost := dominventory.CostCalculator(ev.PreviousQuantity, product.Cost, recv.Quantity, item.UnitCost)
			if err := productRepo.UpdateCost(product.ID, newCost); err != nil {
				return err
			}

			item.ReceivedQuantity = item.ReceivedQuantity.Add(recv.Quantity)
			if err := orderRepo.UpdateItemReceived(item.ID, item.ReceivedQuantity); err != nil {
				return err
			}
		}

		// Convergencia de estado: received si toda línea completó lo ordenado,
		// ordered si la recepción fue parcial (approved pasa implícito a ordered).
		if order.FullyReceived() {
			order.Status = purchasingdom.StatusReceived
			order.ActualDeliveryDate = &now
			return orderRepo.UpdateStatus(orderID, order.Status, &now)
		}
		order.Status = purchasingdom.StatusOrdered
		return orderRepo.UpdateStatus(orderID, order.Status, nil)
	})
	if err != nil {
		return nil, err
	}

	// Post-commit: una notificación por entrada de stock.
	for _, ev := range events {
		uc.inventoryUC.EmitStockChanged(ctx, ev)
	}
	return toOrderResponse(order), nil
}
