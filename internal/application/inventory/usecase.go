package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// StockUseCase es el motor de mutación de stock: ajustes manuales y traslados
// entre bodegas, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Cada mutación escribe el registro de stock y su movimiento en la misma
// transacción; las notificaciones se publican solo después del Commit.
type StockUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	notifier      Notifier
	log           *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	notifier Notifier,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		notifier:      notifier,
		log:           log,
	}
}

// AdjustInput entrada para un ajuste manual de stock.
// Quantity es el delta con signo; Location/BatchNumber actualizan los atributos
// descriptivos del registro si vienen con valor.
type AdjustInput struct {
	CompanyID   string
	UserID      string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	Reason      string
	Location    string
	BatchNumber string
}

// TransferInput entrada para un traslado entre bodegas.
type TransferInput struct {
	CompanyID       string
	UserID          string
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
	Notes           string
}

// Adjust aplica un delta con signo al stock de un producto en una bodega.
// Crea el registro en cero si no existe; falla con ErrInsufficientStock si el
// resultado sería negativo. Tras el commit emite stock_changed y, si la nueva
// cantidad queda en o bajo el punto de reorden, low_stock.
func (uc *StockUseCase) Adjust(ctx context.Context, input AdjustInput) error {
	if input.ProductID == "" || input.WarehouseID == "" || input.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return domain.ErrForbidden
	}
	wh, _ := uc.warehouseRepo.GetByID(input.WarehouseID)
	if wh == nil || wh.CompanyID != input.CompanyID {
		return domain.ErrNotFound
	}

	now := time.Now()
	refID := uuid.New().String()
	var ev StockChangedEvent

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		// Bloquea la fila de stock (SELECT FOR UPDATE) para serializar el
		// read-modify-write frente a escritores concurrentes.
		stock, err := stockRepo.GetForUpdate(input.ProductID, input.WarehouseID)
		if err != nil {
			return err
		}
		prev := stock.Quantity
		newQty := prev.Add(input.Quantity)
		if newQty.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, product.SKU)
		}

		direction := entity.DirectionIn
		if input.Quantity.LessThan(decimal.Zero) {
			direction = entity.DirectionOut
		}

		stock.Quantity = newQty
		stock.UpdatedAt = now
		if input.Location != "" {
			stock.Location = input.Location
		}
		if input.BatchNumber != "" {
			stock.BatchNumber = input.BatchNumber
		}
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ProductID:        input.ProductID,
			WarehouseID:      input.WarehouseID,
			Direction:        direction,
			Quantity:         input.Quantity.Abs(),
			PreviousQuantity: prev,
			NewQuantity:      newQty,
			ReferenceType:    entity.ReferenceAdjustment,
			ReferenceID:      refID,
			Notes:            input.Reason,
			CreatedAt:        now,
			CreatedBy:        input.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		ev = StockChangedEvent{
			ProductID:        input.ProductID,
			WarehouseID:      input.WarehouseID,
			PreviousQuantity: prev,
			NewQuantity:      newQty,
			Direction:        direction,
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Fuera de la transacción: la mutación ya está confirmada.
	uc.EmitStockChanged(ctx, ev)
	uc.EmitLowStock(ctx, product, input.WarehouseID, ev.NewQuantity)
	return nil
}

// Transfer mueve cantidad entre dos bodegas del mismo producto. Descuenta del
// origen y suma en el destino (creándolo en cero si no existe) en una sola
// transacción; escribe dos movimientos que comparten la misma correlación.
func (uc *StockUseCase) Transfer(ctx context.Context, input TransferInput) error {
	if input.ProductID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if input.FromWarehouseID == input.ToWarehouseID || !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return domain.ErrForbidden
	}
	fromWh, _ := uc.warehouseRepo.GetByID(input.FromWarehouseID)
	toWh, _ := uc.warehouseRepo.GetByID(input.ToWarehouseID)
	if fromWh == nil || toWh == nil || fromWh.CompanyID != input.CompanyID || toWh.CompanyID != input.CompanyID {
		return domain.ErrNotFound
	}

	now := time.Now()
	refID := uuid.New().String() // correlación compartida por los dos movimientos
	var outEv, inEv StockChangedEvent

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		origin, err := stockRepo.GetForUpdate(input.ProductID, input.FromWarehouseID)
		if err != nil {
			return err
		}
		if origin.Quantity.LessThan(input.Quantity) {
			return fmt.Errorf("%w: producto %s en bodega %s", domain.ErrInsufficientStock, product.SKU, fromWh.Name)
		}
		dest, err := stockRepo.GetForUpdate(input.ProductID, input.ToWarehouseID)
		if err != nil {
			return err
		}

		prevOrigin := origin.Quantity
		prevDest := dest.Quantity
		origin.Quantity = prevOrigin.Sub(input.Quantity)
		dest.Quantity = prevDest.Add(input.Quantity)
		origin.UpdatedAt = now
		dest.UpdatedAt = now
		if err := stockRepo.Upsert(origin); err != nil {
			return err
		}
		if err := stockRepo.Upsert(dest); err != nil {
			return err
		}

		notes := input.Notes
		outNotes := "traslado hacia bodega " + toWh.Name
		inNotes := "traslado desde bodega " + fromWh.Name
		if notes != "" {
			outNotes += ": " + notes
			inNotes += ": " + notes
		}

		outMov := &entity.StockMovement{
			ProductID:        input.ProductID,
			WarehouseID:      input.FromWarehouseID,
			Direction:        entity.DirectionOut,
			Quantity:         input.Quantity,
			PreviousQuantity: prevOrigin,
			NewQuantity:      origin.Quantity,
			ReferenceType:    entity.ReferenceTransfer,
			ReferenceID:      refID,
			Notes:            outNotes,
			CreatedAt:        now,
			CreatedBy:        input.UserID,
		}
		if err := movRepo.Create(outMov); err != nil {
			return err
		}
		inMov := &entity.StockMovement{
			ProductID:        input.ProductID,
			WarehouseID:      input.ToWarehouseID,
			Direction:        entity.DirectionIn,
			Quantity:         input.Quantity,
			PreviousQuantity: prevDest,
			NewQuantity:      dest.Quantity,
			ReferenceType:    entity.ReferenceTransfer,
			ReferenceID:      refID,
			Notes:            inNotes,
			CreatedAt:        now,
			CreatedBy:        input.UserID,
		}
		if err := movRepo.Create(inMov); err != nil {
			return err
		}

		outEv = StockChangedEvent{
			ProductID: input.ProductID, WarehouseID: input.FromWarehouseID,
			PreviousQuantity: prevOrigin, NewQuantity: origin.Quantity,
			Direction: entity.DirectionOut,
		}
		inEv = StockChangedEvent{
			ProductID: input.ProductID, WarehouseID: input.ToWarehouseID,
			PreviousQuantity: prevDest, NewQuantity: dest.Quantity,
			Direction: entity.DirectionIn,
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.EmitStockChanged(ctx, outEv)
	uc.EmitStockChanged(ctx, inEv)
	uc.EmitLowStock(ctx, product, input.FromWarehouseID, outEv.NewQuantity)
	return nil
}

// OutInTx ejecuta una salida de stock usando los repositorios del caller (misma
// transacción). Lo usan otros casos de uso (ventas) para componer la mutación
// dentro de su propia tx. Devuelve el evento a emitir después del commit.
func (uc *StockUseCase) OutInTx(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	product *entity.Product,
	warehouseID, userID string,
	quantity decimal.Decimal,
	referenceType, referenceID, notes string,
	now time.Time,
) (StockChangedEvent, error) {
	var ev StockChangedEvent
	stock, err := stockRepo.GetForUpdate(product.ID, warehouseID)
	if err != nil {
		return ev, err
	}
	if stock.Quantity.LessThan(quantity) {
		return ev, fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, product.SKU)
	}
	prev := stock.Quantity
	stock.Quantity = prev.Sub(quantity)
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return ev, err
	}
	mov := &entity.StockMovement{
		ProductID:        product.ID,
		WarehouseID:      warehouseID,
		Direction:        entity.DirectionOut,
		Quantity:         quantity,
		PreviousQuantity: prev,
		NewQuantity:      stock.Quantity,
		ReferenceType:    referenceType,
		ReferenceID:      referenceID,
		Notes:            notes,
		CreatedAt:        now,
		CreatedBy:        userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return ev, err
	}
	ev = StockChangedEvent{
		ProductID: product.ID, WarehouseID: warehouseID,
		PreviousQuantity: prev, NewQuantity: stock.Quantity,
		Direction: entity.DirectionOut,
	}
	return ev, nil
}

// InInTx ejecuta una entrada de stock usando los repositorios del caller (misma
// transacción). Lo usan recepción de compras (referencia purchase_order) y
// anulación de ventas (referencia return). location/batch actualizan los
// atributos descriptivos del registro si vienen con valor.
func (uc *StockUseCase) InInTx(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	product *entity.Product,
	warehouseID, userID string,
	quantity decimal.Decimal,
	referenceType, referenceID, notes, location, batchNumber string,
	now time.Time,
) (StockChangedEvent, error) {
	var ev StockChangedEvent
	stock, err := stockRepo.GetForUpdate(product.ID, warehouseID)
	if err != nil {
		return ev, err
	}
	prev := stock.Quantity
	stock.Quantity = prev.Add(quantity)
	stock.UpdatedAt = now
	if location != "" {
		stock.Location = location
	}
	if batchNumber != "" {
		stock.BatchNumber = batchNumber
	}
	if err := stockRepo.Upsert(stock); err != nil {
		return ev, err
	}
	mov := &entity.StockMovement{
		ProductID:        product.ID,
		WarehouseID:      warehouseID,
		Direction:        entity.DirectionIn,
		Quantity:         quantity,
		PreviousQuantity: prev,
		NewQuantity:      stock.Quantity,
		ReferenceType:    referenceType,
		ReferenceID:      referenceID,
		Notes:            notes,
		CreatedAt:        now,
		CreatedBy:        userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return ev, err
	}
	ev = StockChangedEvent{
		ProductID: product.ID, WarehouseID: warehouseID,
		PreviousQuantity: prev, NewQuantity: stock.Quantity,
		Direction: entity.DirectionIn,
	}
	return ev, nil
}

// EmitStockChanged publica el evento stock_changed tras el commit.
// Un fallo del transporte solo se loggea: la mutación ya está confirmada.
func (uc *StockUseCase) EmitStockChanged(ctx context.Context, ev StockChangedEvent) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.StockChanged(ctx, ev); err != nil {
		uc.log.Warn().Err(err).
			Str("product_id", ev.ProductID).
			Str("warehouse_id", ev.WarehouseID).
			Msg("notificación stock_changed falló (mutación ya confirmada)")
	}
}

// EmitLowStock publica low_stock si la nueva cantidad quedó en o bajo el punto
// de reorden del producto. Mismo contrato best-effort que EmitStockChanged.
func (uc *StockUseCase) EmitLowStock(ctx context.Context, product *entity.Product, warehouseID string, newQuantity decimal.Decimal) {
	if uc.notifier == nil || newQuantity.GreaterThan(product.ReorderPoint) {
		return
	}
	ev := LowStockEvent{
		ProductID:       product.ID,
		ProductName:     product.Name,
		CurrentQuantity: newQuantity,
		ReorderPoint:    product.ReorderPoint,
		WarehouseID:     warehouseID,
	}
	if err := uc.notifier.LowStockAlert(ctx, ev); err != nil {
		uc.log.Warn().Err(err).
			Str("product_id", product.ID).
			Str("warehouse_id", warehouseID).
			Msg("notificación low_stock falló (mutación ya confirmada)")
	}
}
