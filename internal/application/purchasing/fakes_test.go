package purchasing_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/purchasing"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// Fakes en memoria con los mismos contratos que los repos de Postgres.

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

type fakeStockRepo struct {
	stocks map[string]*entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stocks: map[string]*entity.Stock{}}
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	if s, ok := r.stocks[stockKey(productID, warehouseID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{
		ProductID:        productID,
		WarehouseID:      warehouseID,
		Quantity:         decimal.Zero,
		ReservedQuantity: decimal.Zero,
	}, nil
}

func (r *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.stocks[stockKey(stock.ProductID, stock.WarehouseID)] = &cp
	return nil
}

func (r *fakeStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}

func (r *fakeStockRepo) ListBelowReorderPoint(companyID, warehouseID string) ([]*repository.ReplenishmentRow, error) {
	return nil, nil
}

func (r *fakeStockRepo) snapshot() map[string]*entity.Stock {
	out := make(map[string]*entity.Stock, len(r.stocks))
	for k, v := range r.stocks {
		cp := *v
		out[k] = &cp
	}
	return out
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }

func (r *fakeMovementRepo) ListByProduct(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Search(companyID, q string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func newFakeWarehouseRepo(warehouses ...*entity.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{}}
	for _, w := range warehouses {
		r.warehouses[w.ID] = w
	}
	return r
}

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { return nil }

func (r *fakeWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*entity.PurchaseOrder{}}
}

var _ repository.PurchaseOrderRepository = (*fakeOrderRepo)(nil)

func cloneOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	cp.Items = make([]*entity.PurchaseOrderItem, len(o.Items))
	for i, it := range o.Items {
		itcp := *it
		cp.Items[i] = &itcp
	}
	return &cp
}

func (r *fakeOrderRepo) Create(order *entity.PurchaseOrder) error {
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.orders[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) UpdateStatus(orderID, status string, actualDeliveryDate *time.Time) error {
	o, ok := r.orders[orderID]
	if !ok {
		return nil
	}
	o.Status = status
	if actualDeliveryDate != nil {
		o.ActualDeliveryDate = actualDeliveryDate
	}
	o.UpdatedAt = time.Now()
	return nil
}

func (r *fakeOrderRepo) UpdateItemReceived(itemID string, receivedQuantity decimal.Decimal) error {
	for _, o := range r.orders {
		for _, it := range o.Items {
			if it.ID == itemID {
				it.ReceivedQuantity = receivedQuantity
				return nil
			}
		}
	}
	return nil
}

func (r *fakeOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if o.CompanyID == companyID && (status == "" || o.Status == status) {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) snapshot() map[string]*entity.PurchaseOrder {
	out := make(map[string]*entity.PurchaseOrder, len(r.orders))
	for k, v := range r.orders {
		out[k] = cloneOrder(v)
	}
	return out
}

// fakePurchaseTxRunner pasa los repos en memoria a fn y simula el rollback de
// stocks, movimientos, costos y órdenes cuando fn falla.
type fakePurchaseTxRunner struct {
	stockRepo   *fakeStockRepo
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
}

var _ purchasing.PurchaseTxRunner = (*fakePurchaseTxRunner)(nil)

func (r *fakePurchaseTxRunner) RunPurchase(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	stocksBefore := r.stockRepo.snapshot()
	movsBefore := len(r.movRepo.movements)
	ordersBefore := r.orderRepo.snapshot()
	costsBefore := make(map[string]decimal.Decimal, len(r.productRepo.products))
	for id, p := range r.productRepo.products {
		costsBefore[id] = p.Cost
	}
	if err := fn(r.movRepo, r.stockRepo, r.productRepo, r.orderRepo); err != nil {
		r.stockRepo.stocks = stocksBefore
		r.movRepo.movements = r.movRepo.movements[:movsBefore]
		r.orderRepo.orders = ordersBefore
		for id, cost := range costsBefore {
			r.productRepo.products[id].Cost = cost
		}
		return err
	}
	return nil
}
