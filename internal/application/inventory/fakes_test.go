package inventory_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismos contratos que los repos de Postgres, incluida la
// creación perezosa del stock en cero y el rollback del TxRunner.
// ──────────────────────────────────────────────────────────────────────────────

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

type fakeStockRepo struct {
	stocks        map[string]*entity.Stock
	replenishRows []*repository.ReplenishmentRow
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
	// Registro perezoso en cero, igual que el repo real ante ErrNoRows.
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
	var out []*entity.Stock
	for _, s := range r.stocks {
		if s.WarehouseID == warehouseID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListBelowReorderPoint(companyID, warehouseID string) ([]*repository.ReplenishmentRow, error) {
	return r.replenishRows, nil
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

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID && (warehouseID == "" || m.WarehouseID == warehouseID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out, nil
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

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
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
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Search(companyID, q string, limit, offset int) ([]*entity.Product, error) {
	return r.ListByCompany(companyID, limit, offset)
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

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }

func (r *fakeWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

// fakeTxRunner pasa los repos en memoria a fn y simula el rollback: si fn
// falla, restaura el estado previo de stocks y movimientos.
type fakeTxRunner struct {
	stockRepo   *fakeStockRepo
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	stocksBefore := r.stockRepo.snapshot()
	movsBefore := len(r.movRepo.movements)
	if err := fn(r.movRepo, r.stockRepo, r.productRepo); err != nil {
		r.stockRepo.stocks = stocksBefore
		r.movRepo.movements = r.movRepo.movements[:movsBefore]
		return err
	}
	return nil
}

// fakeNotifier acumula los eventos publicados; con fail simula un transporte caído.
type fakeNotifier struct {
	fail     bool
	changed  []inventory.StockChangedEvent
	lowStock []inventory.LowStockEvent
}

var _ inventory.Notifier = (*fakeNotifier)(nil)

func (n *fakeNotifier) StockChanged(ctx context.Context, ev inventory.StockChangedEvent) error {
	if n.fail {
		return context.DeadlineExceeded
	}
	n.changed = append(n.changed, ev)
	return nil
}

func (n *fakeNotifier) LowStockAlert(ctx context.Context, ev inventory.LowStockEvent) error {
	if n.fail {
		return context.DeadlineExceeded
	}
	n.lowStock = append(n.lowStock, ev)
	return nil
}
