package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/sales"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

const (
	companyID      = "11111111-1111-1111-1111-111111111111"
	otherCompanyID = "99999999-9999-9999-9999-999999999999"
	userID         = "22222222-2222-2222-2222-222222222222"
	cafeID         = "33333333-3333-3333-3333-333333333333"
	azucarID       = "66666666-6666-6666-6666-666666666666"
	warehouseID    = "44444444-4444-4444-4444-444444444444"
)

// recordingNotifier acumula los eventos publicados tras el commit.
type recordingNotifier struct {
	changed  []inventory.StockChangedEvent
	lowStock []inventory.LowStockEvent
}

func (n *recordingNotifier) StockChanged(ctx context.Context, ev inventory.StockChangedEvent) error {
	n.changed = append(n.changed, ev)
	return nil
}

func (n *recordingNotifier) LowStockAlert(ctx context.Context, ev inventory.LowStockEvent) error {
	n.lowStock = append(n.lowStock, ev)
	return nil
}

type saleFixture struct {
	createUC  *sales.CreateSaleUseCase
	voidUC    *sales.VoidSaleUseCase
	stocks    *fakeStockRepo
	movements *fakeMovementRepo
	saleRepo  *fakeSaleRepo
	notifier  *recordingNotifier
}

func newSaleFixture() *saleFixture {
	cafe := &entity.Product{
		ID: cafeID, CompanyID: companyID, SKU: "CAF-250",
		Name: "Café molido 250g", Price: decimal.NewFromInt(18500),
	}
	azucar := &entity.Product{
		ID: azucarID, CompanyID: companyID, SKU: "AZU-1000",
		Name: "Azúcar blanca 1kg", Price: decimal.NewFromInt(6200),
	}
	stocks := newFakeStockRepo()
	movements := &fakeMovementRepo{}
	products := newFakeProductRepo(cafe, azucar)
	warehouses := newFakeWarehouseRepo(
		&entity.Warehouse{ID: warehouseID, CompanyID: companyID, Name: "Punto Norte"},
	)
	saleRepo := newFakeSaleRepo()
	notifier := &recordingNotifier{}
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	// El motor de inventario real compone OutInTx/InInTx dentro de la tx de ventas.
	stockUC := inventory.NewStockUseCase(nil, products, warehouses, notifier, log)
	runner := &fakeSaleTxRunner{
		stockRepo: stocks, movRepo: movements,
		productRepo: products, saleRepo: saleRepo,
	}

	return &saleFixture{
		createUC:  sales.NewCreateSaleUseCase(runner, stockUC, products, warehouses),
		voidUC:    sales.NewVoidSaleUseCase(runner, stockUC, saleRepo),
		stocks:    stocks,
		movements: movements,
		saleRepo:  saleRepo,
		notifier:  notifier,
	}
}

func (f *saleFixture) quantity(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	s, err := f.stocks.Get(productID, warehouseID)
	require.NoError(t, err)
	return s.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_Multilinea(t *testing.T) {
	f := newSaleFixture()
	f.stocks.seed(cafeID, warehouseID, 10)
	f.stocks.seed(azucarID, warehouseID, 20)

	resp, err := f.createUC.CreateSale(context.Background(), companyID, userID, dto.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []dto.SaleItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(2)},
			{ProductID: azucarID, Quantity: decimal.NewFromInt(3)},
		},
		PaymentMethod: entity.PaymentCash,
		PaymentAmount: decimal.NewFromInt(60000),
	})
	require.NoError(t, err)

	// Totales: 2*18500 + 3*6200 = 55600; cambio 4400
	assert.True(t, decimal.NewFromInt(55600).Equal(resp.Total), "total fue %s", resp.Total)
	assert.True(t, decimal.NewFromInt(4400).Equal(resp.ChangeAmount))
	assert.Equal(t, entity.SaleStatusCompleted, resp.Status)
	assert.Len(t, resp.Items, 2)

	// Consecutivo diario
	expected := fmt.Sprintf("SALE-%s-0001", time.Now().Format("20060102"))
	assert.Equal(t, expected, resp.Number)

	// Stock descontado línea por línea
	assert.True(t, decimal.NewFromInt(8).Equal(f.quantity(t, cafeID)))
	assert.True(t, decimal.NewFromInt(17).Equal(f.quantity(t, azucarID)))

	// Un movimiento `out` por línea, todos referenciando la venta
	movs, err := f.movements.ListByReference(entity.ReferenceSale, resp.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.DirectionOut, m.Direction)
		assert.Equal(t, userID, m.CreatedBy)
	}

	// Una notificación por par producto/bodega, después del commit
	assert.Len(t, f.notifier.changed, 2)
}

func TestCreateSale_PrecioCeroUsaPrecioDelProducto(t *testing.T) {
	f := newSaleFixture()
	f.stocks.seed(cafeID, warehouseID, 10)

	resp, err := f.createUC.CreateSale(context.Background(), companyID, userID, dto.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []dto.SaleItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(1)},
		},
		PaymentAmount: decimal.NewFromInt(18500),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(18500).Equal(resp.Items[0].UnitPrice),
		"precio en cero debe reemplazarse por el del producto")
}

func TestCreateSale_PagoMenorAlTotal_CambioEnCero(t *testing.T) {
	f := newSaleFixture()
	f.stocks.seed(cafeID, warehouseID, 10)

	resp, err := f.createUC.CreateSale(context.Background(), companyID, userID, dto.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []dto.SaleItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(2)},
		},
		PaymentMethod: entity.PaymentCard, // con tarjeta el monto puede ser parcial
		PaymentAmount: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	assert.True(t, decimal.Zero.Equal(resp.ChangeAmount),
		"el cambio nunca es negativo")
}

func TestCreateSale_DescuentoPorLinea(t *testing.T) {
	f := newSaleFixture()
	f.stocks.seed(cafeID, warehouseID, 10)

	resp, err := f.createUC.CreateSale(context.Background(), companyID, userID, dto.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []dto.SaleItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(2), Discount: decimal.NewFromInt(1000)},
		},
		PaymentAmount: decimal.NewFromInt(40000),
	})
	require.NoError(t, err)
	// subtotal 37000, descuento 1000, total 36000
	assert.True(t, decimal.NewFromInt(37000).Equal(resp.Subtotal))
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.DiscountTotal))
	assert.True(t, decimal.NewFromInt(36000).Equal(resp.Total))
	assert.True(t, decimal.NewFromInt(36000).Equal(resp.Items[0].Subtotal))
}

func TestCreateSale_StockInsuficienteEnUnaLinea_NadaSePersiste(t *testing.T) {
	f := newSaleFixture()
	f.stocks.seed(cafeID, warehouseID, 10)
	f.stocks.seed(azucarID, warehouseID, 1)

	_, err := f.createUC.CreateSale(context.Background(), companyID, userID, dto.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []dto.SaleItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(2)},
			{ProductID: azucarID, Quantity: decimal.NewFromInt(5)}, // no alcanza
		},
		PaymentAmount: decimal.NewFromInt(100000),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "AZU-1000",
		"el error debe identificar el producto ofensor")

	// Sin efecto parcial: stock intacto, sin venta, sin movimientos, sin eventos
	assert.True(t, decimal.NewFromInt(10).Equal(f.quantity(t, cafeID)))
	assert.True(t, decimal.NewFromInt(1).Equal(f.quantity(t, azucarID)))
	assert.Empty(t, f.saleRepo.sales)
	assert.Empty(t, f.movements.movements)
	assert.Empty(t, f.notifier.changed)
}

func TestCreateSale_ConsecutivoDiarioIncrementa(t *testing.T) {
	f := newSaleFixture()
	f.stocks.seed(cafeID, warehouseID, 10)
	ctx := context.Background()

	in := dto.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []dto.SaleItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(1)},
		},
		PaymentAmount: decimal.NewFromInt(20000),
	}
	first, err := f.createUC.CreateSale(ctx, companyID, userID, in)
	require.NoError(t, err)
	second, err := f.createUC.CreateSale(ctx, companyID, userID, in)
	require.NoError(t, err)

	day := time.Now().Format("20060102")
	assert.Equal(t, "SALE-"+day+"-0001", first.Number)
	assert.Equal(t, "SALE-"+day+"-0002", second.Number)
}

func TestCreateSale_EntradasInvalidas(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
	}{
		{"sin bodega", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: cafeID, Quantity: decimal.NewFromInt(1)}},
		}},
		{"sin líneas", dto.CreateSaleRequest{WarehouseID: warehouseID}},
		{"método de pago desconocido", dto.CreateSaleRequest{
			WarehouseID:   warehouseID,
			Items:         []dto.SaleItemRequest{{ProductID: cafeID, Quantity: decimal.NewFromInt(1)}},
			PaymentMethod: "cheque",
		}},
		{"cantidad cero", dto.CreateSaleRequest{
			WarehouseID: warehouseID,
			Items:       []dto.SaleItemRequest{{ProductID: cafeID, Quantity: decimal.Zero}},
		}},
		{"descuento negativo", dto.CreateSaleRequest{
			WarehouseID: warehouseID,
			Items: []dto.SaleItemRequest{
				{ProductID: cafeID, Quantity: decimal.NewFromInt(1), Discount: decimal.NewFromInt(-5)},
			},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.createUC.CreateSale(ctx, companyID, userID, c.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateSale_ProductoDeOtraEmpresa(t *testing.T) {
	f := newSaleFixture()
	f.stocks.seed(cafeID, warehouseID, 10)

	_, err := f.createUC.CreateSale(context.Background(), otherCompanyID, userID, dto.CreateSaleRequest{
		WarehouseID: warehouseID,
		Items: []dto.SaleItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(1)},
		},
		PaymentAmount: decimal.NewFromInt(20000),
	})
	// La bodega tampoco pertenece a la otra empresa, así que cae primero en NotFound.
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
