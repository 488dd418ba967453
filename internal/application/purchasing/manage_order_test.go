package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	purchasingdom "github.com/jhoicas/Bodega-api/internal/domain/purchasing"
)

func TestCreateOrder_NaceEnDraft(t *testing.T) {
	f := newPurchaseFixture()

	resp, err := f.orderUC.CreateOrder(context.Background(), companyID, userID, dto.CreatePurchaseOrderRequest{
		WarehouseID:  warehouseID,
		SupplierName: "Distribuidora Andina",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(200)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, purchasingdom.StatusDraft, resp.Status)
	assert.Equal(t, "Distribuidora Andina", resp.SupplierName)
	require.Len(t, resp.Items, 1)
	assert.NotEmpty(t, resp.Items[0].ID)
	assert.True(t, decimal.Zero.Equal(resp.Items[0].ReceivedQuantity))
}

func TestCreateOrder_Validaciones(t *testing.T) {
	f := newPurchaseFixture()
	ctx := context.Background()

	_, err := f.orderUC.CreateOrder(ctx, companyID, userID, dto.CreatePurchaseOrderRequest{
		WarehouseID: warehouseID, SupplierName: "Proveedor",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.orderUC.CreateOrder(ctx, companyID, userID, dto.CreatePurchaseOrderRequest{
		WarehouseID: warehouseID, SupplierName: "Proveedor",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: cafeID, Quantity: decimal.Zero, UnitCost: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = f.orderUC.CreateOrder(ctx, companyID, userID, dto.CreatePurchaseOrderRequest{
		WarehouseID: warehouseID, SupplierName: "Proveedor",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "no-existe", Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

func TestOrder_FlujoDeEstados(t *testing.T) {
	f := newPurchaseFixture()
	ctx := context.Background()

	resp, err := f.orderUC.CreateOrder(ctx, companyID, userID, dto.CreatePurchaseOrderRequest{
		WarehouseID:  warehouseID,
		SupplierName: "Distribuidora Andina",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	// Aprobar desde draft viola la máquina de estados.
	assert.ErrorIs(t, f.orderUC.Approve(ctx, companyID, resp.ID), domain.ErrInvalidState)

	require.NoError(t, f.orderUC.Submit(ctx, companyID, resp.ID))
	require.NoError(t, f.orderUC.Approve(ctx, companyID, resp.ID))
	require.NoError(t, f.orderUC.MarkOrdered(ctx, companyID, resp.ID))

	// Una orden ya pedida al proveedor no se cancela.
	assert.ErrorIs(t, f.orderUC.Cancel(ctx, companyID, resp.ID), domain.ErrInvalidState)

	current, err := f.orderUC.GetOrder(ctx, companyID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, purchasingdom.StatusOrdered, current.Status)
}

func TestOrder_CancelarEnDraft(t *testing.T) {
	f := newPurchaseFixture()
	ctx := context.Background()

	resp, err := f.orderUC.CreateOrder(ctx, companyID, userID, dto.CreatePurchaseOrderRequest{
		WarehouseID:  warehouseID,
		SupplierName: "Distribuidora Andina",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, f.orderUC.Cancel(ctx, companyID, resp.ID))

	current, err := f.orderUC.GetOrder(ctx, companyID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, purchasingdom.StatusCancelled, current.Status)
}

func TestOrder_DeOtraEmpresa(t *testing.T) {
	f := newPurchaseFixture()
	ctx := context.Background()

	resp, err := f.orderUC.CreateOrder(ctx, companyID, userID, dto.CreatePurchaseOrderRequest{
		WarehouseID:  warehouseID,
		SupplierName: "Distribuidora Andina",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	_, err = f.orderUC.GetOrder(ctx, "otra-empresa", resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.orderUC.Submit(ctx, "otra-empresa", resp.ID), domain.ErrNotFound)
}

func TestListOrders_FiltroPorEstado(t *testing.T) {
	f := newPurchaseFixture()
	ctx := context.Background()

	in := dto.CreatePurchaseOrderRequest{
		WarehouseID:  warehouseID,
		SupplierName: "Distribuidora Andina",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: cafeID, Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(100)},
		},
	}
	first, err := f.orderUC.CreateOrder(ctx, companyID, userID, in)
	require.NoError(t, err)
	_, err = f.orderUC.CreateOrder(ctx, companyID, userID, in)
	require.NoError(t, err)
	require.NoError(t, f.orderUC.Submit(ctx, companyID, first.ID))

	pending, err := f.orderUC.ListOrders(ctx, companyID, purchasingdom.StatusPending, 50, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := f.orderUC.ListOrders(ctx, companyID, "", 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.orderUC.ListOrders(ctx, companyID, "shipped", 50, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido")
}
