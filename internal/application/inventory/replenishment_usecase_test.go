package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

func TestGenerateReplenishmentList_SugiereHastaElStockIdeal(t *testing.T) {
	stocks := newFakeStockRepo()
	stocks.replenishRows = []*repository.ReplenishmentRow{
		{
			ProductID:    productID,
			SKU:          "CAF-250",
			ProductName:  "Café molido 250g",
			WarehouseID:  warehouseAID,
			CurrentStock: decimal.NewFromInt(4),
			ReorderPoint: decimal.NewFromInt(10),
			UnitCost:     decimal.NewFromInt(11200),
		},
	}
	uc := inventory.NewReplenishmentUseCase(stocks)

	out, err := uc.GenerateReplenishmentList(context.Background(), companyID, warehouseAID)
	require.NoError(t, err)
	require.Len(t, out, 1)

	s := out[0]
	// Ideal 1.5x el punto de reorden: 15; sugerido 15 - 4 = 11.
	assert.True(t, decimal.NewFromInt(15).Equal(s.IdealStock), "ideal fue %s", s.IdealStock)
	assert.True(t, decimal.NewFromInt(11).Equal(s.SuggestedOrderQty))
	assert.True(t, decimal.NewFromInt(123200).Equal(s.EstimatedOrderCost),
		"11 * 11200 = 123200, dio %s", s.EstimatedOrderCost)
}

func TestGenerateReplenishmentList_SugeridoNuncaNegativo(t *testing.T) {
	stocks := newFakeStockRepo()
	stocks.replenishRows = []*repository.ReplenishmentRow{
		{
			ProductID:    productID,
			SKU:          "AZU-1000",
			WarehouseID:  warehouseAID,
			CurrentStock: decimal.NewFromInt(10), // justo en el punto de reorden
			ReorderPoint: decimal.NewFromInt(10),
			UnitCost:     decimal.NewFromInt(4100),
		},
	}
	uc := inventory.NewReplenishmentUseCase(stocks)

	out, err := uc.GenerateReplenishmentList(context.Background(), companyID, "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	// Ideal 15, sugerido 5: sigue bajo el ideal aunque esté en el punto exacto.
	assert.True(t, decimal.NewFromInt(5).Equal(out[0].SuggestedOrderQty))
}

func TestGenerateReplenishmentList_SinFilasDevuelveVacio(t *testing.T) {
	uc := inventory.NewReplenishmentUseCase(newFakeStockRepo())

	out, err := uc.GenerateReplenishmentList(context.Background(), companyID, "")
	require.NoError(t, err)
	assert.NotNil(t, out, "lista vacía, no nil")
	assert.Empty(t, out)
}
