package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
)

// mov construye un movimiento mínimo para los tests del libro mayor.
func mov(direction string, qty, prev, next int64) *entity.StockMovement {
	return &entity.StockMovement{
		Direction:        direction,
		Quantity:         decimal.NewFromInt(qty),
		PreviousQuantity: decimal.NewFromInt(prev),
		NewQuantity:      decimal.NewFromInt(next),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Replay: el pliegue de movimientos reconstruye la cantidad actual
// ──────────────────────────────────────────────────────────────────────────────

func TestReplay_EntradasYSalidas(t *testing.T) {
	movements := []*entity.StockMovement{
		mov(entity.DirectionIn, 100, 0, 100),
		mov(entity.DirectionOut, 30, 100, 70),
		mov(entity.DirectionIn, 10, 70, 80),
		mov(entity.DirectionOut, 5, 80, 75),
	}

	total := inventory.Replay(movements)
	assert.True(t, decimal.NewFromInt(75).Equal(total),
		"el pliegue debe dar 75, dio %s", total)
}

func TestReplay_SinMovimientos_EsCero(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(inventory.Replay(nil)))
}

func TestReplay_DevolucionSumaStock(t *testing.T) {
	// Una venta anulada devuelve la cantidad con dirección return.
	movements := []*entity.StockMovement{
		mov(entity.DirectionIn, 50, 0, 50),
		mov(entity.DirectionOut, 20, 50, 30),
		mov(entity.DirectionReturn, 20, 30, 50),
	}
	assert.True(t, decimal.NewFromInt(50).Equal(inventory.Replay(movements)),
		"la devolución debe restaurar el stock previo a la venta")
}

func TestReplay_AjusteUsaPreviousVsNew(t *testing.T) {
	// En un ajuste el sentido lo determina NewQuantity vs PreviousQuantity.
	down := mov(entity.DirectionAdjustment, 8, 20, 12) // merma
	up := mov(entity.DirectionAdjustment, 5, 12, 17)   // sobrante

	assert.True(t, down.SignedQuantity().Equal(decimal.NewFromInt(-8)))
	assert.True(t, up.SignedQuantity().Equal(decimal.NewFromInt(5)))

	total := inventory.Replay([]*entity.StockMovement{
		mov(entity.DirectionIn, 20, 0, 20), down, up,
	})
	assert.True(t, decimal.NewFromInt(17).Equal(total))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consistent: invariante NewQuantity == PreviousQuantity ± Quantity
// ──────────────────────────────────────────────────────────────────────────────

func TestConsistent_MovimientoValido(t *testing.T) {
	assert.True(t, inventory.Consistent(mov(entity.DirectionIn, 10, 5, 15)))
	assert.True(t, inventory.Consistent(mov(entity.DirectionOut, 3, 15, 12)))
	assert.True(t, inventory.Consistent(mov(entity.DirectionTransfer, 4, 12, 8)))
}

func TestConsistent_AritmeticaNoCuadra(t *testing.T) {
	assert.False(t, inventory.Consistent(mov(entity.DirectionIn, 10, 5, 14)),
		"5 + 10 no es 14")
	assert.False(t, inventory.Consistent(mov(entity.DirectionOut, 3, 15, 13)),
		"15 - 3 no es 13")
}

func TestConsistent_CantidadNegativaRechazada(t *testing.T) {
	m := mov(entity.DirectionIn, -10, 5, -5)
	assert.False(t, inventory.Consistent(m),
		"Quantity debe ser magnitud positiva")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciles: vista materializada vs libro mayor
// ──────────────────────────────────────────────────────────────────────────────

func TestReconciles_CoincideConElLibro(t *testing.T) {
	movements := []*entity.StockMovement{
		mov(entity.DirectionIn, 100, 0, 100),
		mov(entity.DirectionOut, 40, 100, 60),
	}
	assert.True(t, inventory.Reconciles(decimal.NewFromInt(60), movements))
	assert.False(t, inventory.Reconciles(decimal.NewFromInt(61), movements),
		"una cantidad desfasada no reconcilia")
}
