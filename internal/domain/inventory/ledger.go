// Package inventory contiene la lógica pura del libro mayor de stock:
// el registro Stock es una vista materializada de los movimientos, y debe
// cumplir siempre "stock actual == pliegue sobre sus movimientos".
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// Replay recalcula la cantidad de un registro de stock plegando sus movimientos
// desde cero. Sirve para verificar (o reconstruir) la vista materializada.
func Replay(movements []*entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.SignedQuantity())
	}
	return total
}

// Consistent verifica el invariante de un movimiento:
// NewQuantity == PreviousQuantity ± Quantity según la dirección,
// con Quantity como magnitud positiva.
func Consistent(m *entity.StockMovement) bool {
	if m.Quantity.LessThan(decimal.Zero) {
		return false
	}
	return m.PreviousQuantity.Add(m.SignedQuantity()).Equal(m.NewQuantity)
}

// Reconciles verifica que la cantidad actual de un registro de stock coincida
// con el pliegue de todos sus movimientos.
func Reconciles(current decimal.Decimal, movements []*entity.StockMovement) bool {
	return Replay(movements).Equal(current)
}
