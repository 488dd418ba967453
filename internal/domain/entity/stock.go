package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad actual de un producto en una bodega.
// La identidad del registro es (ProductID, WarehouseID); Location y BatchNumber
// son atributos descriptivos del mismo registro, no parte de la clave.
// Se crea en cero con el primer movimiento y nunca se elimina.
type Stock struct {
	ProductID        string
	WarehouseID      string
	Quantity         decimal.Decimal
	ReservedQuantity decimal.Decimal // apartado para pedidos pendientes
	Location         string
	BatchNumber      string
	UpdatedAt        time.Time
}

// Available devuelve la cantidad disponible: Quantity - ReservedQuantity.
// Valor derivado, no se persiste.
func (s *Stock) Available() decimal.Decimal {
	return s.Quantity.Sub(s.ReservedQuantity)
}
