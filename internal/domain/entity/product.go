package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// El stock se maneja por bodega en Stock; ReorderPoint dispara la alerta de stock bajo.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo promedio ponderado (inicia en 0)
	ReorderPoint decimal.Decimal // cantidad mínima antes de alertar reposición
	UnitMeasure  string
	Attributes   json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
