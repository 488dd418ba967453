package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func zeroStock(productID, warehouseID string) *entity.Stock {
	return &entity.Stock{
		ProductID:        productID,
		WarehouseID:      warehouseID,
		Quantity:         decimal.Zero,
		ReservedQuantity: decimal.Zero,
	}
}

// Get obtiene el stock actual de un producto en una bodega.
// Si no hay registro devuelve uno en cero (creación perezosa).
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, reserved_quantity, location, batch_number, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.ReservedQuantity,
		&s.Location, &s.BatchNumber, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroStock(productID, warehouseID), nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, reserved_quantity, location, batch_number, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.ReservedQuantity,
		&s.Location, &s.BatchNumber, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroStock(productID, warehouseID), nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la fila de stock (por producto y bodega).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, reserved_quantity, location, batch_number, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
			reserved_quantity = EXCLUDED.reserved_quantity,
			location = EXCLUDED.location,
			batch_number = EXCLUDED.batch_number,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.WarehouseID, stock.Quantity, stock.ReservedQuantity,
		stock.Location, stock.BatchNumber,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista el stock de una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, reserved_quantity, location, batch_number, updated_at
		FROM stock WHERE warehouse_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.ReservedQuantity,
			&s.Location, &s.BatchNumber, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListBelowReorderPoint devuelve los productos de la empresa cuyo stock está en o
// por debajo del punto de reorden. warehouseID vacío agrega sobre todas las bodegas.
func (r *StockRepo) ListBelowReorderPoint(companyID, warehouseID string) ([]*repository.ReplenishmentRow, error) {
	query := `
		SELECT p.id, p.sku, p.name, s.warehouse_id, s.quantity, p.reorder_point, p.cost, p.price
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE p.company_id = $1 AND p.reorder_point > 0 AND s.quantity <= p.reorder_point`
	args := []any{companyID}
	if warehouseID != "" {
		query += " AND s.warehouse_id = $2"
		args = append(args, warehouseID)
	}
	query += " ORDER BY p.sku"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()
	var list []*repository.ReplenishmentRow
	for rows.Next() {
		var row repository.ReplenishmentRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.WarehouseID,
			&row.CurrentStock, &row.ReorderPoint, &row.UnitCost, &row.Price); err != nil {
			return nil, fmt.Errorf("scan replenishment row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
