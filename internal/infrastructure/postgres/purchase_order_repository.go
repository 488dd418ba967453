package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, company_id, warehouse_id, supplier_name, status, notes,
	expected_delivery_date, actual_delivery_date, created_at, updated_at, created_by`

// Create persiste cabecera y líneas de la orden.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.WarehouseID, order.SupplierName,
		order.Status, order.Notes, order.ExpectedDeliveryDate, order.ActualDeliveryDate,
		order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, it := range order.Items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO purchase_order_items (id, order_id, product_id, ordered_quantity, received_quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.ProductID, it.OrderedQuantity, it.ReceivedQuantity, it.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(&o.ID, &o.CompanyID, &o.WarehouseID, &o.SupplierName,
		&o.Status, &o.Notes, &o.ExpectedDeliveryDate, &o.ActualDeliveryDate,
		&o.CreatedAt, &o.UpdatedAt, &o.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) loadItems(order *entity.PurchaseOrder) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, ordered_quantity, received_quantity, unit_cost
		FROM purchase_order_items WHERE order_id = $1 ORDER BY id`, order.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID,
			&it.OrderedQuantity, &it.ReceivedQuantity, &it.UnitCost); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, &it)
	}
	return rows.Err()
}

// GetByID devuelve la orden con sus líneas; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE) y carga las líneas. Solo dentro de tx.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order for update: %w", err)
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus actualiza el estado de la orden y, si aplica, la fecha real de entrega.
func (r *PurchaseOrderRepo) UpdateStatus(orderID, status string, actualDeliveryDate *time.Time) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, actual_delivery_date = COALESCE($3, actual_delivery_date), updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, orderID, status, actualDeliveryDate)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// UpdateItemReceived fija la cantidad acumulada recibida de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(itemID string, receivedQuantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`,
		itemID, receivedQuantity,
	)
	if err != nil {
		return fmt.Errorf("update order item received: %w", err)
	}
	return nil
}

// ListByCompany lista órdenes de la empresa, opcionalmente filtradas por estado.
// Las líneas no se cargan en el listado.
func (r *PurchaseOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
