package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, warehouse_id, number, status, subtotal, discount_total, total,
	payment_method, payment_amount, change_amount, notes, created_at, created_by, voided_at, voided_by, void_reason`

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	voidedBy := (*string)(nil)
	if sale.VoidedBy != "" {
		voidedBy = &sale.VoidedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.WarehouseID, sale.Number, sale.Status,
		sale.Subtotal, sale.DiscountTotal, sale.Total,
		sale.PaymentMethod, sale.PaymentAmount, sale.ChangeAmount, sale.Notes,
		sale.CreatedAt, sale.CreatedBy, sale.VoidedAt, voidedBy, sale.VoidReason,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity,
		item.UnitPrice, item.Discount, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var voidedBy, voidReason *string
	err := row.Scan(&s.ID, &s.CompanyID, &s.WarehouseID, &s.Number, &s.Status,
		&s.Subtotal, &s.DiscountTotal, &s.Total,
		&s.PaymentMethod, &s.PaymentAmount, &s.ChangeAmount, &s.Notes,
		&s.CreatedAt, &s.CreatedBy, &s.VoidedAt, &voidedBy, &voidReason)
	if err != nil {
		return nil, err
	}
	if voidedBy != nil {
		s.VoidedBy = *voidedBy
	}
	if voidReason != nil {
		s.VoidReason = *voidReason
	}
	return &s, nil
}

// GetByID obtiene una venta por ID; nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetItems devuelve las líneas de una venta en orden de inserción.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, discount, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.Discount, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// MarkVoid marca la venta como anulada con auditoría.
func (r *SaleRepo) MarkVoid(saleID, voidedBy, reason string, voidedAt time.Time) error {
	query := `
		UPDATE sales SET status = $2, voided_at = $3, voided_by = $4, void_reason = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		saleID, entity.SaleStatusVoid, voidedAt, voidedBy, reason,
	)
	if err != nil {
		return fmt.Errorf("mark sale void: %w", err)
	}
	return nil
}

// CountByDay cuenta las ventas de la empresa creadas en el día natural de day.
func (r *SaleRepo) CountByDay(companyID string, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM sales WHERE company_id = $1 AND created_at >= $2 AND created_at < $3`,
		companyID, start, end,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales by day: %w", err)
	}
	return count, nil
}

// ListByCompany lista ventas de la empresa, opcionalmente por rango de fechas.
func (r *SaleRepo) ListByCompany(companyID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
