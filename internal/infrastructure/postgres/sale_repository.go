package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas (tabla ventas) y sus líneas (detalle_ventas).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y asigna sale.ID.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO ventas (fecha, total) VALUES ($1, $2) RETURNING id`,
		sale.Date, sale.Total,
	).Scan(&sale.ID)
	if err != nil {
		return classify("insert sale", err)
	}
	return nil
}

// CreateItem inserta una línea de la venta.
func (r *SaleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO detalle_ventas (venta_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	).Scan(&item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %d", domain.ErrProductNotFound, item.ProductID)
		}
		return classify("insert sale item", err)
	}
	return nil
}

// UpdateTotal fija el total de la cabecera.
func (r *SaleRepo) UpdateTotal(ctx context.Context, saleID int64, total decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE ventas SET total = $2 WHERE id = $1`, saleID, total)
	if err != nil {
		return classify("update sale total", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("venta %d: %w", saleID, domain.ErrNotFound)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas en orden de inserción.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `SELECT id, fecha, total FROM ventas WHERE id = $1`, id).Scan(&s.ID, &s.Date, &s.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get sale", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, subtotal
		FROM detalle_ventas WHERE venta_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, classify("list sale items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list sale items", err)
	}
	return &s, nil
}
