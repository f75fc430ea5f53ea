package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo pedidos a proveedor (pedidos + detalle_pedidos).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, codigo_pedido, proveedor, estado, total, notas, created_at, updated_at`

// Create inserta la cabecera. El código duplicado se detecta por SQLSTATE, no por texto.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO pedidos (codigo_pedido, proveedor, estado, total, notas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		o.Code, o.Supplier, o.Status, o.Total, o.Notes, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: codigo_pedido %s", domain.ErrDuplicate, o.Code)
		}
		return classify("insert purchase order", err)
	}
	return nil
}

// CreateItem inserta una línea del pedido.
func (r *PurchaseOrderRepo) CreateItem(ctx context.Context, it *entity.PurchaseOrderItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO detalle_pedidos (pedido_id, nombre_producto, precio_unitario, cantidad)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		it.OrderID, it.ProductName, it.UnitPrice, it.Quantity,
	).Scan(&it.ID)
	if err != nil {
		return classify("insert purchase order item", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) getHeader(ctx context.Context, query string, id int64) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Code, &o.Supplier, &o.Status, &o.Total, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get purchase order", err)
	}
	return &o, nil
}

// GetByID obtiene el pedido con sus líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	o, err := r.getHeader(ctx, `SELECT `+orderColumns+` FROM pedidos WHERE id = $1`, id)
	if err != nil || o == nil {
		return o, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, pedido_id, nombre_producto, precio_unitario, cantidad
		FROM detalle_pedidos WHERE pedido_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, classify("list purchase order items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductName, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		o.Items = append(o.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list purchase order items", err)
	}
	return o, nil
}

// GetForUpdate obtiene la cabecera con SELECT FOR UPDATE dentro de la tx.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.getHeader(ctx, `SELECT `+orderColumns+` FROM pedidos WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus persiste estado, notas y updated_at.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, o *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE pedidos SET estado = $2, notas = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return classify("update purchase order", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pedido %d: %w", o.ID, domain.ErrNotFound)
	}
	return nil
}
