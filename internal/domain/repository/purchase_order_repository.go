package repository

import (
	"context"

	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
)

// PurchaseOrderRepository persistencia de pedidos a proveedor.
type PurchaseOrderRepository interface {
	// Create inserta la cabecera y asigna order.ID. Devuelve ErrDuplicate si el código ya existe.
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	CreateItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	// GetByID devuelve el pedido con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// GetForUpdate devuelve la cabecera bloqueando la fila. Solo dentro de una tx.
	GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// UpdateStatus persiste estado, notas y updated_at.
	UpdateStatus(ctx context.Context, order *entity.PurchaseOrder) error
}
