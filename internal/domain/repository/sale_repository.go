package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
)

// SaleRepository persistencia de ventas y sus líneas.
type SaleRepository interface {
	// Create inserta la cabecera y asigna sale.ID.
	Create(ctx context.Context, sale *entity.Sale) error
	// CreateItem inserta una línea y asigna item.ID.
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	UpdateTotal(ctx context.Context, saleID int64, total decimal.Decimal) error
	// GetByID devuelve la venta con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
}
