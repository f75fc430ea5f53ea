package repository

import (
	"context"

	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila (SELECT FOR UPDATE). Solo dentro de una tx.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// LockForUpdate bloquea varias filas en orden ascendente de id para evitar interbloqueos.
	LockForUpdate(ctx context.Context, ids []int64) error
	UpdateStock(ctx context.Context, id int64, stock int) error
}
