package repository

import (
	"context"

	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
)

// TransactionRepository diario de caja, solo inserción.
type TransactionRepository interface {
	// Create inserta el asiento y asigna tr.ID.
	Create(ctx context.Context, tr *entity.Transaction) error
	// List devuelve los asientos del más reciente al más antiguo.
	List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error)
}
