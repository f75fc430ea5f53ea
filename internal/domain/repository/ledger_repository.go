package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
)

// LedgerRepository acceso a la fila única de saldo.
type LedgerRepository interface {
	// Post aplica un asiento con un incremento atómico; kind ya viene validado.
	// Devuelve ErrNotFound si el saldo no está inicializado.
	Post(ctx context.Context, kind string, amount decimal.Decimal) error
	Get(ctx context.Context) (*entity.Ledger, error)
}
