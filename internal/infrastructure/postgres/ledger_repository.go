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

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// ledgerRowID id de la fila única de saldo.
const ledgerRowID = 1

// LedgerRepo fila única de la tabla saldo.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Post aplica el asiento con un único UPDATE de incremento; nunca lee y reescribe desde la aplicación.
// saldo_actual es columna generada, se recalcula en la misma sentencia.
func (r *LedgerRepo) Post(ctx context.Context, kind string, amount decimal.Decimal) error {
	var query string
	switch kind {
	case entity.TransactionKindIncome:
		query = `UPDATE saldo SET total_ingresos = total_ingresos + $2, updated_at = now() WHERE id = $1`
	case entity.TransactionKindExpense:
		query = `UPDATE saldo SET total_egresos = total_egresos + $2, updated_at = now() WHERE id = $1`
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	cmd, err := r.q.Exec(ctx, query, ledgerRowID, amount)
	if err != nil {
		return classify("post ledger", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("saldo no inicializado: %w", domain.ErrNotFound)
	}
	return nil
}

// Get devuelve los totales actuales.
func (r *LedgerRepo) Get(ctx context.Context) (*entity.Ledger, error) {
	var l entity.Ledger
	err := r.q.QueryRow(ctx, `
		SELECT saldo_base, total_ingresos, total_egresos, saldo_actual, updated_at
		FROM saldo WHERE id = $1`, ledgerRowID,
	).Scan(&l.BaseBalance, &l.TotalIncome, &l.TotalExpense, &l.Balance, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("saldo no inicializado: %w", domain.ErrNotFound)
		}
		return nil, classify("get ledger", err)
	}
	return &l, nil
}
