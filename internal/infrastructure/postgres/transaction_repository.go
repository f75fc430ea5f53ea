package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo diario de caja (tabla transacciones). Solo inserción y lectura.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta el asiento y asigna tr.ID.
func (r *TransactionRepo) Create(ctx context.Context, tr *entity.Transaction) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO transacciones (descripcion, monto, tipo, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		tr.Description, tr.Amount, tr.Kind, tr.Date, tr.CreatedAt,
	).Scan(&tr.ID)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: monto o tipo fuera de rango", domain.ErrInvalidInput)
		}
		return classify("insert transaction", err)
	}
	return nil
}

// List devuelve el diario del más reciente al más antiguo.
func (r *TransactionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, descripcion, monto, tipo, fecha, created_at
		FROM transacciones ORDER BY fecha DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, classify("list transactions", err)
	}
	defer rows.Close()
	out := make([]*entity.Transaction, 0, limit)
	for rows.Next() {
		var tr entity.Transaction
		if err := rows.Scan(&tr.ID, &tr.Description, &tr.Amount, &tr.Kind, &tr.Date, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &tr)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list transactions", err)
	}
	return out, nil
}
