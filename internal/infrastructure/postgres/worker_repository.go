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

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

// WorkerRepo implementación del puerto WorkerRepository sobre PostgreSQL (tabla trabajadores).
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el adaptador de persistencia para trabajadores.
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

// Create persiste un nuevo trabajador.
func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO trabajadores (nombre, correo, password_hash, rol, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		w.Name, w.Email, w.PasswordHash, w.Role, w.Status, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return classify("insert worker", err)
	}
	return nil
}

// GetByID obtiene un trabajador por ID.
func (r *WorkerRepo) GetByID(ctx context.Context, id int64) (*entity.Worker, error) {
	return r.findOne(ctx, "id = $1", id)
}

// GetByEmail obtiene un trabajador por correo.
func (r *WorkerRepo) GetByEmail(ctx context.Context, email string) (*entity.Worker, error) {
	return r.findOne(ctx, "correo = $1", email)
}

func (r *WorkerRepo) findOne(ctx context.Context, where string, arg any) (*entity.Worker, error) {
	var w entity.Worker
	err := r.q.QueryRow(ctx, `
		SELECT id, nombre, correo, password_hash, rol, estado, created_at
		FROM trabajadores WHERE `+where, arg,
	).Scan(&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.Role, &w.Status, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get worker", err)
	}
	return &w, nil
}

// UpdateStatus cambia el estado (baja lógica).
func (r *WorkerRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE trabajadores SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return classify("update worker status", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrUserNotFound, id)
	}
	return nil
}
