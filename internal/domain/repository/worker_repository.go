package repository

import (
	"context"

	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
)

// WorkerRepository define el puerto de persistencia para Worker (DIP).
type WorkerRepository interface {
	// Create asigna worker.ID; ErrEmailAlreadyExists si el correo ya está registrado.
	Create(ctx context.Context, worker *entity.Worker) error
	GetByID(ctx context.Context, id int64) (*entity.Worker, error)
	GetByEmail(ctx context.Context, email string) (*entity.Worker, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
