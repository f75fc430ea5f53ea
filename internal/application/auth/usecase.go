package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

// LoginMessage mensaje de la respuesta de login exitoso.
const LoginMessage = "Inicio de sesión exitoso"

// AuthUseCase casos de uso de trabajadores: registro, login y baja lógica.
// El login solo verifica credenciales; no emite token ni abre sesión.
type AuthUseCase struct {
	workers    repository.WorkerRepository
	bcryptCost int
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso. bcryptCost <= 0 usa bcrypt.DefaultCost.
func NewAuthUseCase(workers repository.WorkerRepository, bcryptCost int) *AuthUseCase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthUseCase{workers: workers, bcryptCost: bcryptCost, now: time.Now}
}

// Register crea un trabajador activo: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el correo ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterWorkerRequest) (*dto.WorkerResponse, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, domain.Invalid("nombre, correo y password son requeridos")
	}
	role := in.Role
	if role == "" {
		role = entity.DefaultRole
	}
	existing, err := uc.workers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hashear password: %w", err)
	}
	w := &entity.Worker{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.WorkerStatusActive,
		CreatedAt:    uc.now(),
	}
	if err := uc.workers.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWorkerResponse(w), nil
}

// Login verifica correo/password. Credenciales inválidas → ErrUnauthorized (no revela si el correo existe);
// trabajador inactivo → ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	w, err := uc.workers.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(w.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !w.IsActive() {
		return nil, domain.ErrForbidden
	}
	return &dto.LoginResponse{
		Message:    LoginMessage,
		Trabajador: *toWorkerResponse(w),
	}, nil
}

// Deactivate marca el trabajador como inactivo. Es idempotente.
func (uc *AuthUseCase) Deactivate(ctx context.Context, id int64) (*dto.WorkerResponse, error) {
	w, err := uc.workers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, id)
	}
	if w.Status != entity.WorkerStatusInactive {
		if err := uc.workers.UpdateStatus(ctx, id, entity.WorkerStatusInactive); err != nil {
			return nil, err
		}
		w.Status = entity.WorkerStatusInactive
	}
	return toWorkerResponse(w), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toWorkerResponse(w *entity.Worker) *dto.WorkerResponse {
	return &dto.WorkerResponse{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Role:      w.Role,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
	}
}
