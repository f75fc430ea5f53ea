package entity

import "time"

// Estados del trabajador. La baja es lógica (inactivo), nunca se borra la fila.
const (
	WorkerStatusActive   = "activo"
	WorkerStatusInactive = "inactivo"
)

// Roles válidos para Worker.
const (
	RoleAdmin   = "admin"
	RoleCajero  = "cajero"
	RoleBodega  = "bodeguero"
	DefaultRole = RoleCajero
)

// Worker trabajador del punto de venta.
type Worker struct {
	ID           int64
	Name         string
	Email        string // único
	PasswordHash string // bcrypt
	Role         string
	Status       string
	CreatedAt    time.Time
}

// IsActive indica si el trabajador puede iniciar sesión.
func (w *Worker) IsActive() bool {
	return w.Status == WorkerStatusActive
}
