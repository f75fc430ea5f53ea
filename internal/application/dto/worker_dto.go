package dto

import "time"

// RegisterWorkerRequest entrada para registrar un trabajador (password en texto, se hashea en use case).
type RegisterWorkerRequest struct {
	Name     string `json:"nombre" validate:"required,max=200"`
	Email    string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"rol" validate:"omitempty,oneof=admin cajero bodeguero"`
}

// LoginRequest entrada de POST /api/v1/ingresar.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// WorkerResponse salida de un trabajador (sin password).
type WorkerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"correo"`
	Role      string    `json:"rol"`
	Status    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse respuesta plana del login: no hay emisión de token ni sesión.
type LoginResponse struct {
	Message    string         `json:"message"`
	Trabajador WorkerResponse `json:"trabajador"`
}
