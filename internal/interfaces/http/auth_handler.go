package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/moderna-shop-api/internal/application/auth"
	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
)

// AuthHandler maneja registro, login y baja de trabajadores.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar trabajador
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterWorkerRequest  true  "nombre, correo, password, rol"
// @Success      201   {object}  dto.WorkerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/trabajadores [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterWorkerRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	w, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// Login godoc
// @Summary      Iniciar sesión (solo verifica credenciales, no emite token)
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/ingresar [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	resp, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Deactivate godoc
// @Summary      Desactivar trabajador (baja lógica)
// @Tags         trabajadores
// @Produce      json
// @Param        id   path  int  true  "ID del trabajador"
// @Success      200  {object}  dto.WorkerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/trabajadores/{id}/desactivar [patch]
func (h *AuthHandler) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	w, err := h.uc.Deactivate(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(w)
}
