package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/domain"
)

// internalMessage único texto que ve el cliente en un 500.
const internalMessage = "error interno del servidor"

// publicMessages texto fijo por código para respuestas 409 y 5xx. El detalle (driver, host, SQLSTATE) solo va al log.
var publicMessages = map[string]string{
	"DUPLICATE":              "el recurso ya existe",
	"EMAIL_EXISTS":           "el correo ya está registrado",
	"CONFLICT_DURING_COMMIT": "conflicto al confirmar la transacción, reintente",
	"DEPENDENCY_UNAVAILABLE": "base de datos no disponible, intente más tarde",
}

func publicMessage(code string) string {
	if msg, ok := publicMessages[code]; ok {
		return msg
	}
	return internalMessage
}

// StatusFor traduce un error de dominio a código HTTP.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrConflictDuringCommit):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrDependencyUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError escribe dto.ErrorResponse. Desde 409 el error completo se registra con el request id
// y el cliente recibe solo el mensaje fijo del código.
func respondError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	code := domain.Kind(err)
	msg := err.Error()
	if status >= fiber.StatusConflict {
		log := requestLogger(c)
		ev := log.Warn()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).Int("status", status).Str("code", code).Str("path", c.Path()).Msg("error procesando la petición")
		msg = publicMessage(code)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler para fiber.Config: errores de Fiber (404 de ruta, body demasiado grande) y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		if fe.Code == fiber.StatusNotFound {
			code = "NOT_FOUND"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
