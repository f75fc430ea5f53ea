package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Las capas superiores discriminan con errors.Is.
var (
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidKind           = fmt.Errorf("%w: tipo de transacción no reconocido", ErrInvalidInput)
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrProductNotFound       = fmt.Errorf("%w: producto", ErrNotFound)
	ErrUserNotFound          = fmt.Errorf("%w: trabajador", ErrNotFound)
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrEmailAlreadyExists    = fmt.Errorf("%w: el correo ya está registrado", ErrDuplicate)
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidTransition     = errors.New("transición de estado no permitida")
	ErrConflictDuringCommit  = errors.New("conflicto al confirmar la transacción")
	ErrDependencyUnavailable = errors.New("base de datos no disponible")
)

// Kind devuelve la etiqueta estable del error para respuestas al cliente.
// Los errores más específicos se evalúan antes que sus padres.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidKind):
		return "INVALID_KIND"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, ErrProductNotFound):
		return "PRODUCT_NOT_FOUND"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrEmailAlreadyExists):
		return "EMAIL_EXISTS"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrConflictDuringCommit):
		return "CONFLICT_DURING_COMMIT"
	case errors.Is(err, ErrDependencyUnavailable):
		return "DEPENDENCY_UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	default:
		return "INTERNAL"
	}
}

// Invalid envuelve ErrInvalidInput con el detalle del campo.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
