package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
)

// SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isConflict: serialización o interbloqueo; el cliente puede reintentar la operación completa.
func isConflict(err error) bool {
	c := pgCode(err)
	return c == codeSerializationFailure || c == codeDeadlockDetected
}

// isConnectivity errores de red o de conexión previos a ejecutar SQL.
func isConnectivity(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// classify envuelve err en el sentinel de dominio que corresponda; op describe la operación.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isConflict(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConflictDuringCommit, err)
	case isConnectivity(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrDependencyUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
