package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o medicamento del catálogo.
// Stock es el atributo canónico de existencias (en revisiones antiguas del esquema: UnidadesPorCaja).
type Product struct {
	ID            int64
	Name          string
	Code          string // opcional
	CategoryID    *int64
	Stock         int             // nunca negativo
	UnitPrice     decimal.Decimal // precio de venta, 2 decimales
	PurchasePrice *decimal.Decimal

	// Campos descriptivos del medicamento (vacíos para productos generales).
	Manufacturer string
	ExpiryDate   *time.Time
	DosageForm   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
