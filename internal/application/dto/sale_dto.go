package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea del cuerpo de POST /api/v1/ventas (el cuerpo es un arreglo).
// Sin UnitPrice se toma el precio de catálogo; un 0 explícito vende sin costo. Subtotal es opcional; si viene debe cuadrar.
type SaleItemRequest struct {
	ProductID int64            `json:"productId" validate:"required,gt=0"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Subtotal  *decimal.Decimal `json:"subtotal,omitempty"`
}

// SaleCreatedResponse salida de POST /api/v1/ventas.
type SaleCreatedResponse struct {
	SaleID int64 `json:"saleId"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID    int64              `json:"id"`
	Date  time.Time          `json:"date"`
	Total decimal.Decimal    `json:"total"`
	Items []SaleItemResponse `json:"items"`
}
