package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta.
type Sale struct {
	ID    int64
	Date  time.Time
	Total decimal.Decimal
	Items []*SaleItem
}

// SaleItem línea de una venta. Subtotal = Quantity × UnitPrice.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// LineSubtotal calcula quantity × unitPrice redondeado a 2 decimales.
func LineSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
