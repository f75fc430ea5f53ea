package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordTransactionRequest body para POST /api/v1/transacciones.
// Sin tags de validación: el caso de uso valida primero el tipo y luego el resto.
type RecordTransactionRequest struct {
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Kind        string           `json:"kind"`
	Date        *Date            `json:"date"`
}

// IDResponse salida con el id creado.
type IDResponse struct {
	ID int64 `json:"id"`
}

// TransactionResponse asiento del diario.
type TransactionResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LedgerResponse saldo actual de caja.
type LedgerResponse struct {
	SaldoBase     decimal.Decimal `json:"saldo_base"`
	TotalIngresos decimal.Decimal `json:"total_ingresos"`
	TotalEgresos  decimal.Decimal `json:"total_egresos"`
	SaldoActual   decimal.Decimal `json:"saldo_actual"`
	SaldoFinal    decimal.Decimal `json:"saldo_final"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
