package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de caja.
const (
	TransactionKindIncome  = "ingreso"
	TransactionKindExpense = "egreso"
)

// ValidTransactionKind indica si kind es uno de los dos tipos reconocidos.
func ValidTransactionKind(kind string) bool {
	return kind == TransactionKindIncome || kind == TransactionKindExpense
}

// Transaction asiento del diario de caja. Inmutable una vez insertado.
type Transaction struct {
	ID          int64
	Description string
	Amount      decimal.Decimal // positivo, 2 decimales
	Kind        string          // ingreso | egreso
	Date        time.Time
	CreatedAt   time.Time
}
