package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger fila única con el saldo de caja. Solo cambia a través de asientos del diario.
type Ledger struct {
	BaseBalance  decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal // saldo corriente; siempre igual a FinalBalance tras Apply
	UpdatedAt    time.Time
}

// FinalBalance saldo base + ingresos − egresos.
func (l Ledger) FinalBalance() decimal.Decimal {
	return l.BaseBalance.Add(l.TotalIncome).Sub(l.TotalExpense)
}

// Apply aplica un asiento sobre la copia en memoria del libro.
func (l *Ledger) Apply(kind string, amount decimal.Decimal) {
	switch kind {
	case TransactionKindIncome:
		l.TotalIncome = l.TotalIncome.Add(amount)
	case TransactionKindExpense:
		l.TotalExpense = l.TotalExpense.Add(amount)
	}
	l.Balance = l.FinalBalance()
}
