package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerApply_BalanceFollowsTotals(t *testing.T) {
	l := Ledger{BaseBalance: decimal.NewFromInt(50)}

	l.Apply(TransactionKindIncome, decimal.RequireFromString("100.00"))
	l.Apply(TransactionKindExpense, decimal.RequireFromString("30.00"))

	assert.Equal(t, "120.00", l.FinalBalance().StringFixed(2))
	assert.True(t, l.Balance.Equal(l.FinalBalance()))
}
