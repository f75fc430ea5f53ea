package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/ledger"
	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/infrastructure/memory"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func today() *dto.Date {
	return &dto.Date{Time: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)}
}

func newJournal(base string) (*ledger.JournalUseCase, *memory.Store) {
	store := memory.New(decimal.RequireFromString(base))
	return ledger.NewJournalUseCase(store, store.Ledger(), store.Transactions()), store
}

func TestRecord_IncomeUpdatesLedger(t *testing.T) {
	uc, _ := newJournal("50")

	id, err := uc.Record(context.Background(), dto.RecordTransactionRequest{
		Description: "Venta mostrador", Amount: dec("100.00"), Kind: entity.TransactionKindIncome, Date: today(),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	l, err := uc.GetLedger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "50.00", l.SaldoBase.StringFixed(2))
	assert.Equal(t, "100.00", l.TotalIngresos.StringFixed(2))
	assert.Equal(t, "0.00", l.TotalEgresos.StringFixed(2))
	assert.Equal(t, "150.00", l.SaldoFinal.StringFixed(2))
}

func TestRecord_FinalBalanceIndependentOfOrder(t *testing.T) {
	entries := []dto.RecordTransactionRequest{
		{Description: "a", Amount: dec("10.25"), Kind: entity.TransactionKindIncome, Date: today()},
		{Description: "b", Amount: dec("3.10"), Kind: entity.TransactionKindExpense, Date: today()},
		{Description: "c", Amount: dec("99.99"), Kind: entity.TransactionKindIncome, Date: today()},
		{Description: "d", Amount: dec("40.00"), Kind: entity.TransactionKindExpense, Date: today()},
	}
	orders := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}}

	var finals []string
	for _, order := range orders {
		uc, _ := newJournal("20")
		for _, i := range order {
			_, err := uc.Record(context.Background(), entries[i])
			require.NoError(t, err)
		}
		l, err := uc.GetLedger(context.Background())
		require.NoError(t, err)
		finals = append(finals, l.SaldoFinal.StringFixed(2))
		assert.Equal(t, "110.24", l.TotalIngresos.StringFixed(2))
		assert.Equal(t, "43.10", l.TotalEgresos.StringFixed(2))
	}
	assert.Equal(t, []string{"87.14", "87.14", "87.14"}, finals)
}

func TestRecord_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   dto.RecordTransactionRequest
		want error
	}{
		{"tipo desconocido", dto.RecordTransactionRequest{Description: "x", Amount: dec("1"), Kind: "transferencia", Date: today()}, domain.ErrInvalidKind},
		{"tipo vacío", dto.RecordTransactionRequest{Description: "x", Amount: dec("1"), Date: today()}, domain.ErrInvalidKind},
		{"sin descripción", dto.RecordTransactionRequest{Description: "  ", Amount: dec("1"), Kind: entity.TransactionKindIncome, Date: today()}, domain.ErrInvalidInput},
		{"sin monto", dto.RecordTransactionRequest{Description: "x", Kind: entity.TransactionKindIncome, Date: today()}, domain.ErrInvalidInput},
		{"monto cero", dto.RecordTransactionRequest{Description: "x", Amount: dec("0"), Kind: entity.TransactionKindIncome, Date: today()}, domain.ErrInvalidInput},
		{"monto negativo", dto.RecordTransactionRequest{Description: "x", Amount: dec("-5"), Kind: entity.TransactionKindExpense, Date: today()}, domain.ErrInvalidInput},
		{"tres decimales", dto.RecordTransactionRequest{Description: "x", Amount: dec("1.005"), Kind: entity.TransactionKindIncome, Date: today()}, domain.ErrInvalidInput},
		{"sin fecha", dto.RecordTransactionRequest{Description: "x", Amount: dec("1"), Kind: entity.TransactionKindIncome}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, store := newJournal("0")
			_, err := uc.Record(context.Background(), tc.in)
			require.ErrorIs(t, err, tc.want)

			list, err := store.Transactions().List(context.Background(), 10, 0)
			require.NoError(t, err)
			assert.Empty(t, list)
			l, err := store.Ledger().Get(context.Background())
			require.NoError(t, err)
			assert.True(t, l.Balance.IsZero())
		})
	}
}

func TestRecord_LedgerNotInitialisedRollsBackJournal(t *testing.T) {
	store := memory.NewUninitialized()
	uc := ledger.NewJournalUseCase(store, store.Ledger(), store.Transactions())

	_, err := uc.Record(context.Background(), dto.RecordTransactionRequest{
		Description: "x", Amount: dec("1"), Kind: entity.TransactionKindIncome, Date: today(),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.Transactions().List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListTransactions_DefaultPage(t *testing.T) {
	uc, _ := newJournal("0")
	for i := 0; i < 25; i++ {
		_, err := uc.Record(context.Background(), dto.RecordTransactionRequest{
			Description: "x", Amount: dec("1"), Kind: entity.TransactionKindIncome, Date: today(),
		})
		require.NoError(t, err)
	}
	list, err := uc.ListTransactions(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 20)
	assert.Equal(t, int64(25), list[0].ID)
}

func TestRecord_KindCheckedBeforeOtherFields(t *testing.T) {
	uc, _ := newJournal("0")
	_, err := uc.Record(context.Background(), dto.RecordTransactionRequest{Kind: "otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
	assert.Equal(t, "INVALID_KIND", domain.Kind(err))
}

func TestRecord_ConcurrentPostingsAddUp(t *testing.T) {
	uc, store := newJournal("50")

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		kind, amount := entity.TransactionKindIncome, "2.50"
		if i%4 == 0 {
			kind, amount = entity.TransactionKindExpense, "1.25"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Record(context.Background(), dto.RecordTransactionRequest{
				Description: "mostrador", Amount: dec(amount), Kind: kind, Date: today(),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	l, err := uc.GetLedger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "75.00", l.TotalIngresos.StringFixed(2))
	assert.Equal(t, "12.50", l.TotalEgresos.StringFixed(2))
	assert.Equal(t, "112.50", l.SaldoFinal.StringFixed(2))

	list, err := store.Transactions().List(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, list, 40)
}
