package sales_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/ledger"
	"github.com/jhoicas/moderna-shop-api/internal/application/sales"
	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fixture struct {
	store *memory.Store
	uc    *sales.SaleUseCase
}

func newFixture(t *testing.T, postToLedger bool, products ...entity.Product) fixture {
	t.Helper()
	store := memory.New(decimal.Zero)
	for _, p := range products {
		store.AddProduct(p)
	}
	journal := ledger.NewJournalUseCase(store, store.Ledger(), store.Transactions())
	uc := sales.NewSaleUseCase(store, store.Sales(), journal, sales.Options{PostToLedger: postToLedger})
	return fixture{store: store, uc: uc}
}

func (f fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func TestSell_DecrementsStockAndStoresLine(t *testing.T) {
	f := newFixture(t, false, entity.Product{ID: 7, Name: "Acetaminofén", Stock: 10, UnitPrice: dec("5.00")})

	id, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{
		{ProductID: 7, Quantity: 3, UnitPrice: decPtr("5.00"), Subtotal: decPtr("15.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, f.stock(t, 7))

	sale, err := f.uc.GetSale(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "15.00", sale.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, 3, sale.Items[0].Quantity)
	assert.Equal(t, "15.00", sale.Total.StringFixed(2))
}

func TestSell_InsufficientStockLeavesNoTrace(t *testing.T) {
	f := newFixture(t, true, entity.Product{ID: 1, Name: "Gasa", Stock: 3, UnitPrice: dec("2.00")})

	_, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{{ProductID: 1, Quantity: 5, UnitPrice: decPtr("2.00")}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.stock(t, 1))
	assert.Equal(t, 0, f.store.SaleCount())

	l, err := f.store.Ledger().Get(context.Background())
	require.NoError(t, err)
	assert.True(t, l.TotalIncome.IsZero())
}

func TestSell_AllOrNothingAcrossItems(t *testing.T) {
	f := newFixture(t, true,
		entity.Product{ID: 1, Name: "A", Stock: 10, UnitPrice: dec("1.00")},
		entity.Product{ID: 2, Name: "B", Stock: 1, UnitPrice: dec("1.00")},
	)

	_, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{
		{ProductID: 1, Quantity: 2, UnitPrice: decPtr("1.00")},
		{ProductID: 2, Quantity: 5, UnitPrice: decPtr("1.00")},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.stock(t, 1))
	assert.Equal(t, 1, f.stock(t, 2))
	assert.Equal(t, 0, f.store.SaleCount())
}

func TestSell_UnknownProduct(t *testing.T) {
	f := newFixture(t, false, entity.Product{ID: 1, Name: "A", Stock: 10, UnitPrice: dec("1.00")})

	_, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{
		{ProductID: 1, Quantity: 1, UnitPrice: decPtr("1.00")},
		{ProductID: 99, Quantity: 1, UnitPrice: decPtr("1.00")},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, f.stock(t, 1))
}

func TestSell_RepeatedProductUsesCumulativeStock(t *testing.T) {
	f := newFixture(t, false, entity.Product{ID: 1, Name: "A", Stock: 5, UnitPrice: dec("1.00")})

	_, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{
		{ProductID: 1, Quantity: 3, UnitPrice: decPtr("1.00")},
		{ProductID: 1, Quantity: 3, UnitPrice: decPtr("1.00")},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, 1))

	_, err = f.uc.Sell(context.Background(), []dto.SaleItemRequest{
		{ProductID: 1, Quantity: 2, UnitPrice: decPtr("1.00")},
		{ProductID: 1, Quantity: 3, UnitPrice: decPtr("1.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, 1))
}

func TestSell_DecrementEqualsRequested(t *testing.T) {
	products := []entity.Product{
		{ID: 1, Name: "A", Stock: 40, UnitPrice: dec("1.10")},
		{ID: 2, Name: "B", Stock: 25, UnitPrice: dec("3.35")},
		{ID: 3, Name: "C", Stock: 9, UnitPrice: dec("0.99")},
	}
	f := newFixture(t, false, products...)
	before := map[int64]int{1: 40, 2: 25, 3: 9}

	batches := [][]dto.SaleItemRequest{
		{{ProductID: 3, Quantity: 2}, {ProductID: 1, Quantity: 7}},
		{{ProductID: 2, Quantity: 5}, {ProductID: 2, Quantity: 1}, {ProductID: 3, Quantity: 4}},
		{{ProductID: 1, Quantity: 12}},
	}
	requested := map[int64]int{}
	for _, items := range batches {
		_, err := f.uc.Sell(context.Background(), items)
		require.NoError(t, err)
		for _, it := range items {
			requested[it.ProductID] += it.Quantity
		}
	}

	for id, qty := range before {
		assert.Equal(t, qty-requested[id], f.stock(t, id), "producto %d", id)
	}
}

func TestSell_MissingUnitPriceUsesCatalogue(t *testing.T) {
	f := newFixture(t, false, entity.Product{ID: 1, Name: "A", Stock: 5, UnitPrice: dec("2.50")})

	id, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	sale, err := f.uc.GetSale(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "2.50", sale.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "5.00", sale.Items[0].Subtotal.StringFixed(2))
}

func TestSell_ExplicitZeroUnitPriceIsKept(t *testing.T) {
	f := newFixture(t, true, entity.Product{ID: 1, Name: "Muestra", Stock: 5, UnitPrice: dec("2.50")})

	id, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{{ProductID: 1, Quantity: 2, UnitPrice: decPtr("0")}})
	require.NoError(t, err)

	sale, err := f.uc.GetSale(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, sale.Items[0].UnitPrice.IsZero())
	assert.True(t, sale.Total.IsZero())
	assert.Equal(t, 3, f.stock(t, 1))

	list, err := f.store.Transactions().List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSell_ValidationErrors(t *testing.T) {
	f := newFixture(t, false, entity.Product{ID: 1, Name: "A", Stock: 5, UnitPrice: dec("2.00")})

	cases := map[string][]dto.SaleItemRequest{
		"vacía":             {},
		"cantidad cero":     {{ProductID: 1, Quantity: 0, UnitPrice: decPtr("2.00")}},
		"precio negativo":   {{ProductID: 1, Quantity: 1, UnitPrice: decPtr("-1")}},
		"tres decimales":    {{ProductID: 1, Quantity: 1, UnitPrice: decPtr("2.005")}},
		"subtotal distinto": {{ProductID: 1, Quantity: 2, UnitPrice: decPtr("2.00"), Subtotal: decPtr("5.00")}},
		"producto cero":     {{ProductID: 0, Quantity: 1}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Sell(context.Background(), items)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 5, f.stock(t, 1))
	assert.Equal(t, 0, f.store.SaleCount())
}

func TestSell_PostsIncomeToLedger(t *testing.T) {
	f := newFixture(t, true, entity.Product{ID: 7, Name: "A", Stock: 10, UnitPrice: dec("5.00")})

	id, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{{ProductID: 7, Quantity: 3, UnitPrice: decPtr("5.00")}})
	require.NoError(t, err)

	l, err := f.store.Ledger().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "15.00", l.TotalIncome.StringFixed(2))
	assert.Equal(t, "15.00", l.FinalBalance().StringFixed(2))

	list, err := f.store.Transactions().List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.TransactionKindIncome, list[0].Kind)
	assert.Equal(t, fmt.Sprintf("Venta #%d", id), list[0].Description)
}

func TestSell_WithoutLedgerPosting(t *testing.T) {
	f := newFixture(t, false, entity.Product{ID: 7, Name: "A", Stock: 10, UnitPrice: dec("5.00")})

	_, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{{ProductID: 7, Quantity: 1, UnitPrice: decPtr("5.00")}})
	require.NoError(t, err)

	list, err := f.store.Transactions().List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetSale_NotFound(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.uc.GetSale(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSell_ConcurrentSalesNeverOversell(t *testing.T) {
	const (
		stock   = 10
		perSale = 3
		workers = 50
	)
	f := newFixture(t, true, entity.Product{ID: 7, Name: "Acetaminofén", Stock: stock, UnitPrice: dec("5.00")})

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Sell(context.Background(), []dto.SaleItemRequest{{ProductID: 7, Quantity: perSale}})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, stock/perSale, ok)
	assert.Equal(t, workers-stock/perSale, rejected)
	assert.Equal(t, stock%perSale, f.stock(t, 7))
	assert.Equal(t, stock/perSale, f.store.SaleCount())

	l, err := f.store.Ledger().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "45.00", l.TotalIncome.StringFixed(2))
}
