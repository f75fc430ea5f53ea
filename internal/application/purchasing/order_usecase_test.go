package purchasing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/ledger"
	"github.com/jhoicas/moderna-shop-api/internal/application/purchasing"
	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/infrastructure/memory"
)

func newOrders(t *testing.T, opts purchasing.Options) (*purchasing.OrderUseCase, *memory.Store) {
	t.Helper()
	store := memory.New(decimal.NewFromInt(1000))
	journal := ledger.NewJournalUseCase(store, store.Ledger(), store.Transactions())
	return purchasing.NewOrderUseCase(store, store.Orders(), journal, opts), store
}

func sampleOrder() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Supplier: "Droguería Central",
		Items: []dto.OrderItemRequest{
			{ProductName: "Gasa estéril", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 10},
			{ProductName: "Guantes nitrilo", UnitPrice: decimal.RequireFromString("12.00"), Quantity: 2},
		},
	}
}

func TestCreate_GeneratesCodeAndTotal(t *testing.T) {
	uc, _ := newOrders(t, purchasing.Options{})

	out, err := uc.Create(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Code, "PED-"))
	assert.Len(t, out.Code, len("PED-")+8)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, "49.00", out.Total.StringFixed(2))
	assert.Len(t, out.Items, 2)

	got, err := uc.Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Code, got.Code)
	assert.Len(t, got.Items, 2)
}

func TestCreate_Rules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateOrderRequest)
	}{
		{"total no coincide", func(r *dto.CreateOrderRequest) { r.Total = decimal.NewFromInt(10) }},
		{"estado inicial distinto de pendiente", func(r *dto.CreateOrderRequest) { r.Status = entity.OrderStatusPaid }},
		{"sin productos", func(r *dto.CreateOrderRequest) { r.Items = nil }},
		{"sin proveedor", func(r *dto.CreateOrderRequest) { r.Supplier = " " }},
		{"cantidad cero", func(r *dto.CreateOrderRequest) { r.Items[0].Quantity = 0 }},
		{"precio negativo", func(r *dto.CreateOrderRequest) { r.Items[1].UnitPrice = decimal.NewFromInt(-1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := newOrders(t, purchasing.Options{})
			req := sampleOrder()
			tc.mutate(&req)
			_, err := uc.Create(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_ExplicitMatchingTotalAndDuplicateCode(t *testing.T) {
	uc, _ := newOrders(t, purchasing.Options{})
	req := sampleOrder()
	req.Code = "PED-0001"
	req.Total = decimal.RequireFromString("49.00")

	out, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "PED-0001", out.Code)

	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestTransition_PayTwiceRejected(t *testing.T) {
	uc, _ := newOrders(t, purchasing.Options{})
	ctx := context.Background()
	created, err := uc.Create(ctx, sampleOrder())
	require.NoError(t, err)

	res, err := uc.MarkPaid(ctx, dto.OrderTransitionRequest{OrderID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, res.Status)

	_, err = uc.MarkPaid(ctx, dto.OrderTransitionRequest{OrderID: created.ID})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, got.Status)
}

func TestTransition_TerminalStatesAreFrozen(t *testing.T) {
	ctx := context.Background()
	for _, finish := range []string{"completar", "cancelar"} {
		t.Run(finish, func(t *testing.T) {
			uc, _ := newOrders(t, purchasing.Options{})
			created, err := uc.Create(ctx, sampleOrder())
			require.NoError(t, err)
			req := dto.OrderTransitionRequest{OrderID: created.ID}
			if finish == "completar" {
				_, err = uc.MarkCompleted(ctx, req)
			} else {
				_, err = uc.Cancel(ctx, req)
			}
			require.NoError(t, err)

			before, err := uc.Get(ctx, created.ID)
			require.NoError(t, err)

			_, err = uc.MarkPaid(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			_, err = uc.MarkCompleted(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			_, err = uc.Cancel(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)

			after, err := uc.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, before.Status, after.Status)
			assert.Equal(t, before.Notes, after.Notes)
			assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
		})
	}
}

func TestTransition_NotesAccumulate(t *testing.T) {
	uc, _ := newOrders(t, purchasing.Options{})
	ctx := context.Background()
	req := sampleOrder()
	req.Notes = "Entrega en bodega 2"
	created, err := uc.Create(ctx, req)
	require.NoError(t, err)

	_, err = uc.MarkPaid(ctx, dto.OrderTransitionRequest{OrderID: created.ID, Note: "transferencia"})
	require.NoError(t, err)
	_, err = uc.MarkCompleted(ctx, dto.OrderTransitionRequest{OrderID: created.ID})
	require.NoError(t, err)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	parts := strings.Split(got.Notes, entity.NotesSeparator)
	require.Len(t, parts, 3)
	assert.Equal(t, "Entrega en bodega 2", parts[0])
	assert.Contains(t, parts[1], "Pedido marcado como pagado: transferencia")
	assert.Contains(t, parts[2], "Pedido completado")
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
}

func TestTransition_NotFound(t *testing.T) {
	uc, _ := newOrders(t, purchasing.Options{})
	_, err := uc.Cancel(context.Background(), dto.OrderTransitionRequest{OrderID: 77})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Cancel(context.Background(), dto.OrderTransitionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkPaid_PostsExpense(t *testing.T) {
	uc, store := newOrders(t, purchasing.Options{PostPaymentsToLedger: true})
	ctx := context.Background()
	created, err := uc.Create(ctx, sampleOrder())
	require.NoError(t, err)

	_, err = uc.MarkPaid(ctx, dto.OrderTransitionRequest{OrderID: created.ID})
	require.NoError(t, err)

	list, err := store.Transactions().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.TransactionKindExpense, list[0].Kind)
	assert.Equal(t, "Pago pedido "+created.Code, list[0].Description)
	assert.Equal(t, "49.00", list[0].Amount.StringFixed(2))

	l, err := store.Ledger().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "951.00", l.FinalBalance().StringFixed(2))
}

func TestMarkPaid_NoPostingByDefault(t *testing.T) {
	uc, store := newOrders(t, purchasing.Options{})
	ctx := context.Background()
	created, err := uc.Create(ctx, sampleOrder())
	require.NoError(t, err)
	_, err = uc.MarkPaid(ctx, dto.OrderTransitionRequest{OrderID: created.ID})
	require.NoError(t, err)

	list, err := store.Transactions().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
