package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
)

func newOrder(status string) *PurchaseOrder {
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &PurchaseOrder{ID: 1, Code: "PED-1", Status: status, CreatedAt: created, UpdatedAt: created}
}

func TestTransition_StateTable(t *testing.T) {
	cases := []struct {
		from string
		ev   OrderEvent
		ok   bool
		to   string
	}{
		{OrderStatusPending, OrderEventMarkPaid, true, OrderStatusPaid},
		{OrderStatusPending, OrderEventMarkCompleted, true, OrderStatusCompleted},
		{OrderStatusPending, OrderEventCancel, true, OrderStatusCancelled},
		{OrderStatusPaid, OrderEventMarkPaid, false, ""},
		{OrderStatusPaid, OrderEventMarkCompleted, true, OrderStatusCompleted},
		{OrderStatusPaid, OrderEventCancel, true, OrderStatusCancelled},
		{OrderStatusCompleted, OrderEventMarkPaid, false, ""},
		{OrderStatusCompleted, OrderEventMarkCompleted, false, ""},
		{OrderStatusCompleted, OrderEventCancel, false, ""},
		{OrderStatusCancelled, OrderEventMarkPaid, false, ""},
		{OrderStatusCancelled, OrderEventMarkCompleted, false, ""},
		{OrderStatusCancelled, OrderEventCancel, false, ""},
	}
	now := time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)
	for _, tc := range cases {
		t.Run(tc.from+"/"+string(tc.ev), func(t *testing.T) {
			o := newOrder(tc.from)
			before := *o
			err := o.Transition(tc.ev, now, "")
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, o.Status)
				assert.Equal(t, now, o.UpdatedAt)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, before, *o, "un rechazo no debe modificar el pedido")
		})
	}
}

func TestTransition_NotesAreAppendOnly(t *testing.T) {
	o := newOrder(OrderStatusPending)
	o.Notes = "Entrega en bodega norte"

	t1 := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Hour)
	require.NoError(t, o.Transition(OrderEventMarkPaid, t1, "transferencia 123"))
	require.NoError(t, o.Transition(OrderEventMarkCompleted, t2, ""))

	assert.Equal(t,
		"Entrega en bodega norte; [2026-10-14 10:00:00] Pedido marcado como pagado: transferencia 123; [2026-10-14 12:00:00] Pedido completado",
		o.Notes)
}

func TestTransition_UnknownEvent(t *testing.T) {
	o := newOrder(OrderStatusPending)
	assert.False(t, ValidOrderEvent("reabrir"))
	assert.ErrorIs(t, o.Transition("reabrir", time.Now(), ""), domain.ErrInvalidTransition)
	assert.Equal(t, OrderStatusPending, o.Status)
}

func TestAppendNote(t *testing.T) {
	assert.Equal(t, "a", AppendNote("", "a"))
	assert.Equal(t, "a; b", AppendNote("a", "b"))
}

func TestItemsTotal(t *testing.T) {
	o := newOrder(OrderStatusPending)
	o.Items = []*PurchaseOrderItem{
		{ProductName: "Ibuprofeno 400mg", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 4},
		{ProductName: "Alcohol 70%", UnitPrice: decimal.RequireFromString("3.75"), Quantity: 2},
	}
	assert.True(t, decimal.RequireFromString("17.50").Equal(o.ItemsTotal()))
	assert.True(t, IsTerminal(OrderStatusCancelled))
	assert.False(t, IsTerminal(OrderStatusPaid))
}
