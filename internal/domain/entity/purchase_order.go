package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
)

// Estados del pedido a proveedor.
const (
	OrderStatusPending   = "pendiente"
	OrderStatusPaid      = "pagado"
	OrderStatusCompleted = "completado"
	OrderStatusCancelled = "cancelado"
)

// OrderEvent evento que dispara una transición del pedido.
type OrderEvent string

const (
	OrderEventMarkPaid      OrderEvent = "marcar-pagado"
	OrderEventMarkCompleted OrderEvent = "marcar-completado"
	OrderEventCancel        OrderEvent = "cancelar"
)

// NotesSeparator separa las notas de auditoría acumuladas.
const NotesSeparator = "; "

const noteTimeLayout = "2006-01-02 15:04:05"

// transitions: estado origen permitido -> estado destino, por evento.
var transitions = map[OrderEvent]struct {
	from []string
	to   string
	text string
}{
	OrderEventMarkPaid:      {from: []string{OrderStatusPending}, to: OrderStatusPaid, text: "Pedido marcado como pagado"},
	OrderEventMarkCompleted: {from: []string{OrderStatusPending, OrderStatusPaid}, to: OrderStatusCompleted, text: "Pedido completado"},
	OrderEventCancel:        {from: []string{OrderStatusPending, OrderStatusPaid}, to: OrderStatusCancelled, text: "Pedido cancelado"},
}

// PurchaseOrder cabecera del pedido a proveedor.
type PurchaseOrder struct {
	ID        int64
	Code      string // único
	Supplier  string
	Status    string
	Total     decimal.Decimal
	Notes     string // bitácora de auditoría, solo se agrega
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []*PurchaseOrderItem
}

// PurchaseOrderItem línea del pedido. ProductName está desnormalizado (no es FK).
type PurchaseOrderItem struct {
	ID          int64
	OrderID     int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// IsTerminal indica si el estado ya no admite transiciones.
func IsTerminal(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}

// ValidOrderEvent indica si el evento existe.
func ValidOrderEvent(ev OrderEvent) bool {
	_, ok := transitions[ev]
	return ok
}

// CanTransition indica si el evento es válido desde el estado actual.
func (o *PurchaseOrder) CanTransition(ev OrderEvent) bool {
	t, ok := transitions[ev]
	if !ok {
		return false
	}
	for _, s := range t.from {
		if o.Status == s {
			return true
		}
	}
	return false
}

// Transition aplica el evento: cambia estado, agrega nota con marca de tiempo y actualiza UpdatedAt.
// Si la transición no está permitida devuelve ErrInvalidTransition sin modificar el pedido.
func (o *PurchaseOrder) Transition(ev OrderEvent, now time.Time, note string) error {
	if !o.CanTransition(ev) {
		return fmt.Errorf("%w: pedido %d en estado %s no admite %s", domain.ErrInvalidTransition, o.ID, o.Status, ev)
	}
	t := transitions[ev]
	text := t.text
	if note = strings.TrimSpace(note); note != "" {
		text += ": " + note
	}
	o.Status = t.to
	o.Notes = AppendNote(o.Notes, fmt.Sprintf("[%s] %s", now.Format(noteTimeLayout), text))
	o.UpdatedAt = now
	return nil
}

// AppendNote concatena la nota nueva a las existentes con NotesSeparator.
func AppendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + NotesSeparator + note
}

// ItemsTotal suma precio unitario × cantidad de todas las líneas.
func (o *PurchaseOrder) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(LineSubtotal(it.Quantity, it.UnitPrice))
	}
	return total
}
