package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/ledger"
	"github.com/jhoicas/moderna-shop-api/internal/application/ports"
	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

// LedgerPoster registra un asiento dentro de la transacción del caller.
type LedgerPoster interface {
	RecordInTx(ctx context.Context, repos ports.TxRepos, entry ledger.Entry) (int64, error)
}

// Options comportamiento configurable del ciclo de vida del pedido.
type Options struct {
	PostPaymentsToLedger bool // registra un egreso al marcar pagado
}

// OrderUseCase crea pedidos a proveedor y aplica la máquina de estados
// pendiente → pagado → completado, con cancelación desde pendiente o pagado.
type OrderUseCase struct {
	txRunner ports.TxRunner
	orders   repository.PurchaseOrderRepository
	journal  LedgerPoster
	opts     Options
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso. orders se usa para lecturas fuera de tx.
func NewOrderUseCase(txRunner ports.TxRunner, orders repository.PurchaseOrderRepository, journal LedgerPoster, opts Options) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orders: orders, journal: journal, opts: opts, now: time.Now}
}

// Create inserta la cabecera y sus líneas en una sola transacción.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.buildOrder(in)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		for _, it := range order.Items {
			it.OrderID = order.ID
			if err := repos.Orders.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

func (uc *OrderUseCase) buildOrder(in dto.CreateOrderRequest) (*entity.PurchaseOrder, error) {
	supplier := strings.TrimSpace(in.Supplier)
	if supplier == "" {
		return nil, domain.Invalid("proveedor es requerido")
	}
	status := strings.TrimSpace(in.Status)
	if status != "" && status != entity.OrderStatusPending {
		return nil, domain.Invalid("un pedido nuevo solo puede crearse en estado %s", entity.OrderStatusPending)
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("el pedido debe tener al menos un producto")
	}

	now := uc.now()
	order := &entity.PurchaseOrder{
		Code:      strings.TrimSpace(in.Code),
		Supplier:  supplier,
		Status:    entity.OrderStatusPending,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
		Items:     make([]*entity.PurchaseOrderItem, 0, len(in.Items)),
	}
	if order.Code == "" {
		order.Code = newOrderCode()
	}
	for i, it := range in.Items {
		name := strings.TrimSpace(it.ProductName)
		if name == "" {
			return nil, domain.Invalid("producto %d: nombre_producto es requerido", i+1)
		}
		if it.Quantity <= 0 {
			return nil, domain.Invalid("producto %d: cantidad debe ser mayor que 0", i+1)
		}
		if it.UnitPrice.IsNegative() || !it.UnitPrice.Equal(it.UnitPrice.Round(2)) {
			return nil, domain.Invalid("producto %d: precio_unitario inválido", i+1)
		}
		order.Items = append(order.Items, &entity.PurchaseOrderItem{
			ProductName: name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}

	computed := order.ItemsTotal()
	switch {
	case in.Total.IsZero():
		order.Total = computed
	case in.Total.Equal(computed):
		order.Total = in.Total
	default:
		return nil, domain.Invalid("total %s no coincide con la suma de productos %s",
			in.Total.StringFixed(2), computed.StringFixed(2))
	}
	return order, nil
}

// newOrderCode genera PED-XXXXXXXX a partir de un uuid.
func newOrderCode() string {
	return "PED-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// MarkPaid pendiente → pagado.
func (uc *OrderUseCase) MarkPaid(ctx context.Context, in dto.OrderTransitionRequest) (*dto.OrderTransitionResponse, error) {
	return uc.transition(ctx, in, entity.OrderEventMarkPaid)
}

// MarkCompleted pendiente|pagado → completado.
func (uc *OrderUseCase) MarkCompleted(ctx context.Context, in dto.OrderTransitionRequest) (*dto.OrderTransitionResponse, error) {
	return uc.transition(ctx, in, entity.OrderEventMarkCompleted)
}

// Cancel pendiente|pagado → cancelado.
func (uc *OrderUseCase) Cancel(ctx context.Context, in dto.OrderTransitionRequest) (*dto.OrderTransitionResponse, error) {
	return uc.transition(ctx, in, entity.OrderEventCancel)
}

// transition bloquea el pedido, valida el evento contra el estado actual y persiste
// estado, nota y updated_at en la misma transacción.
func (uc *OrderUseCase) transition(ctx context.Context, in dto.OrderTransitionRequest, ev entity.OrderEvent) (*dto.OrderTransitionResponse, error) {
	if in.OrderID <= 0 {
		return nil, domain.Invalid("pedido_id inválido")
	}
	var out *dto.OrderTransitionResponse
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		order, err := repos.Orders.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %d: %w", in.OrderID, domain.ErrNotFound)
		}
		now := uc.now()
		if err := order.Transition(ev, now, in.Note); err != nil {
			return err
		}
		if err := repos.Orders.UpdateStatus(ctx, order); err != nil {
			return err
		}
		if ev == entity.OrderEventMarkPaid && uc.opts.PostPaymentsToLedger && uc.journal != nil && order.Total.IsPositive() {
			if _, err := uc.journal.RecordInTx(ctx, repos, ledger.Entry{
				Description: "Pago pedido " + order.Code,
				Amount:      order.Total,
				Kind:        entity.TransactionKindExpense,
				Date:        now,
			}); err != nil {
				return err
			}
		}
		out = &dto.OrderTransitionResponse{OrderID: order.ID, Status: order.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get devuelve el pedido con sus líneas.
func (uc *OrderUseCase) Get(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("pedido %d: %w", id, domain.ErrNotFound)
	}
	return toOrderResponse(order), nil
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:        o.ID,
		Code:      o.Code,
		Supplier:  o.Supplier,
		Status:    o.Status,
		Total:     o.Total,
		Notes:     o.Notes,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Items:     make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return out
}
