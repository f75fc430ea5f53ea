package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository       = (*productRepo)(nil)
	_ repository.SaleRepository          = (*saleRepo)(nil)
	_ repository.TransactionRepository   = (*transactionRepo)(nil)
	_ repository.LedgerRepository        = (*ledgerRepo)(nil)
	_ repository.PurchaseOrderRepository = (*orderRepo)(nil)
	_ repository.WorkerRepository        = (*workerRepo)(nil)
)

// ── productos ────────────────────────────────────────────────────────────────

type productRepo struct{ view }

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	defer r.rlock()()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate: el candado del store ya serializa la transacción.
func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) LockForUpdate(_ context.Context, _ []int64) error { return nil }

func (r *productRepo) UpdateStock(_ context.Context, id int64, stock int) error {
	defer r.lock()()
	p, ok := r.s.st.products[id]
	if !ok {
		return fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
	}
	if stock < 0 {
		return fmt.Errorf("%w: producto %d quedaría en %d", domain.ErrInsufficientStock, id, stock)
	}
	p.Stock = stock
	p.UpdatedAt = r.s.now()
	r.s.st.products[id] = p
	return nil
}

// ── ventas ───────────────────────────────────────────────────────────────────

type saleRepo struct{ view }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.lock()()
	r.s.st.seq.sale++
	sale.ID = r.s.st.seq.sale
	h := *sale
	h.Items = nil
	r.s.st.sales[h.ID] = h
	return nil
}

func (r *saleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	defer r.lock()()
	if _, ok := r.s.st.sales[item.SaleID]; !ok {
		return fmt.Errorf("venta %d: %w", item.SaleID, domain.ErrNotFound)
	}
	if _, ok := r.s.st.products[item.ProductID]; !ok {
		return fmt.Errorf("%w: %d", domain.ErrProductNotFound, item.ProductID)
	}
	r.s.st.seq.saleItem++
	item.ID = r.s.st.seq.saleItem
	r.s.st.saleItems = append(r.s.st.saleItems, *item)
	return nil
}

func (r *saleRepo) UpdateTotal(_ context.Context, saleID int64, total decimal.Decimal) error {
	defer r.lock()()
	h, ok := r.s.st.sales[saleID]
	if !ok {
		return fmt.Errorf("venta %d: %w", saleID, domain.ErrNotFound)
	}
	h.Total = total
	r.s.st.sales[saleID] = h
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	defer r.rlock()()
	h, ok := r.s.st.sales[id]
	if !ok {
		return nil, nil
	}
	for _, it := range r.s.st.saleItems {
		if it.SaleID == id {
			h.Items = append(h.Items, &it)
		}
	}
	return &h, nil
}

// ── diario de caja ───────────────────────────────────────────────────────────

type transactionRepo struct{ view }

func (r *transactionRepo) Create(_ context.Context, tr *entity.Transaction) error {
	defer r.lock()()
	if !tr.Amount.IsPositive() {
		return domain.Invalid("monto debe ser mayor que 0")
	}
	if !entity.ValidTransactionKind(tr.Kind) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, tr.Kind)
	}
	r.s.st.seq.transaction++
	tr.ID = r.s.st.seq.transaction
	r.s.st.transactions = append(r.s.st.transactions, *tr)
	return nil
}

// List ordena por fecha descendente y luego por id descendente.
func (r *transactionRepo) List(_ context.Context, limit, offset int) ([]*entity.Transaction, error) {
	defer r.rlock()()
	all := slices.Clone(r.s.st.transactions)
	slices.SortFunc(all, func(a, b entity.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if offset >= len(all) {
		return []*entity.Transaction{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*entity.Transaction, 0, len(all))
	for i := range all {
		out = append(out, &all[i])
	}
	return out, nil
}

// ── saldo ────────────────────────────────────────────────────────────────────

type ledgerRepo struct{ view }

func (r *ledgerRepo) Post(_ context.Context, kind string, amount decimal.Decimal) error {
	defer r.lock()()
	if r.s.st.ledger == nil {
		return fmt.Errorf("saldo no inicializado: %w", domain.ErrNotFound)
	}
	if !entity.ValidTransactionKind(kind) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	r.s.st.ledger.Apply(kind, amount)
	r.s.st.ledger.UpdatedAt = r.s.now()
	return nil
}

func (r *ledgerRepo) Get(_ context.Context) (*entity.Ledger, error) {
	defer r.rlock()()
	if r.s.st.ledger == nil {
		return nil, fmt.Errorf("saldo no inicializado: %w", domain.ErrNotFound)
	}
	l := *r.s.st.ledger
	return &l, nil
}

// ── pedidos ──────────────────────────────────────────────────────────────────

type orderRepo struct{ view }

func (r *orderRepo) Create(_ context.Context, order *entity.PurchaseOrder) error {
	defer r.lock()()
	for _, o := range r.s.st.orders {
		if o.Code == order.Code {
			return fmt.Errorf("%w: codigo_pedido %s", domain.ErrDuplicate, order.Code)
		}
	}
	r.s.st.seq.order++
	order.ID = r.s.st.seq.order
	h := *order
	h.Items = nil
	r.s.st.orders[h.ID] = h
	return nil
}

func (r *orderRepo) CreateItem(_ context.Context, item *entity.PurchaseOrderItem) error {
	defer r.lock()()
	if _, ok := r.s.st.orders[item.OrderID]; !ok {
		return fmt.Errorf("pedido %d: %w", item.OrderID, domain.ErrNotFound)
	}
	r.s.st.seq.orderItem++
	item.ID = r.s.st.seq.orderItem
	r.s.st.orderItems = append(r.s.st.orderItems, *item)
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	defer r.rlock()()
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	for _, it := range r.s.st.orderItems {
		if it.OrderID == id {
			o.Items = append(o.Items, &it)
		}
	}
	return &o, nil
}

func (r *orderRepo) GetForUpdate(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	defer r.rlock()()
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, order *entity.PurchaseOrder) error {
	defer r.lock()()
	o, ok := r.s.st.orders[order.ID]
	if !ok {
		return fmt.Errorf("pedido %d: %w", order.ID, domain.ErrNotFound)
	}
	o.Status = order.Status
	o.Notes = order.Notes
	o.UpdatedAt = order.UpdatedAt
	r.s.st.orders[o.ID] = o
	return nil
}

// ── trabajadores ─────────────────────────────────────────────────────────────

type workerRepo struct{ view }

func (r *workerRepo) Create(_ context.Context, w *entity.Worker) error {
	defer r.lock()()
	for _, existing := range r.s.st.workers {
		if existing.Email == w.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.st.seq.worker++
	w.ID = r.s.st.seq.worker
	r.s.st.workers[w.ID] = *w
	return nil
}

func (r *workerRepo) GetByID(_ context.Context, id int64) (*entity.Worker, error) {
	defer r.rlock()()
	w, ok := r.s.st.workers[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *workerRepo) GetByEmail(_ context.Context, email string) (*entity.Worker, error) {
	defer r.rlock()()
	for _, w := range r.s.st.workers {
		if w.Email == email {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *workerRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	defer r.lock()()
	w, ok := r.s.st.workers[id]
	if !ok {
		return fmt.Errorf("%w: %d", domain.ErrUserNotFound, id)
	}
	w.Status = status
	r.s.st.workers[id] = w
	return nil
}
