// Package memory implementa los puertos de persistencia en memoria para desarrollo y pruebas.
//
// Una unidad de trabajo toma el candado exclusivo del store durante todo Run, así que las
// transacciones quedan serializadas. Si fn falla o entra en pánico se restaura la foto tomada al inicio.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/moderna-shop-api/internal/application/ports"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

// state todo lo que una transacción puede modificar; se copia completo para el rollback.
type state struct {
	products     map[int64]entity.Product
	sales        map[int64]entity.Sale
	saleItems    []entity.SaleItem
	transactions []entity.Transaction
	ledger       *entity.Ledger
	orders       map[int64]entity.PurchaseOrder
	orderItems   []entity.PurchaseOrderItem
	workers      map[int64]entity.Worker
	seq          sequences
}

type sequences struct {
	product, sale, saleItem, transaction, order, orderItem, worker int64
}

func (st *state) clone() *state {
	c := &state{
		products:     maps.Clone(st.products),
		sales:        maps.Clone(st.sales),
		saleItems:    slices.Clone(st.saleItems),
		transactions: slices.Clone(st.transactions),
		orders:       maps.Clone(st.orders),
		orderItems:   slices.Clone(st.orderItems),
		workers:      maps.Clone(st.workers),
		seq:          st.seq,
	}
	if st.ledger != nil {
		l := *st.ledger
		c.ledger = &l
	}
	return c
}

// Store almacén en memoria. Implementa ports.TxRunner y todos los repositorios.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

var _ ports.TxRunner = (*Store)(nil)

// New crea un store vacío con el saldo inicializado en baseBalance.
func New(baseBalance decimal.Decimal) *Store {
	s := NewUninitialized()
	s.st.ledger = &entity.Ledger{
		BaseBalance:  baseBalance,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Balance:      baseBalance,
		UpdatedAt:    s.now(),
	}
	return s
}

// NewUninitialized crea un store sin fila de saldo (Post devuelve ErrNotFound).
func NewUninitialized() *Store {
	return &Store{
		st: &state{
			products: make(map[int64]entity.Product),
			sales:    make(map[int64]entity.Sale),
			orders:   make(map[int64]entity.PurchaseOrder),
			workers:  make(map[int64]entity.Worker),
		},
		now: time.Now,
	}
}

// NewSeeded crea un store con un catálogo de demostración para STORE=memory.
func NewSeeded(baseBalance decimal.Decimal) *Store {
	s := New(baseBalance)
	for _, p := range []entity.Product{
		{Name: "Acetaminofén 500mg x 10", Code: "MED-001", Stock: 120, UnitPrice: decimal.RequireFromString("3500"), Manufacturer: "Genfar", DosageForm: "tableta"},
		{Name: "Ibuprofeno 400mg x 10", Code: "MED-002", Stock: 80, UnitPrice: decimal.RequireFromString("6200"), Manufacturer: "MK", DosageForm: "tableta"},
		{Name: "Suero oral 500ml", Code: "MED-003", Stock: 40, UnitPrice: decimal.RequireFromString("4800"), Manufacturer: "Pedialyte", DosageForm: "solución"},
		{Name: "Alcohol antiséptico 350ml", Code: "CUI-001", Stock: 60, UnitPrice: decimal.RequireFromString("5900"), Manufacturer: "JGB"},
		{Name: "Tapabocas x 50", Code: "CUI-002", Stock: 25, UnitPrice: decimal.RequireFromString("12000")},
	} {
		s.AddProduct(p)
	}
	return s
}

// AddProduct inserta un producto (catálogo fuera del alcance transaccional) y devuelve su id.
// Si p.ID es 0 se asigna el siguiente.
func (s *Store) AddProduct(p entity.Product) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.st.seq.product++
		p.ID = s.st.seq.product
	} else if p.ID > s.st.seq.product {
		s.st.seq.product = p.ID
	}
	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.st.products[p.ID] = p
	return p.ID
}

// SaleCount número de cabeceras de venta persistidas.
func (s *Store) SaleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.st.sales)
}

// Run ejecuta fn con el candado exclusivo tomado. Si fn devuelve error o entra en pánico se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	v := view{s: s, tx: true}
	repos := ports.TxRepos{
		Products:     &productRepo{v},
		Sales:        &saleRepo{v},
		Transactions: &transactionRepo{v},
		Ledger:       &ledgerRepo{v},
		Orders:       &orderRepo{v},
	}
	committed := false
	defer func() {
		if !committed {
			s.st = snapshot
		}
	}()
	if err := fn(ctx, repos); err != nil {
		return err
	}
	committed = true
	return nil
}

// Products repositorio de productos para lecturas fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &productRepo{view{s: s}} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{view{s: s}} }

// Transactions diario de caja fuera de transacción.
func (s *Store) Transactions() repository.TransactionRepository { return &transactionRepo{view{s: s}} }

// Ledger saldo fuera de transacción.
func (s *Store) Ledger() repository.LedgerRepository { return &ledgerRepo{view{s: s}} }

// Orders pedidos fuera de transacción.
func (s *Store) Orders() repository.PurchaseOrderRepository { return &orderRepo{view{s: s}} }

// Workers trabajadores; no participan de unidades de trabajo.
func (s *Store) Workers() repository.WorkerRepository { return &workerRepo{view{s: s}} }

// view acceso al estado; dentro de Run el candado ya está tomado y no se vuelve a pedir.
type view struct {
	s  *Store
	tx bool
}

func (v view) rlock() func() {
	if v.tx {
		return func() {}
	}
	v.s.mu.RLock()
	return v.s.mu.RUnlock
}

func (v view) lock() func() {
	if v.tx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}
