package ports

import (
	"context"

	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma unidad de trabajo.
type TxRepos struct {
	Products     repository.ProductRepository
	Sales        repository.SaleRepository
	Transactions repository.TransactionRepository
	Ledger       repository.LedgerRepository
	Orders       repository.PurchaseOrderRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; en cualquier otro caso rollback completo antes de devolver el error.
// No reintenta: un fallo de commit se devuelve como domain.ErrConflictDuringCommit.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
