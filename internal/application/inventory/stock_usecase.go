package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/moderna-shop-api/internal/application/ports"
	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

// StockUseCase ajusta existencias de forma transaccional con bloqueo de fila (SELECT FOR UPDATE).
// Es la primitiva que usan reabastecimiento, consumo, ajuste administrativo y ventas.
type StockUseCase struct {
	txRunner ports.TxRunner
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner ports.TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner}
}

// Restock suma cantidad (> 0) al stock.
func (uc *StockUseCase) Restock(ctx context.Context, productID int64, cantidad int) (int, error) {
	if cantidad <= 0 {
		return 0, domain.Invalid("cantidad debe ser mayor que 0")
	}
	return uc.Adjust(ctx, productID, cantidad)
}

// Consume resta cantidad (> 0) del stock.
func (uc *StockUseCase) Consume(ctx context.Context, productID int64, cantidad int) (int, error) {
	if cantidad <= 0 {
		return 0, domain.Invalid("cantidad debe ser mayor que 0")
	}
	return uc.Adjust(ctx, productID, -cantidad)
}

// Adjust aplica delta (positivo o negativo) en su propia transacción y devuelve el stock nuevo.
func (uc *StockUseCase) Adjust(ctx context.Context, productID int64, delta int) (int, error) {
	if productID <= 0 {
		return 0, domain.Invalid("id de producto inválido")
	}
	if delta == 0 {
		return 0, domain.Invalid("cantidad no puede ser 0")
	}
	var newStock int
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		var err error
		newStock, err = AdjustInTx(ctx, repos.Products, productID, delta)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// AdjustInTx lee el stock bloqueando la fila, valida que no quede negativo y lo escribe.
// Usa el repositorio del caller (misma transacción); si retorna error el caller debe hacer rollback.
func AdjustInTx(ctx context.Context, products repository.ProductRepository, productID int64, delta int) (int, error) {
	p, err := products.GetForUpdate(ctx, productID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, fmt.Errorf("%w: %d", domain.ErrProductNotFound, productID)
	}
	newStock := p.Stock + delta
	if newStock < 0 {
		return 0, fmt.Errorf("%w: producto %d tiene %d, se solicitan %d", domain.ErrInsufficientStock, productID, p.Stock, -delta)
	}
	if err := products.UpdateStock(ctx, productID, newStock); err != nil {
		return 0, err
	}
	return newStock, nil
}
