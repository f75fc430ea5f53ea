package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/inventory"
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

// Options comportamiento configurable de la venta.
type Options struct {
	PostToLedger bool // registra un ingreso por el total de cada venta
}

// SaleUseCase procesa ventas: valida stock, crea cabecera y líneas y descuenta inventario en una sola transacción.
type SaleUseCase struct {
	txRunner ports.TxRunner
	sales    repository.SaleRepository
	journal  LedgerPoster
	opts     Options
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso. sales se usa para lecturas fuera de tx.
func NewSaleUseCase(txRunner ports.TxRunner, sales repository.SaleRepository, journal LedgerPoster, opts Options) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, sales: sales, journal: journal, opts: opts, now: time.Now}
}

// line línea ya validada con el precio resuelto.
type line struct {
	productID int64
	quantity  int
	unitPrice decimal.Decimal
	subtotal  decimal.Decimal
}

// Sell registra la venta y devuelve su id.
//
// Dentro de la transacción: bloquea los productos en orden de id, valida existencia, precio,
// subtotal y stock acumulado en el orden del pedido, y solo entonces escribe cabecera, líneas y
// descuentos. Cualquier error hace rollback: nunca queda una venta o un descuento parcial.
func (uc *SaleUseCase) Sell(ctx context.Context, items []dto.SaleItemRequest) (int64, error) {
	if err := validateItems(items); err != nil {
		return 0, err
	}

	var saleID int64
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		if err := repos.Products.LockForUpdate(ctx, distinctIDs(items)); err != nil {
			return err
		}
		lines, total, err := resolveLines(ctx, repos.Products, items)
		if err != nil {
			return err
		}

		now := uc.now()
		sale := &entity.Sale{Date: now, Total: decimal.Zero}
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, l := range lines {
			item := &entity.SaleItem{
				SaleID:    sale.ID,
				ProductID: l.productID,
				Quantity:  l.quantity,
				UnitPrice: l.unitPrice,
				Subtotal:  l.subtotal,
			}
			if err := repos.Sales.CreateItem(ctx, item); err != nil {
				return err
			}
			if _, err := inventory.AdjustInTx(ctx, repos.Products, l.productID, -l.quantity); err != nil {
				return err
			}
		}
		if err := repos.Sales.UpdateTotal(ctx, sale.ID, total); err != nil {
			return err
		}

		if uc.opts.PostToLedger && uc.journal != nil && total.IsPositive() {
			if _, err := uc.journal.RecordInTx(ctx, repos, ledger.Entry{
				Description: fmt.Sprintf("Venta #%d", sale.ID),
				Amount:      total,
				Kind:        entity.TransactionKindIncome,
				Date:        now,
			}); err != nil {
				return err
			}
		}
		saleID = sale.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saleID, nil
}

// GetSale devuelve la venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %d: %w", id, domain.ErrNotFound)
	}
	return toSaleResponse(sale), nil
}

func validateItems(items []dto.SaleItemRequest) error {
	if len(items) == 0 {
		return domain.Invalid("la venta debe tener al menos un producto")
	}
	for i, it := range items {
		if it.ProductID <= 0 {
			return domain.Invalid("línea %d: productId inválido", i+1)
		}
		if it.Quantity <= 0 {
			return domain.Invalid("línea %d: quantity debe ser mayor que 0", i+1)
		}
		if it.UnitPrice == nil {
			continue
		}
		if it.UnitPrice.IsNegative() {
			return domain.Invalid("línea %d: unitPrice no puede ser negativo", i+1)
		}
		if !it.UnitPrice.Equal(it.UnitPrice.Round(2)) {
			return domain.Invalid("línea %d: unitPrice admite máximo 2 decimales", i+1)
		}
	}
	return nil
}

// resolveLines recorre las líneas en orden, con las filas ya bloqueadas, y valida
// existencia, subtotal y stock acumulado por producto (un producto puede repetirse).
func resolveLines(ctx context.Context, products repository.ProductRepository, items []dto.SaleItemRequest) ([]line, decimal.Decimal, error) {
	available := make(map[int64]int)
	lines := make([]line, 0, len(items))
	total := decimal.Zero

	for i, it := range items {
		stock, seen := available[it.ProductID]
		var price decimal.Decimal
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		if !seen || it.UnitPrice == nil {
			p, err := products.GetForUpdate(ctx, it.ProductID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			if p == nil {
				return nil, decimal.Zero, fmt.Errorf("%w: %d", domain.ErrProductNotFound, it.ProductID)
			}
			if !seen {
				stock = p.Stock
			}
			if it.UnitPrice == nil {
				price = p.UnitPrice
			}
		}
		if it.Quantity > stock {
			return nil, decimal.Zero, fmt.Errorf("%w: producto %d tiene %d, se solicitan %d",
				domain.ErrInsufficientStock, it.ProductID, stock, it.Quantity)
		}
		subtotal := entity.LineSubtotal(it.Quantity, price)
		if it.Subtotal != nil && !it.Subtotal.Equal(subtotal) {
			return nil, decimal.Zero, domain.Invalid("línea %d: subtotal %s no coincide con %s",
				i+1, it.Subtotal.StringFixed(2), subtotal.StringFixed(2))
		}
		available[it.ProductID] = stock - it.Quantity
		total = total.Add(subtotal)
		lines = append(lines, line{productID: it.ProductID, quantity: it.Quantity, unitPrice: price, subtotal: subtotal})
	}
	return lines, total, nil
}

func distinctIDs(items []dto.SaleItemRequest) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	out := &dto.SaleResponse{ID: s.ID, Date: s.Date, Total: s.Total, Items: make([]dto.SaleItemResponse, 0, len(s.Items))}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return out
}
