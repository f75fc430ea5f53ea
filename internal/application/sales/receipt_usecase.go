package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

// ReceiptLine línea del comprobante con el nombre del producto ya resuelto.
type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptPDFGenerator genera el comprobante de venta en PDF (implementado en infrastructure/pdf).
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, lines []ReceiptLine) ([]byte, error)
}

// ReceiptUseCase arma el comprobante de una venta ya registrada.
type ReceiptUseCase struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(sales repository.SaleRepository, products repository.ProductRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, products: products, generator: generator}
}

// Receipt devuelve los bytes del PDF y el nombre de archivo sugerido.
// Un producto borrado después de la venta se imprime como "Producto #id".
func (uc *ReceiptUseCase) Receipt(ctx context.Context, saleID int64) ([]byte, string, error) {
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", fmt.Errorf("venta %d: %w", saleID, domain.ErrNotFound)
	}

	names := make(map[int64]string, len(sale.Items))
	lines := make([]ReceiptLine, 0, len(sale.Items))
	for _, it := range sale.Items {
		name, ok := names[it.ProductID]
		if !ok {
			p, err := uc.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, "", fmt.Errorf("comprobante: obtener producto: %w", err)
			}
			name = fmt.Sprintf("Producto #%d", it.ProductID)
			if p != nil {
				name = p.Name
			}
			names[it.ProductID] = name
		}
		lines = append(lines, ReceiptLine{
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}

	pdf, err := uc.generator.GenerateSaleReceipt(ctx, sale, lines)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("venta-%d.pdf", sale.ID), nil
}
