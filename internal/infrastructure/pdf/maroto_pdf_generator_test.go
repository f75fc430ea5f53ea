package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/moderna-shop-api/internal/application/sales"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0,00",
		"15":        "$15,00",
		"999.9":     "$999,90",
		"25000":     "$25.000,00",
		"1234567.5": "$1.234.567,50",
		"-3":        "-$3,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateSaleReceipt(t *testing.T) {
	g := NewMarotoPDFGenerator("")
	sale := &entity.Sale{ID: 12, Date: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), Total: decimal.RequireFromString("15.00")}
	lines := []sales.ReceiptLine{
		{ProductName: "Acetaminofén 500mg", Quantity: 3, UnitPrice: decimal.RequireFromString("5.00"), Subtotal: decimal.RequireFromString("15.00")},
	}

	out, err := g.GenerateSaleReceipt(context.Background(), sale, lines)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
