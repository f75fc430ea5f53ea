package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/ports"
	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/entity"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
)

// Entry asiento a registrar en el diario de caja.
type Entry struct {
	Description string
	Amount      decimal.Decimal
	Kind        string
	Date        time.Time
}

// Validate revisa las precondiciones del asiento. Se llama antes de cualquier escritura.
func (e Entry) Validate() error {
	if !entity.ValidTransactionKind(e.Kind) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, e.Kind)
	}
	if strings.TrimSpace(e.Description) == "" {
		return domain.Invalid("description es requerido")
	}
	if !e.Amount.IsPositive() {
		return domain.Invalid("amount debe ser mayor que 0")
	}
	if !e.Amount.Equal(e.Amount.Round(2)) {
		return domain.Invalid("amount admite máximo 2 decimales")
	}
	if e.Date.IsZero() {
		return domain.Invalid("date es requerido")
	}
	return nil
}

// JournalUseCase registra asientos del diario y mantiene el saldo en la misma transacción.
type JournalUseCase struct {
	txRunner ports.TxRunner
	ledger   repository.LedgerRepository
	journal  repository.TransactionRepository
	now      func() time.Time
}

// NewJournalUseCase construye el caso de uso. ledger y journal se usan solo para lecturas fuera de tx.
func NewJournalUseCase(txRunner ports.TxRunner, ledger repository.LedgerRepository, journal repository.TransactionRepository) *JournalUseCase {
	return &JournalUseCase{txRunner: txRunner, ledger: ledger, journal: journal, now: time.Now}
}

// Record valida el asiento, inserta la fila del diario y aplica el saldo de forma atómica.
func (uc *JournalUseCase) Record(ctx context.Context, in dto.RecordTransactionRequest) (int64, error) {
	entry := Entry{Description: in.Description, Kind: in.Kind}
	if in.Amount != nil {
		entry.Amount = *in.Amount
	}
	if in.Date != nil {
		entry.Date = in.Date.Time
	}
	return uc.RecordEntry(ctx, entry)
}

// RecordEntry igual que Record pero recibe el asiento ya armado.
func (uc *JournalUseCase) RecordEntry(ctx context.Context, entry Entry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		var err error
		id, err = uc.RecordInTx(ctx, repos, entry)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RecordInTx registra el asiento con los repositorios del caller (misma transacción).
// Si retorna error el caller debe hacer rollback.
func (uc *JournalUseCase) RecordInTx(ctx context.Context, repos ports.TxRepos, entry Entry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}
	tr := &entity.Transaction{
		Description: strings.TrimSpace(entry.Description),
		Amount:      entry.Amount.Round(2),
		Kind:        entry.Kind,
		Date:        entry.Date,
		CreatedAt:   uc.now(),
	}
	if err := repos.Transactions.Create(ctx, tr); err != nil {
		return 0, err
	}
	if err := repos.Ledger.Post(ctx, tr.Kind, tr.Amount); err != nil {
		return 0, err
	}
	return tr.ID, nil
}

// GetLedger devuelve los totales actuales del libro.
func (uc *JournalUseCase) GetLedger(ctx context.Context) (*dto.LedgerResponse, error) {
	l, err := uc.ledger.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerResponse{
		SaldoBase:     l.BaseBalance,
		TotalIngresos: l.TotalIncome,
		TotalEgresos:  l.TotalExpense,
		SaldoActual:   l.Balance,
		SaldoFinal:    l.FinalBalance(),
		UpdatedAt:     l.UpdatedAt,
	}, nil
}

// ListTransactions lista el diario del más reciente al más antiguo.
func (uc *JournalUseCase) ListTransactions(ctx context.Context, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	page.DefaultPage()
	list, err := uc.journal.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, tr := range list {
		out = append(out, dto.TransactionResponse{
			ID:          tr.ID,
			Description: tr.Description,
			Amount:      tr.Amount,
			Kind:        tr.Kind,
			Date:        dto.Date{Time: tr.Date},
			CreatedAt:   tr.CreatedAt,
		})
	}
	return out, nil
}
