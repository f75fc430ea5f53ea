package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/ledger"
)

// LedgerHandler diario de caja y saldo.
type LedgerHandler struct {
	uc *ledger.JournalUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.JournalUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar ingreso o egreso
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "description, amount, kind (ingreso|egreso), date"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/transacciones [post]
func (h *LedgerHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, badInput(c, err, msgInvalidBody))
	}
	id, err := h.uc.Record(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// List godoc
// @Summary      Listar diario de caja (más reciente primero)
// @Tags         caja
// @Produce      json
// @Param        limit   query  int  false  "máximo 100, por defecto 20"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.TransactionResponse
// @Router       /api/v1/transacciones [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, badInput(c, err, "parámetros de paginación inválidos"))
	}
	if err := validateStruct(&page); err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListTransactions(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Balance godoc
// @Summary      Saldo actual de caja
// @Tags         caja
// @Produce      json
// @Success      200  {object}  dto.LedgerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/saldo [get]
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	l, err := h.uc.GetLedger(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(l)
}
