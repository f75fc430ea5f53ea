package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/purchasing"
)

// OrderHandler pedidos a proveedor y sus transiciones de estado.
type OrderHandler struct {
	uc *purchasing.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *purchasing.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido a proveedor
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "codigo_pedido, proveedor, productos[]"
// @Success      201   {object}  dto.OrderEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/pedidos [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	order, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderEnvelope{Pedido: *order})
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         pedidos
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/pedidos/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OrderEnvelope{Pedido: *order})
}

// MarkPaid godoc
// @Summary      Marcar pedido como pagado (pendiente → pagado)
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderTransitionRequest  true  "pedido_id, nota"
// @Success      200   {object}  dto.OrderTransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/pedidos/pagar [post]
func (h *OrderHandler) MarkPaid(c *fiber.Ctx) error {
	return h.transition(c, h.uc.MarkPaid)
}

// MarkCompleted godoc
// @Summary      Completar pedido (pendiente|pagado → completado)
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderTransitionRequest  true  "pedido_id, nota"
// @Success      200   {object}  dto.OrderTransitionResponse
// @Router       /api/v1/pedidos/completar [post]
func (h *OrderHandler) MarkCompleted(c *fiber.Ctx) error {
	return h.transition(c, h.uc.MarkCompleted)
}

// Cancel godoc
// @Summary      Cancelar pedido (pendiente|pagado → cancelado)
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderTransitionRequest  true  "pedido_id, nota"
// @Success      200   {object}  dto.OrderTransitionResponse
// @Router       /api/v1/pedidos/cancelar [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *OrderHandler) transition(c *fiber.Ctx, op func(context.Context, dto.OrderTransitionRequest) (*dto.OrderTransitionResponse, error)) error {
	var in dto.OrderTransitionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := op(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
