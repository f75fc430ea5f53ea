package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/inventory"
)

// InventoryHandler reabastecimiento, consumo y ajuste de existencias.
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Restock godoc
// @Summary      Reabastecer producto (suma cantidad)
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "cantidad > 0"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/productos/{id}/reabastecer [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	return h.apply(c, h.uc.Restock)
}

// Consume godoc
// @Summary      Consumir producto (resta cantidad)
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "cantidad > 0"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/productos/{id}/consumir [post]
func (h *InventoryHandler) Consume(c *fiber.Ctx) error {
	return h.apply(c, h.uc.Consume)
}

// Adjust godoc
// @Summary      Ajuste administrativo (cantidad con signo)
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "cantidad != 0"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/productos/{id}/ajustar [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	return h.apply(c, h.uc.Adjust)
}

func (h *InventoryHandler) apply(c *fiber.Ctx, op func(ctx context.Context, productID int64, cantidad int) (int, error)) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AdjustStockRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	stock, err := op(c.Context(), id, in.Cantidad)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{NuevoStock: stock})
}
