package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/moderna-shop-api/internal/application/dto"
	"github.com/jhoicas/moderna-shop-api/internal/application/sales"
)

// SaleHandler registro y consulta de ventas.
type SaleHandler struct {
	uc      *sales.SaleUseCase
	receipt *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receipt: receipt}
}

// Create godoc
// @Summary      Registrar venta
// @Description  El cuerpo es un arreglo de líneas. Todo o nada: si una línea falla no se descuenta nada.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.SaleItemRequest  true  "productId, quantity, unitPrice, subtotal"
// @Success      201   {object}  dto.SaleCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var items []dto.SaleItemRequest
	if err := c.BodyParser(&items); err != nil {
		return respondError(c, badInput(c, err, "el cuerpo debe ser un arreglo de productos"))
	}
	for i := range items {
		if err := validateStruct(&items[i]); err != nil {
			return respondError(c, fmt.Errorf("línea %d: %w", i+1, err))
		}
	}
	id, err := h.uc.Sell(c.Context(), items)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleCreatedResponse{SaleID: id})
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         ventas
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/ventas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	sale, err := h.uc.GetSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// Receipt godoc
// @Summary      Descargar comprobante de venta (PDF)
// @Tags         ventas
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/ventas/{id}/comprobante [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.receipt.Receipt(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}
