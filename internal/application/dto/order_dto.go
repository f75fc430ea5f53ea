package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/v1/pedidos.
type CreateOrderRequest struct {
	Code     string             `json:"codigo_pedido" validate:"omitempty,max=50"`
	Supplier string             `json:"proveedor" validate:"required,max=200"`
	Status   string             `json:"estado"`
	Total    decimal.Decimal    `json:"total"`
	Notes    string             `json:"notas"`
	Items    []OrderItemRequest `json:"productos" validate:"required,min=1,dive"`
}

// OrderItemRequest línea del pedido.
type OrderItemRequest struct {
	ProductName string          `json:"nombre_producto" validate:"required,max=200"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Quantity    int             `json:"cantidad" validate:"required,gt=0"`
}

// OrderTransitionRequest body para pagar/completar/cancelar.
type OrderTransitionRequest struct {
	OrderID int64  `json:"pedido_id" validate:"required,gt=0"`
	Note    string `json:"nota" validate:"omitempty,max=500"`
}

// OrderTransitionResponse salida de una transición.
type OrderTransitionResponse struct {
	OrderID int64  `json:"pedido_id"`
	Status  string `json:"estado"`
}

// OrderItemResponse línea del pedido.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"nombre_producto"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Quantity    int             `json:"cantidad"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID        int64               `json:"pedido_id"`
	Code      string              `json:"codigo_pedido"`
	Supplier  string              `json:"proveedor"`
	Status    string              `json:"estado"`
	Total     decimal.Decimal     `json:"total"`
	Notes     string              `json:"notas"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Items     []OrderItemResponse `json:"productos"`
}

// OrderEnvelope envoltorio {pedido: {...}}.
type OrderEnvelope struct {
	Pedido OrderResponse `json:"pedido"`
}
