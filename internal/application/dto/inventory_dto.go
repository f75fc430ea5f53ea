package dto

// AdjustStockRequest body para reabastecer/consumir/ajustar. El signo depende del endpoint.
type AdjustStockRequest struct {
	Cantidad int `json:"cantidad" validate:"required"`
}

// AdjustStockResponse stock resultante.
type AdjustStockResponse struct {
	NuevoStock int `json:"nuevoStock"`
}
