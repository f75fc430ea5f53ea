package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/moderna-shop-api/internal/application/auth"
	"github.com/jhoicas/moderna-shop-api/internal/application/inventory"
	"github.com/jhoicas/moderna-shop-api/internal/application/ledger"
	"github.com/jhoicas/moderna-shop-api/internal/application/purchasing"
	"github.com/jhoicas/moderna-shop-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SaleUC    *sales.SaleUseCase
	ReceiptUC *sales.ReceiptUseCase
	JournalUC *ledger.JournalUseCase
	StockUC   *inventory.StockUseCase
	OrderUC   *purchasing.OrderUseCase
	AuthUC    *auth.AuthUseCase
	// Health verifica dependencias (ping a la BD); nil responde siempre ok.
	Health func(ctx context.Context) error
	Store  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api/v1")

	// Trabajadores (sin emisión de token)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/ingresar", authHandler.Login)
	api.Post("/trabajadores", authHandler.Register)
	api.Patch("/trabajadores/:id/desactivar", authHandler.Deactivate)

	// Ventas
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	api.Post("/ventas", saleHandler.Create)
	api.Get("/ventas/:id", saleHandler.GetByID)
	api.Get("/ventas/:id/comprobante", saleHandler.Receipt)

	// Caja
	ledgerHandler := NewLedgerHandler(deps.JournalUC)
	api.Post("/transacciones", ledgerHandler.Record)
	api.Get("/transacciones", ledgerHandler.List)
	api.Get("/saldo", ledgerHandler.Balance)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	products := api.Group("/productos")
	products.Post("/:id/reabastecer", inventoryHandler.Restock)
	products.Post("/:id/consumir", inventoryHandler.Consume)
	products.Post("/:id/ajustar", inventoryHandler.Adjust)

	// Pedidos a proveedor
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/pedidos")
	orders.Post("/", orderHandler.Create)
	orders.Post("/pagar", orderHandler.MarkPaid)
	orders.Post("/completar", orderHandler.MarkCompleted)
	orders.Post("/cancelar", orderHandler.Cancel)
	orders.Get("/:id", orderHandler.GetByID)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.Context()); err != nil {
				return respondError(c, err)
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "store": deps.Store})
	}
}
