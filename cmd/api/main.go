package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/moderna-shop-api/internal/application/auth"
	"github.com/jhoicas/moderna-shop-api/internal/application/inventory"
	"github.com/jhoicas/moderna-shop-api/internal/application/ledger"
	"github.com/jhoicas/moderna-shop-api/internal/application/ports"
	"github.com/jhoicas/moderna-shop-api/internal/application/purchasing"
	"github.com/jhoicas/moderna-shop-api/internal/application/sales"
	"github.com/jhoicas/moderna-shop-api/internal/domain"
	"github.com/jhoicas/moderna-shop-api/internal/domain/repository"
	"github.com/jhoicas/moderna-shop-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/moderna-shop-api/internal/infrastructure/pdf"
	"github.com/jhoicas/moderna-shop-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/moderna-shop-api/internal/interfaces/http"
	"github.com/jhoicas/moderna-shop-api/pkg/config"
	"github.com/jhoicas/moderna-shop-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores repositorios fuera de transacción + runner, según STORE.
type stores struct {
	txRunner     ports.TxRunner
	products     repository.ProductRepository
	sales        repository.SaleRepository
	transactions repository.TransactionRepository
	ledger       repository.LedgerRepository
	orders       repository.PurchaseOrderRepository
	workers      repository.WorkerRepository
	health       func(ctx context.Context) error
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer st.close()

	journalUC := ledger.NewJournalUseCase(st.txRunner, st.ledger, st.transactions)
	saleUC := sales.NewSaleUseCase(st.txRunner, st.sales, journalUC, sales.Options{
		PostToLedger: cfg.Ledger.PostSales,
	})
	receiptUC := sales.NewReceiptUseCase(st.sales, st.products, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))
	stockUC := inventory.NewStockUseCase(st.txRunner)
	orderUC := purchasing.NewOrderUseCase(st.txRunner, st.orders, journalUC, purchasing.Options{
		PostPaymentsToLedger: cfg.Ledger.PostOrderPayments,
	})
	authUC := auth.NewAuthUseCase(st.workers, 0)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORS.Header(),
		AllowHeaders:  "Origin, Content-Type, Accept, " + httpRouter.HeaderRequestID,
		AllowMethods:  "GET,POST,PATCH,OPTIONS",
		ExposeHeaders: httpRouter.HeaderRequestID,
	}))

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el JSON generado)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Moderna Shop API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		SaleUC:    saleUC,
		ReceiptUC: receiptUC,
		JournalUC: journalUC,
		StockUC:   stockUC,
		OrderUC:   orderUC,
		AuthUC:    authUC,
		Health:    st.health,
		Store:     cfg.Store,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		mem := memory.NewSeeded(cfg.Ledger.BaseBalance)
		log.Warn().Msg("STORE=memory: los datos se pierden al reiniciar")
		return &stores{
			txRunner:     mem,
			products:     mem.Products(),
			sales:        mem.Sales(),
			transactions: mem.Transactions(),
			ledger:       mem.Ledger(),
			orders:       mem.Orders(),
			workers:      mem.Workers(),
			close:        func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(cfg.DB.ConnectionString())
		if err != nil {
			return nil, err
		}
		if applied {
			log.Info().Msg("migraciones aplicadas")
		} else {
			log.Info().Msg("sin migraciones pendientes")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	log.Info().Int32("max_conns", pool.Config().MaxConns).Msg("pool PostgreSQL listo")

	return &stores{
		txRunner:     postgres.NewTxRunner(pool),
		products:     postgres.NewProductRepository(pool),
		sales:        postgres.NewSaleRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		ledger:       postgres.NewLedgerRepository(pool),
		orders:       postgres.NewPurchaseOrderRepository(pool),
		workers:      postgres.NewWorkerRepository(pool),
		health: func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrDependencyUnavailable, err)
			}
			return nil
		},
		close: pool.Close,
	}, nil
}
