package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bigmomma/inventario-erp/internal/application/ledger"
	"github.com/bigmomma/inventario-erp/internal/application/production"
	"github.com/bigmomma/inventario-erp/internal/application/sales"
	"github.com/bigmomma/inventario-erp/internal/application/usecase"
	"github.com/bigmomma/inventario-erp/internal/infrastructure/postgres"
	httpRouter "github.com/bigmomma/inventario-erp/internal/interfaces/http"
	"github.com/bigmomma/inventario-erp/pkg/config"
	"github.com/bigmomma/inventario-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	batchRepo := postgres.NewProductBatchRepository(pool)
	saleRepo := postgres.NewSalesOrderRepository(pool)
	consumptionRepo := postgres.NewSalesConsumptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout)

	ledgerUC := ledger.NewStockLedgerUseCase(txRunner, movementRepo, balanceRepo, materialRepo, locationRepo, log)
	productionUC := production.NewProductionUseCase(txRunner, orderRepo, recipeRepo, productRepo, materialRepo, balanceRepo, log)
	salesUC := sales.NewSalesUseCase(txRunner, saleRepo, batchRepo, productRepo, consumptionRepo, log)
	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	warehouseUC := usecase.NewWarehouseUseCase(tenantRepo, warehouseRepo, locationRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo, balanceRepo, locationRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	recipeUC := usecase.NewRecipeUseCase(recipeRepo, productRepo, materialRepo)
	reportUC := usecase.NewReportUseCase(batchRepo, cfg.Stock.NearExpiryDays)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantUC:     tenantUC,
		WarehouseUC:  warehouseUC,
		MaterialUC:   materialUC,
		ProductUC:    productUC,
		RecipeUC:     recipeUC,
		ReportUC:     reportUC,
		Ledger:       ledgerUC,
		ProductionUC: productionUC,
		SalesUC:      salesUC,
	})

	go func() {
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
