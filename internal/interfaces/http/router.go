package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/ledger"
	"github.com/bigmomma/inventario-erp/internal/application/production"
	"github.com/bigmomma/inventario-erp/internal/application/sales"
	"github.com/bigmomma/inventario-erp/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantUC     *usecase.TenantUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	MaterialUC   *usecase.MaterialUseCase
	ProductUC    *usecase.ProductUseCase
	RecipeUC     *usecase.RecipeUseCase
	ReportUC     *usecase.ReportUseCase
	Ledger       *ledger.StockLedgerUseCase
	ProductionUC *production.ProductionUseCase
	SalesUC      *sales.SalesUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Alta de tenant (público: ocurre antes de que exista el tenant)
	tenantHandler := NewTenantHandler(deps.TenantUC)
	api.Post("/tenants", tenantHandler.Create)

	// Todo lo demás exige tenant resuelto por el gateway
	protected := api.Group("/", TenantMiddleware())

	tenant := protected.Group("/tenant")
	tenant.Get("/", tenantHandler.Me)
	tenant.Put("/plan", tenantHandler.ChangePlan)
	tenant.Post("/onboarding", tenantHandler.CompleteOnboarding)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/locations", warehouseHandler.CreateLocation)
	warehouses.Get("/:warehouseID/locations", warehouseHandler.ListLocations)

	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id/reorder-min", materialHandler.SetReorderMin)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/:id", recipeHandler.GetByID)
	products.Get("/:productID/recipes", recipeHandler.ListByProduct)

	// Kardex de materias primas
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Ledger)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.History)
	movements.Put("/:id", movementHandler.Amend)
	movements.Delete("/:id", movementHandler.Retract)

	// Vistas de stock
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger)
	stock.Get("/balance", stockHandler.Balance)
	stock.Get("/warehouses/:warehouseID", stockHandler.ByWarehouse)
	stock.Get("/warehouses/:warehouseID/summary", stockHandler.Summary)
	stock.Get("/warehouses/:warehouseID/below-min", stockHandler.BelowReorderMin)

	// Órdenes de producción
	orders := protected.Group("/production-orders")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	orders.Post("/", productionHandler.Create)
	orders.Get("/", productionHandler.List)
	orders.Get("/:id", productionHandler.GetByID)
	orders.Post("/:id/validate", productionHandler.Validate)
	orders.Post("/:id/execute", productionHandler.Execute)

	// Ventas
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Post("/:id/check", salesHandler.Check)
	salesGroup.Post("/:id/confirm", salesHandler.Confirm)
	salesGroup.Get("/:id/consumptions", salesHandler.Consumptions)

	// Reportes de vencimiento
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/batches/near-expiry", reportHandler.NearExpiry)
	reports.Get("/batches/expired", reportHandler.Expired)
}
