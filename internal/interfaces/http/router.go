package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-engine/internal/application/analytics"
	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	LocationUC  *usecase.LocationUseCase
	ProductUC   *usecase.ProductUseCase
	Operations  *inventory.OperationService
	StockQuery  *inventory.StockQueryService
	Slips       *inventory.SlipUseCase
	Dashboard   *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Warehouses y sus ubicaciones
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.LocationUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)
	warehouses.Post("/:id/locations", warehouseHandler.CreateLocation)
	warehouses.Get("/:id/locations", warehouseHandler.ListLocations)

	locations := api.Group("/locations")
	locations.Get("/:id", warehouseHandler.GetLocation)
	locations.Put("/:id", warehouseHandler.UpdateLocation)
	locations.Delete("/:id", warehouseHandler.DeleteLocation)

	// Operations: ciclo de vida de documentos
	operations := api.Group("/operations")
	operationHandler := NewOperationHandler(deps.Operations, deps.Slips)
	operations.Post("/", operationHandler.Create)
	operations.Get("/", operationHandler.List)
	operations.Get("/:id", operationHandler.GetByID)
	operations.Patch("/:id/status", operationHandler.ChangeStatus)
	operations.Delete("/:id", operationHandler.Delete)
	operations.Get("/:id/slip", operationHandler.DownloadSlip)

	// Stock (solo lectura)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockQuery)
	stock.Get("/", stockHandler.Balances)
	stock.Get("/ledger", stockHandler.Ledger)
	stock.Get("/low", stockHandler.LowStock)
	stock.Get("/out", stockHandler.OutOfStock)
	stock.Get("/replay", stockHandler.Replay)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
