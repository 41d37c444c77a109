package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/GemeloDigital-api/internal/application/auth"
	"github.com/jhoicas/GemeloDigital-api/internal/application/forecast"
	"github.com/jhoicas/GemeloDigital-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC   *ledger.LedgerUseCase
	QueryUC    *ledger.StockQueryUseCase
	LowStockUC *ledger.LowStockUseCase
	Orch       *forecast.Orchestrator
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Todo lo demás requiere token de operador
	protected := api.Group("", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleOperator))

	stockHandler := NewStockHandler(deps.LedgerUC, deps.QueryUC, deps.LowStockUC)
	stock := protected.Group("/stock")
	stock.Get("/store", stockHandler.ListStoreStock)
	stock.Get("/warehouse", stockHandler.ListWarehouseStock)
	stock.Get("/low", stockHandler.ListLowStock)
	stock.Get("/heatmap", stockHandler.SalesHeatmap)
	stock.Get("/:productID/levels", stockHandler.StockLevels)
	stock.Get("/:productID/transactions", stockHandler.ListTransactions)
	stock.Post("/sales", stockHandler.RecordSale)
	stock.Post("/restocks", stockHandler.Restock)

	protected.Get("/products/:productID", stockHandler.GetProduct)

	forecastHandler := NewForecastHandler(deps.Orch)
	fc := protected.Group("/forecast")
	fc.Get("/health", forecastHandler.Probe)
	fc.Post("/low-stock", forecastHandler.RequestForLowStock)
	fc.Post("/all", forecastHandler.RequestForAll)
	fc.Post("/:productID", forecastHandler.RequestForProduct)

	protected.Get("/recommendations", forecastHandler.ListRecommendations)
}
