package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	AuthUC      *auth.AuthUseCase
	BatchUC     *inventory.BatchUseCase
	StockUC     *inventory.StockStatusUseCase
	LedgerUC    *inventory.LedgerUseCase
	MovementUC  *analytics.MovementUseCase
	StoreUC     *usecase.StoreUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.BatchUC, deps.StockUC, deps.LedgerUC)
	invGroup.Post("/import", inventoryHandler.Import)
	invGroup.Post("/transfer", inventoryHandler.Transfer)
	invGroup.Post("/sales", inventoryHandler.Sales)
	invGroup.Get("/stock-status", inventoryHandler.StockStatus)
	invGroup.Get("/stock-status/pdf", inventoryHandler.StockStatusPDF)
	invGroup.Get("/transactions", inventoryHandler.Transactions)

	analyticsHandler := NewAnalyticsHandler(deps.MovementUC)
	invGroup.Get("/analytics", analyticsHandler.GetMovement)

	storeHandler := NewStoreHandler(deps.StoreUC)
	protected.Get("/stores", storeHandler.List)
}
