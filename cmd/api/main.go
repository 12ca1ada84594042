package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stock-ledger/docs"
	"github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// @title                       Stock Ledger API
// @version                     1.0
// @description                 Ledger de inventario multi-tienda: cargas CSV de importación, traslados y ventas, saldos y rotación.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Escribir "Bearer" seguido de un espacio y el token JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	storeUC := usecase.NewStoreUseCase(store.stores)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// En memoria no hay seed previo: se cargan tiendas y admin al arrancar.
	if cfg.Storage.Driver == config.StorageDriverMemory {
		seedMemory(ctx, log, cfg, storeUC, authUC)
	}

	batchUC := inventory.NewBatchUseCase(store.txRunner, log.Component("batch"))
	stockUC := inventory.NewStockStatusUseCase(store.products, store.stores, store.stock, infrapdf.NewStockStatusPDF())
	ledgerUC := inventory.NewLedgerUseCase(store.ledger)
	movementUC := analytics.NewMovementUseCase(store.analytics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Upload.MaxBytes(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		AuthUC:      authUC,
		BatchUC:     batchUC,
		StockUC:     stockUC,
		LedgerUC:    ledgerUC,
		MovementUC:  movementUC,
		StoreUC:     storeUC,
		JWTSecret:   cfg.JWT.Secret,
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

func seedMemory(ctx context.Context, log *logger.Logger, cfg *config.Config, storeUC *usecase.StoreUseCase, authUC *auth.AuthUseCase) {
	n, err := storeUC.SeedDefaults(ctx, usecase.DefaultStoreNames)
	if err != nil {
		log.Fatal().Err(err).Msg("seed de tiendas")
	}
	log.Info().Int("stores", n).Msg("tiendas precargadas")

	if cfg.Seed.AdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD vacío: no se crea usuario, el login no estará disponible")
		return
	}
	if _, err := authUC.EnsureUser(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed de usuario admin")
	}
	log.Info().Str("username", cfg.Seed.AdminUsername).Msg("usuario admin disponible")
}
