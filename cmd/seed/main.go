// seed prepara una base PostgreSQL nueva: aplica las migraciones embebidas, crea las
// tiendas iniciales si no hay ninguna y el usuario administrador si no existe.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*, SEED_ADMIN_USERNAME, SEED_ADMIN_PASSWORD).
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Error().Err(err).Msg("migraciones")
		os.Exit(1)
	}
	log.Info().Msg("esquema al día")

	storeUC := usecase.NewStoreUseCase(postgres.NewStoreRepository(pool))
	n, err := storeUC.SeedDefaults(ctx, usecase.DefaultStoreNames)
	if err != nil {
		log.Error().Err(err).Msg("seed de tiendas")
		os.Exit(1)
	}
	log.Info().Int("created", n).Msg("tiendas")

	if cfg.Seed.AdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD vacío: se omite el usuario admin")
		return
	}
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
	created, err := authUC.EnsureUser(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword)
	if err != nil {
		log.Error().Err(err).Msg("seed de usuario admin")
		os.Exit(1)
	}
	log.Info().Str("username", cfg.Seed.AdminUsername).Bool("created", created).Msg("usuario admin")
}
