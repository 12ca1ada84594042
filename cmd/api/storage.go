package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
)

// storage agrupa los adaptadores de persistencia del driver elegido.
type storage struct {
	products  repository.ProductRepository
	stores    repository.StoreRepository
	stock     repository.StockRepository
	ledger    repository.LedgerRepository
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	txRunner  inventory.TxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		m := memory.New()
		return &storage{
			products:  m.Products(),
			stores:    m.Stores(),
			stock:     m.Stock(),
			ledger:    m.Ledger(),
			users:     m.Users(),
			analytics: m.Analytics(),
			txRunner:  m,
			close:     func() {},
		}, nil
	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &storage{
			products:  postgres.NewProductRepository(pool),
			stores:    postgres.NewStoreRepository(pool),
			stock:     postgres.NewStockRepository(pool),
			ledger:    postgres.NewLedgerRepository(pool),
			users:     postgres.NewUserRepository(pool),
			analytics: postgres.NewAnalyticsRepository(pool),
			txRunner:  postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento no soportado: %s", cfg.Storage.Driver)
	}
}
