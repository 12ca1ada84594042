package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta lotes dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBatch inicia una transacción, ejecuta fn y hace Commit o Rollback.
// Los fallos de begin/commit se envuelven con domain.ErrStorage.
func (r *TxRunner) RunBatch(ctx context.Context, fn func(tx inventory.BatchTx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&batchTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrStorage, err)
	}
	return nil
}

// batchTx implementa inventory.BatchTx con un SAVEPOINT por fila (pgx.Tx.Begin anidado).
type batchTx struct {
	tx pgx.Tx
}

// Row abre un savepoint, ejecuta fn con repos atados a él y lo libera o deshace.
func (b *batchTx) Row(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	sp, err := b.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: savepoint: %w", domain.ErrStorage, err)
	}
	if err := fn(reposFor(sp)); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w: rollback savepoint: %w", domain.ErrStorage, rbErr)
		}
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("%w: release savepoint: %w", domain.ErrStorage, err)
	}
	return nil
}

func reposFor(q Querier) inventory.TxRepos {
	return inventory.TxRepos{
		Products: NewProductRepository(q),
		Stores:   NewStoreRepository(q),
		Stock:    NewStockRepository(q),
		Ledger:   NewLedgerRepository(q),
	}
}
