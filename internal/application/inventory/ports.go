package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRepos repositorios atados a la transacción en curso.
type TxRepos struct {
	Products repository.ProductRepository
	Stores   repository.StoreRepository
	Stock    repository.StockRepository
	Ledger   repository.LedgerRepository
}

// BatchTx transacción abierta para un lote completo.
type BatchTx interface {
	// Row ejecuta fn dentro de un savepoint: si fn devuelve error se deshacen
	// solo las escrituras de esa fila y la transacción del lote sigue viva.
	Row(ctx context.Context, fn func(repos TxRepos) error) error
}

// TxRunner ejecuta un lote dentro de una transacción de BD.
// Commit si fn termina sin error; Rollback en cualquier otro caso.
// Garantiza atomicidad del lote frente a fallos sistémicos.
type TxRunner interface {
	RunBatch(ctx context.Context, fn func(tx BatchTx) error) error
}
