package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// LedgerFilter filtros opcionales para listar asientos del ledger.
type LedgerFilter struct {
	ProductEAN string
	StoreID    *int
	Limit      int
	Offset     int
}

// LedgerRepository define el puerto del ledger append-only: no hay Update ni Delete.
type LedgerRepository interface {
	// Append persiste el asiento y completa su ID y CreatedAt.
	Append(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve los asientos más recientes primero.
	List(ctx context.Context, filter LedgerFilter) ([]*entity.StockMovement, error)
	Count(ctx context.Context, filter LedgerFilter) (int, error)
}
