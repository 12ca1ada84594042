package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StoreRepository define el puerto de lectura del catálogo de tiendas.
// Create solo lo usa el seed; el motor de inventario trata las tiendas como solo-lectura.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	Exists(ctx context.Context, id int) (bool, error)
	// ExistingIDs devuelve, sin duplicados, los ids de la lista que existen.
	ExistingIDs(ctx context.Context, ids ...int) ([]int, error)
	List(ctx context.Context) ([]*entity.Store, error)
}
