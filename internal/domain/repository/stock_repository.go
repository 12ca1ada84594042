package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockRepository define el puerto para consultar/ajustar el saldo por producto+tienda.
// Usado dentro de transacciones para garantizar consistencia con el ledger.
type StockRepository interface {
	// Get devuelve el saldo actual; Quantity = 0 si aún no existe la fila.
	Get(ctx context.Context, ean string, storeID int) (*entity.Stock, error)
	// GetForUpdate igual que Get pero bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, ean string, storeID int) (*entity.Stock, error)
	// Adjust suma delta al saldo, creando la fila con valor delta si no existe.
	// No valida suficiencia: el llamador ya lo hizo.
	Adjust(ctx context.Context, ean string, storeID int, delta int) error
	ListByProduct(ctx context.Context, ean string) ([]*entity.Stock, error)
	ListAll(ctx context.Context) ([]*entity.Stock, error)
}
