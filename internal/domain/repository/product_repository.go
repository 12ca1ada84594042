package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByEAN devuelve (nil, nil) si el producto no existe.
	GetByEAN(ctx context.Context, ean string) (*entity.Product, error)
	// List devuelve todos los productos ordenados por EAN.
	List(ctx context.Context) ([]*entity.Product, error)
}
