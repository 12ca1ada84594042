package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un producto en una tienda (0 si no hay fila).
func (r *StockRepo) Get(ctx context.Context, ean string, storeID int) (*entity.Stock, error) {
	return r.get(ctx, ean, storeID, `
		SELECT product_ean, store_id, quantity, updated_at
		FROM stock WHERE product_ean = $1 AND store_id = $2`)
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, ean string, storeID int) (*entity.Stock, error) {
	return r.get(ctx, ean, storeID, `
		SELECT product_ean, store_id, quantity, updated_at
		FROM stock WHERE product_ean = $1 AND store_id = $2
		FOR UPDATE`)
}

func (r *StockRepo) get(ctx context.Context, ean string, storeID int, query string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, ean, storeID).Scan(&s.ProductEAN, &s.StoreID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductEAN: ean, StoreID: storeID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Adjust suma delta al saldo (insert-or-increment atómico).
func (r *StockRepo) Adjust(ctx context.Context, ean string, storeID int, delta int) error {
	query := `
		INSERT INTO stock (product_ean, store_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_ean, store_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, ean, storeID, delta); err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}

// ListByProduct lista los saldos de un producto ordenados por tienda.
func (r *StockRepo) ListByProduct(ctx context.Context, ean string) ([]*entity.Stock, error) {
	return r.list(ctx, `
		SELECT product_ean, store_id, quantity, updated_at
		FROM stock WHERE product_ean = $1 ORDER BY store_id`, ean)
}

// ListAll lista todos los saldos ordenados por producto y tienda.
func (r *StockRepo) ListAll(ctx context.Context) ([]*entity.Stock, error) {
	return r.list(ctx, `
		SELECT product_ean, store_id, quantity, updated_at
		FROM stock ORDER BY product_ean, store_id`)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductEAN, &s.StoreID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
