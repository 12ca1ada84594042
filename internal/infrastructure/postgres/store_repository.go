package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda y completa su ID.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO stores (name, created_at) VALUES ($1, $2) RETURNING id`,
		store.Name, store.CreatedAt,
	).Scan(&store.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// Exists indica si la tienda existe.
func (r *StoreRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stores WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("store exists: %w", err)
	}
	return ok, nil
}

// ExistingIDs devuelve los ids de la lista que existen (sin duplicados).
func (r *StoreRepo) ExistingIDs(ctx context.Context, ids ...int) ([]int, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM stores WHERE id = ANY($1::int[]) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("existing stores: %w", err)
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan store id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// List lista todas las tiendas ordenadas por id.
func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM stores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
