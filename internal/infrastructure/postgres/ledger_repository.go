package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: la tabla stock_movements es append-only.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append persiste un asiento y completa ID y CreatedAt.
func (r *LedgerRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	query := `
		INSERT INTO stock_movements (batch_id, product_ean, store_id, quantity_change, type, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		m.BatchID, m.ProductEAN, m.StoreID, m.QuantityChange, m.Type, m.CreatedAt, createdBy,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

// List lista asientos filtrados, más recientes primero.
func (r *LedgerRepo) List(ctx context.Context, f repository.LedgerFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, batch_id, product_ean, store_id, quantity_change, type, created_at, created_by
		FROM stock_movements WHERE 1 = 1`
	where, args := ledgerWhere(f)
	query += where
	pos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.BatchID, &m.ProductEAN, &m.StoreID, &m.QuantityChange,
			&m.Type, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Count cuenta los asientos que cumplen el filtro (ignora Limit/Offset).
func (r *LedgerRepo) Count(ctx context.Context, f repository.LedgerFilter) (int, error) {
	where, args := ledgerWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE 1 = 1`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}

func ledgerWhere(f repository.LedgerFilter) (string, []any) {
	var where string
	var args []any
	if f.ProductEAN != "" {
		args = append(args, f.ProductEAN)
		where += fmt.Sprintf(" AND product_ean = $%d", len(args))
	}
	if f.StoreID != nil {
		args = append(args, *f.StoreID)
		where += fmt.Sprintf(" AND store_id = $%d", len(args))
	}
	return where, args
}
