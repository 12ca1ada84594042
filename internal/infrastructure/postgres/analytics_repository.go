package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Asegura que AnalyticsRepo implementa el puerto del dominio.
var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementa AnalyticsRepository con consultas SQL de solo lectura.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el repositorio de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// MovementTotals agrega |quantity_change| por producto para ventas y traslados.
//
// Las fechas se comparan como día calendario UTC, inclusivo en ambos extremos.
// Los empates se ordenan por EAN para que la respuesta sea estable.
func (r *AnalyticsRepo) MovementTotals(ctx context.Context, f repository.MovementFilter) ([]repository.MovementTotal, error) {
	query := `
		SELECT m.product_ean, p.style_name, p.brand, SUM(ABS(m.quantity_change)) AS movement
		FROM stock_movements m
		JOIN products p ON p.ean = m.product_ean
		WHERE m.type IN ($1, $2)`
	args := []any{entity.MovementTypeSale, entity.MovementTypeTransfer}
	if f.StoreID != nil {
		args = append(args, *f.StoreID)
		query += fmt.Sprintf(" AND m.store_id = $%d", len(args))
	}
	if f.StartDate != nil {
		args = append(args, f.StartDate.Format("2006-01-02"))
		query += fmt.Sprintf(" AND (m.created_at AT TIME ZONE 'UTC')::date >= $%d::date", len(args))
	}
	if f.EndDate != nil {
		args = append(args, f.EndDate.Format("2006-01-02"))
		query += fmt.Sprintf(" AND (m.created_at AT TIME ZONE 'UTC')::date <= $%d::date", len(args))
	}
	query += `
		GROUP BY m.product_ean, p.style_name, p.brand
		ORDER BY movement DESC, m.product_ean`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("movement totals: %w", err)
	}
	defer rows.Close()

	var out []repository.MovementTotal
	for rows.Next() {
		var t repository.MovementTotal
		if err := rows.Scan(&t.ProductEAN, &t.StyleName, &t.Brand, &t.Movement); err != nil {
			return nil, fmt.Errorf("scan movement total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
