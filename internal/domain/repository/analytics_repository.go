package repository

import (
	"context"
	"time"
)

// MovementFilter filtros de la consulta de rotación. Las fechas se comparan por día
// calendario (UTC) e incluyen ambos extremos; nil significa sin límite.
type MovementFilter struct {
	StoreID   *int
	StartDate *time.Time
	EndDate   *time.Time
}

// MovementTotal resultado crudo de la consulta de rotación por producto.
// Lo produce la DB; el use case lo convierte en DTO.
type MovementTotal struct {
	ProductEAN string
	StyleName  string
	Brand      string
	Movement   int // suma de |quantity_change| de ventas y traslados
}

// AnalyticsRepository define las consultas de lectura sobre el ledger.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// MovementTotals devuelve la rotación por producto ordenada de mayor a menor.
	// Los asientos Import no cuentan como rotación.
	MovementTotals(ctx context.Context, filter MovementFilter) ([]MovementTotal, error)
}
