// Package analytics contiene los casos de uso de reportes de rotación sobre el ledger.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

const (
	rankingSize = 5 // productos en cada lista (mayor y menor rotación)
	dateLayout  = "2006-01-02"
)

// MovementUseCase calcula el ranking de productos por rotación (ventas + traslados).
//
// Fuente de datos: AnalyticsRepository (consultas read-only sobre el ledger).
// Las importaciones no cuentan como rotación.
type MovementUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(analyticsRepo repository.AnalyticsRepository) *MovementUseCase {
	return &MovementUseCase{analyticsRepo: analyticsRepo}
}

// GetMovementReport devuelve los 5 productos de mayor rotación (descendente) y los 5 de menor
// rotación (ascendente, el de menor rotación primero). Con menos de 10 productos las listas se solapan.
// Devuelve domain.ErrInvalidInput si alguna fecha no tiene formato YYYY-MM-DD.
func (uc *MovementUseCase) GetMovementReport(ctx context.Context, req dto.MovementReportRequest) (*dto.MovementReportDTO, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	totals, err := uc.analyticsRepo.MovementTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("analytics: rotación: %w", err)
	}
	// El orden del repositorio ya es descendente; SliceStable conserva su desempate.
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Movement > totals[j].Movement
	})

	report := &dto.MovementReportDTO{
		MostMoving:  make([]dto.MovementItemDTO, 0, rankingSize),
		LeastMoving: make([]dto.MovementItemDTO, 0, rankingSize),
	}
	for i := 0; i < len(totals) && i < rankingSize; i++ {
		report.MostMoving = append(report.MostMoving, toItem(totals[i]))
	}
	for i := len(totals) - 1; i >= 0 && i >= len(totals)-rankingSize; i-- {
		report.LeastMoving = append(report.LeastMoving, toItem(totals[i]))
	}
	return report, nil
}

func toItem(t repository.MovementTotal) dto.MovementItemDTO {
	return dto.MovementItemDTO{
		EAN:       t.ProductEAN,
		StyleName: t.StyleName,
		Brand:     t.Brand,
		Movement:  t.Movement,
	}
}

// buildFilter traduce los parámetros de consulta. Fechas vacías = sin límite; store_id 0 = todas.
func buildFilter(req dto.MovementReportRequest) (repository.MovementFilter, error) {
	var f repository.MovementFilter
	if req.StoreID > 0 {
		storeID := req.StoreID
		f.StoreID = &storeID
	}
	if req.StartDate != "" {
		d, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return f, fmt.Errorf("%w: start_date inválido (YYYY-MM-DD)", domain.ErrInvalidInput)
		}
		f.StartDate = &d
	}
	if req.EndDate != "" {
		d, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return f, fmt.Errorf("%w: end_date inválido (YYYY-MM-DD)", domain.ErrInvalidInput)
		}
		f.EndDate = &d
	}
	return f, nil
}
