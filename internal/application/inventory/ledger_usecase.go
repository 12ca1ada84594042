package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// LedgerUseCase consulta el ledger de movimientos (solo lectura).
type LedgerUseCase struct {
	ledgerRepo repository.LedgerRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(ledgerRepo repository.LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ListMovements devuelve una página de asientos, más recientes primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, q dto.LedgerQuery) (*dto.LedgerPageDTO, error) {
	q.DefaultPage()
	filter := repository.LedgerFilter{
		ProductEAN: q.EAN,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	if q.StoreID > 0 {
		storeID := q.StoreID
		filter.StoreID = &storeID
	}

	total, err := uc.ledgerRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ledger: contar: %w", err)
	}
	movs, err := uc.ledgerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ledger: listar: %w", err)
	}

	out := &dto.LedgerPageDTO{
		Page:         dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
		Transactions: make([]dto.MovementDTO, 0, len(movs)),
	}
	for _, m := range movs {
		out.Transactions = append(out.Transactions, dto.MovementDTO{
			ID:             m.ID,
			BatchID:        m.BatchID,
			ProductEAN:     m.ProductEAN,
			StoreID:        m.StoreID,
			QuantityChange: m.QuantityChange,
			Type:           m.Type,
			Timestamp:      m.CreatedAt,
			CreatedBy:      m.CreatedBy,
		})
	}
	return out, nil
}
