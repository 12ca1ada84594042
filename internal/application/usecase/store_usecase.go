package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StoreUseCase casos de uso del catálogo de tiendas.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// List devuelve todas las tiendas ordenadas por id.
func (uc *StoreUseCase) List(ctx context.Context) ([]dto.StoreDTO, error) {
	stores, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreDTO, 0, len(stores))
	for _, s := range stores {
		out = append(out, dto.StoreDTO{ID: s.ID, Name: s.Name})
	}
	return out, nil
}

// SeedDefaults crea las tiendas iniciales si el catálogo está vacío. Devuelve cuántas creó.
func (uc *StoreUseCase) SeedDefaults(ctx context.Context, names []string) (int, error) {
	existing, err := uc.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	for i, name := range names {
		if err := uc.repo.Create(ctx, &entity.Store{Name: name, CreatedAt: now}); err != nil {
			return i, fmt.Errorf("crear tienda %q: %w", name, err)
		}
	}
	return len(names), nil
}

// DefaultStoreNames tiendas precargadas en una instalación nueva.
var DefaultStoreNames = []string{"Store 1", "Store 2", "Store 3", "Store 4"}
