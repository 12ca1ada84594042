package inventory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockReportGenerator genera la representación PDF del snapshot de stock.
// Lo implementa infrastructure/pdf.
type StockReportGenerator interface {
	GenerateStockStatusPDF(ctx context.Context, stores []*entity.Store, items []dto.StockStatusDTO, generatedAt time.Time) ([]byte, error)
}

// StockStatusUseCase arma el snapshot de saldos por producto y tienda.
type StockStatusUseCase struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	stockRepo   repository.StockRepository
	pdf         StockReportGenerator
}

// NewStockStatusUseCase construye el caso de uso. pdf puede ser nil si no se expone el PDF.
func NewStockStatusUseCase(
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	stockRepo repository.StockRepository,
	pdf StockReportGenerator,
) *StockStatusUseCase {
	return &StockStatusUseCase{
		productRepo: productRepo,
		storeRepo:   storeRepo,
		stockRepo:   stockRepo,
		pdf:         pdf,
	}
}

// GetStockStatus devuelve un elemento por producto (ordenado por EAN) con su saldo por tienda y el total.
// Los productos sin filas de saldo aparecen con Stores vacío y total 0.
func (uc *StockStatusUseCase) GetStockStatus(ctx context.Context) ([]dto.StockStatusDTO, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock status: productos: %w", err)
	}
	levels, err := uc.stockRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock status: saldos: %w", err)
	}

	byProduct := make(map[string][]*entity.Stock, len(products))
	for _, l := range levels {
		byProduct[l.ProductEAN] = append(byProduct[l.ProductEAN], l)
	}

	out := make([]dto.StockStatusDTO, 0, len(products))
	for _, p := range products {
		item := dto.StockStatusDTO{
			EAN:       p.EAN,
			StyleName: p.StyleName,
			Brand:     p.Brand,
			Stores:    make(map[string]int),
		}
		for _, l := range byProduct[p.EAN] {
			item.Stores[strconv.Itoa(l.StoreID)] = l.Quantity
			item.TotalQuantity += l.Quantity
		}
		out = append(out, item)
	}
	return out, nil
}

// GetStockStatusPDF genera el snapshot como PDF y devuelve sus bytes y el nombre de archivo sugerido.
func (uc *StockStatusUseCase) GetStockStatusPDF(ctx context.Context) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("stock status: generador PDF no configurado")
	}
	items, err := uc.GetStockStatus(ctx)
	if err != nil {
		return nil, "", err
	}
	stores, err := uc.storeRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("stock status: tiendas: %w", err)
	}
	now := time.Now().UTC()
	doc, err := uc.pdf.GenerateStockStatusPDF(ctx, stores, items, now)
	if err != nil {
		return nil, "", err
	}
	return doc, "stock-status-" + now.Format("20060102") + ".pdf", nil
}
