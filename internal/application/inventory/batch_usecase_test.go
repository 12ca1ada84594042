package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

const caller = "admin"

func newBatch(t *testing.T) (*inventory.BatchUseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	for _, name := range []string{"Store 1", "Store 2", "Store 3"} {
		require.NoError(t, store.Stores().Create(context.Background(), &entity.Store{Name: name}))
	}
	return inventory.NewBatchUseCase(store, zerolog.Nop()), store
}

func importRow(ean, store, qty string) inventory.Row {
	return inventory.Row{"ean": ean, "style_name": "Style " + ean, "size": "M", "brand": "Acme", "store_id": store, "quantity": qty}
}

func transferRow(ean, from, to, qty string) inventory.Row {
	return inventory.Row{"ean": ean, "source_store_id": from, "destination_store_id": to, "quantity": qty}
}

func saleRow(ean, store, qty string) inventory.Row {
	return inventory.Row{"ean": ean, "store_id": store, "quantity_sold": qty}
}

func balance(t *testing.T, s *memory.Store, ean string, storeID int) int {
	t.Helper()
	st, err := s.Stock().Get(context.Background(), ean, storeID)
	require.NoError(t, err)
	return st.Quantity
}

func ledgerCount(t *testing.T, s *memory.Store) int {
	t.Helper()
	n, err := s.Ledger().Count(context.Background(), repository.LedgerFilter{})
	require.NoError(t, err)
	return n
}

func apply(t *testing.T, uc *inventory.BatchUseCase, kind inventory.Kind, rows ...inventory.Row) *dto.BatchReport {
	t.Helper()
	report, err := uc.Apply(context.Background(), kind, rows, caller)
	require.NoError(t, err)
	return report
}

// ── Import ────────────────────────────────────────────────────────────────────

func TestImport_ThreeRowsSecondNegative(t *testing.T) {
	uc, _ := newBatch(t)

	report := apply(t, uc, inventory.KindImport,
		importRow("A", "1", "10"),
		importRow("B", "1", "-5"),
		importRow("C", "2", "3"),
	)

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.Equal(t, dto.BatchStatusPartial, report.Status)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.Equal(t, "Quantity must be greater than 0", report.Errors[0].Error)
}

func TestImport_BalanceEqualsPriorPlusAccepted(t *testing.T) {
	uc, s := newBatch(t)
	apply(t, uc, inventory.KindImport, importRow("A", "1", "4"))

	report := apply(t, uc, inventory.KindImport,
		importRow("A", "1", "6"),
		importRow("A", "1", "abc"),
		importRow("A", "1", "5"),
		importRow("A", "2", "7"),
	)
	assert.Equal(t, 3, report.SuccessCount)
	assert.Equal(t, 15, balance(t, s, "A", 1))
	assert.Equal(t, 7, balance(t, s, "A", 2))
}

func TestImport_ValidationMessages(t *testing.T) {
	uc, _ := newBatch(t)

	report := apply(t, uc, inventory.KindImport,
		inventory.Row{"ean": "A", "store_id": "1"},
		inventory.Row{"ean": "  ", "store_id": "1", "quantity": "2"},
		importRow("A", "x", "2"),
		importRow("A", "1", "2.5"),
		importRow("A", "1", "0"),
		importRow("A", "9", "2"),
	)

	assert.Equal(t, 0, report.SuccessCount)
	assert.Equal(t, dto.BatchStatusPartial, report.Status)
	assert.Equal(t, []dto.RowError{
		{Row: 2, Error: "Missing required fields"},
		{Row: 3, Error: "Missing required fields"},
		{Row: 4, Error: "Invalid store_id or quantity format"},
		{Row: 5, Error: "Invalid store_id or quantity format"},
		{Row: 6, Error: "Quantity must be greater than 0"},
		{Row: 7, Error: "Store 9 does not exist"},
	}, report.Errors)
}

func TestImport_CreatesProductOnceWithOptionalFields(t *testing.T) {
	uc, s := newBatch(t)
	ctx := context.Background()

	first := importRow("A", "1", "1")
	first["style_design_code"] = "  SD-1 "
	first["model_no"] = "   "
	second := importRow("A", "2", "1")
	second["style_name"] = "Renamed"

	report := apply(t, uc, inventory.KindImport, first, second)
	assert.Equal(t, 2, report.SuccessCount)

	p, err := s.Products().GetByEAN(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Style A", p.StyleName)
	require.NotNil(t, p.StyleDesignCode)
	assert.Equal(t, "SD-1", *p.StyleDesignCode)
	assert.Nil(t, p.ModelNo)
}

func TestImport_EmptyBatchIsSuccess(t *testing.T) {
	uc, _ := newBatch(t)
	report := apply(t, uc, inventory.KindImport)
	assert.Equal(t, dto.BatchStatusSuccess, report.Status)
	assert.Zero(t, report.SuccessCount)
	assert.Empty(t, report.Errors)
}

// ── Transfer ─────────────────────────────────────────────────────────────────

func TestTransfer_TenUnitsAToB(t *testing.T) {
	uc, s := newBatch(t)
	apply(t, uc, inventory.KindImport, importRow("A", "1", "10"))

	report := apply(t, uc, inventory.KindTransfer, transferRow("A", "1", "2", "10"))
	assert.Equal(t, dto.BatchStatusSuccess, report.Status)

	assert.Equal(t, 0, balance(t, s, "A", 1))
	assert.Equal(t, 10, balance(t, s, "A", 2))

	entries, err := s.Ledger().List(context.Background(), repository.LedgerFilter{ProductEAN: "A"})
	require.NoError(t, err)
	var transfers []*entity.StockMovement
	for _, m := range entries {
		if m.Type == entity.MovementTypeTransfer {
			transfers = append(transfers, m)
		}
	}
	require.Len(t, transfers, 2)
	assert.Equal(t, 0, transfers[0].QuantityChange+transfers[1].QuantityChange)
	assert.Equal(t, 10, domaininv.Movement(transfers[0]))
	assert.Equal(t, transfers[0].BatchID, transfers[1].BatchID)
}

func TestTransfer_ConservesTotal(t *testing.T) {
	uc, s := newBatch(t)
	apply(t, uc, inventory.KindImport, importRow("A", "1", "9"), importRow("A", "2", "4"))

	apply(t, uc, inventory.KindTransfer,
		transferRow("A", "1", "2", "3"),
		transferRow("A", "2", "1", "5"),
		transferRow("A", "1", "2", "100"),
	)
	assert.Equal(t, 13, balance(t, s, "A", 1)+balance(t, s, "A", 2))
}

func TestTransfer_Boundary(t *testing.T) {
	uc, s := newBatch(t)
	apply(t, uc, inventory.KindImport, importRow("A", "1", "5"))

	report := apply(t, uc, inventory.KindTransfer, transferRow("A", "1", "2", "6"))
	assert.Equal(t, []dto.RowError{{Row: 2, Error: "Insufficient stock. Available: 5, Requested: 6"}}, report.Errors)
	assert.Equal(t, 5, balance(t, s, "A", 1))

	report = apply(t, uc, inventory.KindTransfer, transferRow("A", "1", "2", "5"))
	assert.Equal(t, dto.BatchStatusSuccess, report.Status)
	assert.Equal(t, 0, balance(t, s, "A", 1))
}

func TestTransfer_Rejections(t *testing.T) {
	uc, _ := newBatch(t)
	apply(t, uc, inventory.KindImport, importRow("A", "1", "5"))

	report := apply(t, uc, inventory.KindTransfer,
		transferRow("A", "1", "9", "1"),
		transferRow("A", "2", "2", "1"),
		transferRow("Z", "1", "2", "1"),
		transferRow("A", "1", "2", "-1"),
		inventory.Row{"ean": "A", "source_store_id": "1", "quantity": "1"},
	)
	assert.Equal(t, []dto.RowError{
		{Row: 2, Error: "Invalid source or destination store"},
		{Row: 3, Error: "Invalid source or destination store"},
		{Row: 4, Error: "Product Z does not exist"},
		{Row: 5, Error: "Quantity must be greater than 0"},
		{Row: 6, Error: "Missing required fields"},
	}, report.Errors)
}

// ── Sales ────────────────────────────────────────────────────────────────────

func TestSale_UnknownStore(t *testing.T) {
	uc, s := newBatch(t)
	apply(t, uc, inventory.KindImport, importRow("A", "1", "5"))
	before := ledgerCount(t, s)

	report := apply(t, uc, inventory.KindSale, saleRow("A", "42", "1"))
	assert.Equal(t, []dto.RowError{{Row: 2, Error: "Store 42 does not exist"}}, report.Errors)
	assert.Equal(t, before, ledgerCount(t, s))
	assert.Equal(t, 5, balance(t, s, "A", 1))
}

func TestSale_BoundaryAndNegativeEntry(t *testing.T) {
	uc, s := newBatch(t)
	apply(t, uc, inventory.KindImport, importRow("A", "1", "3"))

	report := apply(t, uc, inventory.KindSale, saleRow("A", "1", "4"), saleRow("A", "1", "3"), saleRow("A", "1", "0"))
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, []dto.RowError{
		{Row: 2, Error: "Insufficient stock. Available: 3, Sold: 4"},
		{Row: 4, Error: "Quantity sold must be greater than 0"},
	}, report.Errors)
	assert.Equal(t, 0, balance(t, s, "A", 1))

	entries, err := s.Ledger().List(context.Background(), repository.LedgerFilter{ProductEAN: "A", Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.MovementTypeSale, entries[0].Type)
	assert.Equal(t, -3, entries[0].QuantityChange)
	assert.Equal(t, caller, entries[0].CreatedBy)
}

func TestSale_UnknownProduct(t *testing.T) {
	uc, _ := newBatch(t)
	report := apply(t, uc, inventory.KindSale, saleRow("NOPE", "1", "1"))
	assert.Equal(t, []dto.RowError{{Row: 2, Error: "Product NOPE does not exist"}}, report.Errors)
}

// ── Ledger / faults ──────────────────────────────────────────────────────────

func TestLedger_AppendOnlyAndConsistentWithBalances(t *testing.T) {
	uc, s := newBatch(t)
	ctx := context.Background()

	apply(t, uc, inventory.KindImport, importRow("A", "1", "10"), importRow("B", "2", "4"))
	snapshot, err := s.Ledger().List(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	copied := make([]entity.StockMovement, len(snapshot))
	for i, m := range snapshot {
		copied[i] = *m
	}

	apply(t, uc, inventory.KindTransfer, transferRow("A", "1", "3", "4"))
	apply(t, uc, inventory.KindSale, saleRow("B", "2", "1"), saleRow("A", "3", "9"))

	all, err := s.Ledger().List(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	assert.Greater(t, len(all), len(copied))
	byID := make(map[int64]entity.StockMovement, len(all))
	for _, m := range all {
		byID[m.ID] = *m
	}
	for _, old := range copied {
		assert.Equal(t, old, byID[old.ID])
	}

	for key, qty := range domaininv.Balances(all) {
		assert.Equal(t, qty, balance(t, s, key.EAN, key.StoreID), "balance %v", key)
	}
}

func TestRowFault_RecordedAndRolledBack(t *testing.T) {
	uc, s := newBatch(t)
	s.SetFaults(memory.Faults{Append: func(m *entity.StockMovement) error {
		if m.ProductEAN == "BAD" {
			return errors.New("disk full")
		}
		return nil
	}})

	report := apply(t, uc, inventory.KindImport, importRow("BAD", "1", "5"), importRow("OK", "1", "2"))
	assert.Equal(t, 1, report.SuccessCount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 2, report.Errors[0].Row)
	assert.Contains(t, report.Errors[0].Error, "disk full")

	p, err := s.Products().GetByEAN(context.Background(), "BAD")
	require.NoError(t, err)
	assert.Nil(t, p, "el producto creado por la fila fallida se deshace")
	assert.Equal(t, 0, balance(t, s, "BAD", 1))
	assert.Equal(t, 2, balance(t, s, "OK", 1))
}

func TestSystemicFault_AbortsWholeBatch(t *testing.T) {
	uc, s := newBatch(t)
	s.SetFaults(memory.Faults{Commit: errors.New("connection reset")})

	report, err := uc.Apply(context.Background(), inventory.KindImport, []inventory.Row{importRow("A", "1", "5")}, caller)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrStorage)

	assert.Equal(t, 0, balance(t, s, "A", 1))
	assert.Zero(t, ledgerCount(t, s))
}

func TestCancelledContext_AbortsBatch(t *testing.T) {
	uc, s := newBatch(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Apply(ctx, inventory.KindImport, []inventory.Row{importRow("A", "1", "5")}, caller)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Zero(t, ledgerCount(t, s))
}

func TestApply_RequiresCallerAndKnownKind(t *testing.T) {
	uc, _ := newBatch(t)

	_, err := uc.Apply(context.Background(), inventory.KindImport, nil, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Apply(context.Background(), inventory.Kind("refund"), nil, caller)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
