package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Stores().Create(ctx, &entity.Store{Name: "Store 1"}))
	require.NoError(t, s.Stores().Create(ctx, &entity.Store{Name: "Store 2"}))
	return s
}

func TestRow_RollbackUndoesOnlyFailedRow(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	err := s.RunBatch(ctx, func(tx inventory.BatchTx) error {
		require.NoError(t, tx.Row(ctx, func(r inventory.TxRepos) error {
			require.NoError(t, r.Products.Create(ctx, &entity.Product{EAN: "A"}))
			return r.Stock.Adjust(ctx, "A", 1, 10)
		}))
		rowErr := tx.Row(ctx, func(r inventory.TxRepos) error {
			require.NoError(t, r.Products.Create(ctx, &entity.Product{EAN: "B"}))
			require.NoError(t, r.Stock.Adjust(ctx, "A", 1, 5))
			require.NoError(t, r.Ledger.Append(ctx, &entity.StockMovement{ProductEAN: "A", StoreID: 1, QuantityChange: 5, Type: entity.MovementTypeImport}))
			return errors.New("boom")
		})
		assert.EqualError(t, rowErr, "boom")
		return nil
	})
	require.NoError(t, err)

	p, _ := s.Products().GetByEAN(ctx, "B")
	assert.Nil(t, p)
	st, _ := s.Stock().Get(ctx, "A", 1)
	assert.Equal(t, 10, st.Quantity)
	n, _ := s.Ledger().Count(ctx, repository.LedgerFilter{})
	assert.Zero(t, n)
}

func TestRunBatch_NotVisibleUntilCommit(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	err := s.RunBatch(ctx, func(tx inventory.BatchTx) error {
		return tx.Row(ctx, func(r inventory.TxRepos) error {
			if err := r.Stock.Adjust(ctx, "A", 1, 3); err != nil {
				return err
			}
			committed, _ := s.Stock().Get(ctx, "A", 1)
			assert.Zero(t, committed.Quantity)
			return nil
		})
	})
	require.NoError(t, err)

	st, _ := s.Stock().Get(ctx, "A", 1)
	assert.Equal(t, 3, st.Quantity)
}

func TestRunBatch_CommitFaultDiscardsEverything(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	s.SetFaults(Faults{Commit: errors.New("connection reset")})

	err := s.RunBatch(ctx, func(tx inventory.BatchTx) error {
		return tx.Row(ctx, func(r inventory.TxRepos) error {
			return r.Stock.Adjust(ctx, "A", 1, 3)
		})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)

	st, _ := s.Stock().Get(ctx, "A", 1)
	assert.Zero(t, st.Quantity)
}

func TestStockAdjust_RejectsNegative(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	require.NoError(t, s.Stock().Adjust(ctx, "A", 1, 2))
	err := s.Stock().Adjust(ctx, "A", 1, -3)
	assert.ErrorIs(t, err, errNegativeStock)

	st, _ := s.Stock().Get(ctx, "A", 1)
	assert.Equal(t, 2, st.Quantity)
}

func TestStoreExistingIDs_Deduplicates(t *testing.T) {
	s := seededStore(t)
	ids, err := s.Stores().ExistingIDs(context.Background(), 2, 2, 9, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids)

	same, _ := s.Stores().ExistingIDs(context.Background(), 1, 1)
	assert.Len(t, same, 1)
}

func TestLedgerList_NewestFirstWithPaging(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Ledger().Append(ctx, &entity.StockMovement{
			ProductEAN: "A", StoreID: 1 + i%2, QuantityChange: i + 1,
			Type: entity.MovementTypeImport, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := s.Ledger().List(ctx, repository.LedgerFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 4, page[0].QuantityChange)
	assert.Equal(t, 3, page[1].QuantityChange)

	store := 1
	n, _ := s.Ledger().Count(ctx, repository.LedgerFilter{StoreID: &store})
	assert.Equal(t, 3, n)

	empty, _ := s.Ledger().List(ctx, repository.LedgerFilter{Offset: 10})
	assert.Empty(t, empty)
}

func TestMovementTotals_FiltersAndOrder(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	for _, ean := range []string{"A", "B", "C"} {
		require.NoError(t, s.Products().Create(ctx, &entity.Product{EAN: ean, StyleName: "Style " + ean, Brand: "Brand"}))
	}
	day1 := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 0, 15, 0, 0, time.UTC)
	record := func(ean string, store, delta int, typ string, at time.Time) {
		require.NoError(t, s.Ledger().Append(ctx, &entity.StockMovement{
			ProductEAN: ean, StoreID: store, QuantityChange: delta, Type: typ, CreatedAt: at,
		}))
	}
	record("A", 1, 100, entity.MovementTypeImport, day1)
	record("A", 1, -4, entity.MovementTypeSale, day1)
	record("B", 1, -3, entity.MovementTypeTransfer, day2)
	record("B", 2, 3, entity.MovementTypeTransfer, day2)
	record("C", 2, -6, entity.MovementTypeSale, day2)

	all, err := s.Analytics().MovementTotals(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "B", all[0].ProductEAN)
	assert.Equal(t, 6, all[0].Movement)
	assert.Equal(t, "C", all[1].ProductEAN)
	assert.Equal(t, "A", all[2].ProductEAN)
	assert.Equal(t, 4, all[2].Movement)
	assert.Equal(t, "Style A", all[2].StyleName)

	store := 1
	onlyStore1, _ := s.Analytics().MovementTotals(ctx, repository.MovementFilter{StoreID: &store})
	require.Len(t, onlyStore1, 2)
	assert.Equal(t, 4, onlyStore1[0].Movement)
	assert.Equal(t, "A", onlyStore1[0].ProductEAN)

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	fromDay2, _ := s.Analytics().MovementTotals(ctx, repository.MovementFilter{StartDate: &from})
	require.Len(t, fromDay2, 2)

	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	untilDay1, _ := s.Analytics().MovementTotals(ctx, repository.MovementFilter{EndDate: &to})
	require.Len(t, untilDay1, 1)
	assert.Equal(t, "A", untilDay1[0].ProductEAN)
}
