package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.StoreRepository     = (*StoreRepo)(nil)
	_ repository.StockRepository     = (*StockRepo)(nil)
	_ repository.LedgerRepository    = (*LedgerRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)
)

// errNegativeStock equivale al CHECK (quantity >= 0) de la tabla stock.
var errNegativeStock = errors.New("stock quantity would become negative")

// ProductRepo productos en memoria.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state, undo *undoLog) error {
		if _, ok := st.products[p.EAN]; ok {
			return domain.ErrDuplicate
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		st.products[p.EAN] = *p
		undo.push(func() { delete(st.products, p.EAN) })
		return nil
	})
}

func (r *ProductRepo) GetByEAN(_ context.Context, ean string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if p, ok := st.products[ean]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.v.read(func(st *state) {
		for _, p := range st.products {
			out = append(out, &p)
		}
	})
	slices.SortFunc(out, func(a, b *entity.Product) int { return cmp.Compare(a.EAN, b.EAN) })
	return out, nil
}

// StoreRepo tiendas en memoria.
type StoreRepo struct{ v view }

// Create asigna el siguiente id si store.ID es 0.
func (r *StoreRepo) Create(_ context.Context, s *entity.Store) error {
	return r.v.write(func(st *state, undo *undoLog) error {
		for _, existing := range st.stores {
			if existing.Name == s.Name {
				return domain.ErrDuplicate
			}
		}
		prevNext := st.nextStoreID
		if s.ID == 0 {
			s.ID = st.nextStoreID
		} else if _, ok := st.stores[s.ID]; ok {
			return domain.ErrDuplicate
		}
		if s.ID >= st.nextStoreID {
			st.nextStoreID = s.ID + 1
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now().UTC()
		}
		st.stores[s.ID] = *s
		id := s.ID
		undo.push(func() {
			delete(st.stores, id)
			st.nextStoreID = prevNext
		})
		return nil
	})
}

func (r *StoreRepo) Exists(_ context.Context, id int) (bool, error) {
	var ok bool
	r.v.read(func(st *state) { _, ok = st.stores[id] })
	return ok, nil
}

func (r *StoreRepo) ExistingIDs(_ context.Context, ids ...int) ([]int, error) {
	var out []int
	r.v.read(func(st *state) {
		for _, id := range ids {
			if _, ok := st.stores[id]; ok && !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	})
	slices.Sort(out)
	return out, nil
}

func (r *StoreRepo) List(_ context.Context) ([]*entity.Store, error) {
	var out []*entity.Store
	r.v.read(func(st *state) {
		for _, s := range st.stores {
			out = append(out, &s)
		}
	})
	slices.SortFunc(out, func(a, b *entity.Store) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// StockRepo saldos en memoria. GetForUpdate no necesita bloqueo: los lotes ya están serializados.
type StockRepo struct{ v view }

func (r *StockRepo) Get(_ context.Context, ean string, storeID int) (*entity.Stock, error) {
	out := &entity.Stock{ProductEAN: ean, StoreID: storeID}
	r.v.read(func(st *state) {
		if s, ok := st.stock[domaininv.Key{EAN: ean, StoreID: storeID}]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *StockRepo) GetForUpdate(ctx context.Context, ean string, storeID int) (*entity.Stock, error) {
	return r.Get(ctx, ean, storeID)
}

func (r *StockRepo) Adjust(_ context.Context, ean string, storeID int, delta int) error {
	return r.v.write(func(st *state, undo *undoLog) error {
		key := domaininv.Key{EAN: ean, StoreID: storeID}
		prev, existed := st.stock[key]
		next := entity.Stock{ProductEAN: ean, StoreID: storeID, Quantity: prev.Quantity + delta, UpdatedAt: time.Now().UTC()}
		if next.Quantity < 0 {
			return fmt.Errorf("adjust stock: %w", errNegativeStock)
		}
		st.stock[key] = next
		undo.push(func() {
			if existed {
				st.stock[key] = prev
				return
			}
			delete(st.stock, key)
		})
		return nil
	})
}

func (r *StockRepo) ListByProduct(_ context.Context, ean string) ([]*entity.Stock, error) {
	return r.list(func(s entity.Stock) bool { return s.ProductEAN == ean }), nil
}

func (r *StockRepo) ListAll(_ context.Context) ([]*entity.Stock, error) {
	return r.list(func(entity.Stock) bool { return true }), nil
}

func (r *StockRepo) list(keep func(entity.Stock) bool) []*entity.Stock {
	var out []*entity.Stock
	r.v.read(func(st *state) {
		for _, s := range st.stock {
			if keep(s) {
				out = append(out, &s)
			}
		}
	})
	slices.SortFunc(out, func(a, b *entity.Stock) int {
		if c := cmp.Compare(a.ProductEAN, b.ProductEAN); c != 0 {
			return c
		}
		return cmp.Compare(a.StoreID, b.StoreID)
	})
	return out
}

// LedgerRepo ledger append-only en memoria.
type LedgerRepo struct{ v view }

func (r *LedgerRepo) Append(_ context.Context, m *entity.StockMovement) error {
	if hook := r.v.s.currentFaults().Append; hook != nil {
		if err := hook(m); err != nil {
			return fmt.Errorf("append stock movement: %w", err)
		}
	}
	return r.v.write(func(st *state, undo *undoLog) error {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
		}
		m.ID = st.nextLedgerID
		st.nextLedgerID++
		st.ledger = append(st.ledger, *m)
		undo.push(func() {
			st.ledger = st.ledger[:len(st.ledger)-1]
			st.nextLedgerID--
		})
		return nil
	})
}

// List devuelve los asientos más recientes primero.
func (r *LedgerRepo) List(_ context.Context, f repository.LedgerFilter) ([]*entity.StockMovement, error) {
	matched := r.filter(f)
	slices.SortStableFunc(matched, func(a, b *entity.StockMovement) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if f.Offset >= len(matched) {
		return []*entity.StockMovement{}, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (r *LedgerRepo) Count(_ context.Context, f repository.LedgerFilter) (int, error) {
	return len(r.filter(f)), nil
}

func (r *LedgerRepo) filter(f repository.LedgerFilter) []*entity.StockMovement {
	var out []*entity.StockMovement
	r.v.read(func(st *state) {
		for _, m := range st.ledger {
			if f.ProductEAN != "" && m.ProductEAN != f.ProductEAN {
				continue
			}
			if f.StoreID != nil && m.StoreID != *f.StoreID {
				continue
			}
			out = append(out, &m)
		}
	})
	return out
}

// UserRepo usuarios en memoria indexados por username.
type UserRepo struct{ v view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state, undo *undoLog) error {
		if _, ok := st.users[u.Username]; ok {
			return domain.ErrDuplicate
		}
		if u.ID == "" {
			u.ID = uuid.New().String()
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now().UTC()
		}
		st.users[u.Username] = *u
		undo.push(func() { delete(st.users, u.Username) })
		return nil
	})
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		if u, ok := st.users[username]; ok {
			out = &u
		}
	})
	return out, nil
}

// AnalyticsRepo rotación calculada sobre el ledger confirmado.
type AnalyticsRepo struct{ v view }

// MovementTotals replica la consulta SQL: ventas y traslados, día calendario UTC inclusivo,
// orden por rotación descendente y EAN en empates.
func (r *AnalyticsRepo) MovementTotals(_ context.Context, f repository.MovementFilter) ([]repository.MovementTotal, error) {
	const day = "2006-01-02"
	var start, end string
	if f.StartDate != nil {
		start = f.StartDate.UTC().Format(day)
	}
	if f.EndDate != nil {
		end = f.EndDate.UTC().Format(day)
	}

	totals := make(map[string]*repository.MovementTotal)
	r.v.read(func(st *state) {
		for i := range st.ledger {
			m := &st.ledger[i]
			if !m.IsMovement() {
				continue
			}
			if f.StoreID != nil && m.StoreID != *f.StoreID {
				continue
			}
			d := m.CreatedAt.UTC().Format(day)
			if (start != "" && d < start) || (end != "" && d > end) {
				continue
			}
			t, ok := totals[m.ProductEAN]
			if !ok {
				p := st.products[m.ProductEAN]
				t = &repository.MovementTotal{ProductEAN: m.ProductEAN, StyleName: p.StyleName, Brand: p.Brand}
				totals[m.ProductEAN] = t
			}
			t.Movement += domaininv.Movement(m)
		}
	})

	out := make([]repository.MovementTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b repository.MovementTotal) int {
		if c := cmp.Compare(b.Movement, a.Movement); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductEAN, b.ProductEAN)
	})
	return out, nil
}
