// Package memory implementa los puertos de persistencia en memoria.
//
// Se usa en tests y con STORAGE_DRIVER=memory para levantar la API sin PostgreSQL.
// Los lotes se serializan con un mutex; cada lote trabaja sobre una copia del estado
// que se publica completa en el commit, y cada fila lleva un registro de deshacer
// que emula el SAVEPOINT de PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

var _ inventory.TxRunner = (*Store)(nil)

// Faults inyecta fallos para ejercitar los caminos de error en tests.
type Faults struct {
	// Append se invoca antes de escribir cada asiento; si devuelve error el asiento no se escribe.
	Append func(m *entity.StockMovement) error
	// Begin y Commit simulan fallos sistémicos de la transacción del lote.
	Begin  error
	Commit error
}

// state datos de la base en memoria.
type state struct {
	products     map[string]entity.Product
	stores       map[int]entity.Store
	stock        map[domaininv.Key]entity.Stock
	ledger       []entity.StockMovement
	users        map[string]entity.User
	nextStoreID  int
	nextLedgerID int64
}

func newState() *state {
	return &state{
		products:     make(map[string]entity.Product),
		stores:       make(map[int]entity.Store),
		stock:        make(map[domaininv.Key]entity.Stock),
		users:        make(map[string]entity.User),
		nextStoreID:  1,
		nextLedgerID: 1,
	}
}

func (s *state) clone() *state {
	c := &state{
		products:     make(map[string]entity.Product, len(s.products)),
		stores:       make(map[int]entity.Store, len(s.stores)),
		stock:        make(map[domaininv.Key]entity.Stock, len(s.stock)),
		ledger:       make([]entity.StockMovement, len(s.ledger)),
		users:        make(map[string]entity.User, len(s.users)),
		nextStoreID:  s.nextStoreID,
		nextLedgerID: s.nextLedgerID,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.stores {
		c.stores[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	copy(c.ledger, s.ledger)
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store base de datos en memoria. El valor cero no es utilizable: usar New.
type Store struct {
	batchMu sync.Mutex   // un lote a la vez (modelo de escritor único)
	mu      sync.RWMutex // protege data y faults
	data    *state
	faults  Faults
}

// New crea una base vacía.
func New() *Store {
	return &Store{data: newState()}
}

// SetFaults reemplaza los fallos inyectados.
func (s *Store) SetFaults(f Faults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = f
}

func (s *Store) currentFaults() Faults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.faults
}

// Products repositorio de productos sobre el estado confirmado.
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: view{s: s}} }

// Stores repositorio de tiendas sobre el estado confirmado.
func (s *Store) Stores() *StoreRepo { return &StoreRepo{v: view{s: s}} }

// Stock repositorio de saldos sobre el estado confirmado.
func (s *Store) Stock() *StockRepo { return &StockRepo{v: view{s: s}} }

// Ledger repositorio del ledger sobre el estado confirmado.
func (s *Store) Ledger() *LedgerRepo { return &LedgerRepo{v: view{s: s}} }

// Users repositorio de usuarios sobre el estado confirmado.
func (s *Store) Users() *UserRepo { return &UserRepo{v: view{s: s}} }

// Analytics repositorio de analítica sobre el estado confirmado.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{v: view{s: s}} }

// RunBatch ejecuta fn sobre una copia del estado y la publica solo si fn y el commit terminan sin error.
func (s *Store) RunBatch(ctx context.Context, fn func(tx inventory.BatchTx) error) error {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	faults := s.currentFaults()
	if faults.Begin != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrStorage, faults.Begin)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrStorage, err)
	}

	s.mu.RLock()
	working := s.data.clone()
	s.mu.RUnlock()

	tx := &batchTx{s: s, st: working}
	if err := fn(tx); err != nil {
		return err
	}
	if faults.Commit != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrStorage, faults.Commit)
	}

	s.mu.Lock()
	s.data = working
	s.mu.Unlock()
	return nil
}

// batchTx transacción de un lote sobre la copia de trabajo.
type batchTx struct {
	s  *Store
	st *state
}

// Row ejecuta fn registrando cómo deshacer cada escritura; si fn falla se deshace en orden inverso.
func (t *batchTx) Row(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	undo := &undoLog{}
	v := view{s: t.s, tx: t.st, undo: undo}
	err := fn(inventory.TxRepos{
		Products: &ProductRepo{v: v},
		Stores:   &StoreRepo{v: v},
		Stock:    &StockRepo{v: v},
		Ledger:   &LedgerRepo{v: v},
	})
	if err != nil {
		undo.rollback()
		return err
	}
	return nil
}

// undoLog acciones para deshacer las escrituras de una fila.
type undoLog struct {
	fns []func()
}

func (u *undoLog) push(fn func()) {
	if u != nil {
		u.fns = append(u.fns, fn)
	}
}

func (u *undoLog) rollback() {
	for i := len(u.fns) - 1; i >= 0; i-- {
		u.fns[i]()
	}
	u.fns = nil
}

// view da acceso al estado: la copia de trabajo dentro de un lote o el estado confirmado fuera de él.
type view struct {
	s    *Store
	tx   *state
	undo *undoLog
}

func (v view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(v.s.data)
}

func (v view) write(fn func(st *state, undo *undoLog) error) error {
	if v.tx != nil {
		return fn(v.tx, v.undo)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.data, nil)
}
