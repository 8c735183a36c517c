// Package memory implementa los puertos de persistencia en memoria. Las transacciones se serializan
// con un mutex y trabajan sobre una copia del estado que solo se publica si fn termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type balanceKey struct {
	productID  string
	locationID string
}

type state struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	locations  map[string]*entity.Location
	balances   map[balanceKey]*entity.StockBalance
	ledger     []*entity.StockLedgerEntry
	operations map[string]*entity.OperationDocument
}

func newState() *state {
	return &state{
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		locations:  make(map[string]*entity.Location),
		balances:   make(map[balanceKey]*entity.StockBalance),
		operations: make(map[string]*entity.OperationDocument),
	}
}

// clone copia los mapas; las entidades guardadas nunca se mutan en sitio, por lo que basta copiar punteros.
// El ledger se recorta a su capacidad para que los Append de la copia no escriban sobre el original.
func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]*entity.Product, len(s.products)),
		warehouses: make(map[string]*entity.Warehouse, len(s.warehouses)),
		locations:  make(map[string]*entity.Location, len(s.locations)),
		balances:   make(map[balanceKey]*entity.StockBalance, len(s.balances)),
		ledger:     s.ledger[:len(s.ledger):len(s.ledger)],
		operations: make(map[string]*entity.OperationDocument, len(s.operations)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.operations {
		c.operations[k] = v
	}
	return c
}

// Store es el almacén en memoria. Sirve como backend de desarrollo (STORAGE_DRIVER=memory) y de pruebas.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve repositorios que leen y escriben fuera de transacción.
func (s *Store) Repos() inventory.Repos {
	return reposFor(view{store: s})
}

// Run ejecuta fn con repositorios atados a una copia del estado. La copia reemplaza al estado
// solo si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	if err := fn(ctx, reposFor(view{store: s, tx: tx})); err != nil {
		return err
	}
	s.st = tx
	return nil
}

func reposFor(v view) inventory.Repos {
	return inventory.Repos{
		Products:   &ProductRepo{v: v},
		Warehouses: &WarehouseRepo{v: v},
		Locations:  &LocationRepo{v: v},
		Stock:      &StockRepo{v: v},
		Ledger:     &LedgerRepo{v: v},
		Operations: &OperationRepo{v: v},
	}
}

// view decide sobre qué estado opera un repositorio: el de la transacción en curso (ya protegido
// por el lock de Run) o el publicado, tomando el lock en cada llamada.
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.st)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
