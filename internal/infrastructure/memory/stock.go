package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

var (
	_ repository.StockRepository  = (*StockRepo)(nil)
	_ repository.LedgerRepository = (*LedgerRepo)(nil)
)

// StockRepo implementa repository.StockRepository en memoria.
type StockRepo struct{ v view }

func (r *StockRepo) GetOrCreate(_ context.Context, productID, locationID, warehouseID string) (*entity.StockBalance, error) {
	var out entity.StockBalance
	err := r.v.write(func(st *state) error {
		k := balanceKey{productID, locationID}
		b, ok := st.balances[k]
		if !ok {
			b = entity.NewStockBalance(productID, locationID, warehouseID)
			st.balances[k] = b
		}
		out = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *StockRepo) Save(_ context.Context, b *entity.StockBalance) error {
	return r.v.write(func(st *state) error {
		if b.OnHand.IsNegative() {
			return domain.ErrInsufficientStock
		}
		c := *b
		st.balances[balanceKey{b.ProductID, b.LocationID}] = &c
		return nil
	})
}

func (r *StockRepo) Get(_ context.Context, productID, locationID string) (*entity.StockBalance, error) {
	var out *entity.StockBalance
	err := r.v.read(func(st *state) error {
		if b, ok := st.balances[balanceKey{productID, locationID}]; ok {
			c := *b
			out = &c
		}
		return nil
	})
	return out, err
}

func matchStock(st *state, b *entity.StockBalance, f repository.StockFilter) bool {
	if f.ProductID != "" && b.ProductID != f.ProductID {
		return false
	}
	if f.LocationID != "" && b.LocationID != f.LocationID {
		return false
	}
	if f.WarehouseID != "" && b.WarehouseID != f.WarehouseID {
		return false
	}
	if f.OnlyZero && !b.OnHand.IsZero() {
		return false
	}
	if f.AtOrBelowMin {
		p, ok := st.products[b.ProductID]
		if !ok || b.OnHand.GreaterThan(p.MinStockLevel) {
			return false
		}
	}
	return true
}

func (r *StockRepo) List(_ context.Context, f repository.StockFilter) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	err := r.v.read(func(st *state) error {
		out = make([]*entity.StockBalance, 0)
		for _, b := range st.balances {
			if matchStock(st, b, f) {
				c := *b
				out = append(out, &c)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].LocationID != out[j].LocationID {
				return out[i].LocationID < out[j].LocationID
			}
			return out[i].ProductID < out[j].ProductID
		})
		return nil
	})
	return out, err
}

func (r *StockRepo) Count(_ context.Context, f repository.StockFilter) (int, error) {
	n := 0
	err := r.v.read(func(st *state) error {
		for _, b := range st.balances {
			if matchStock(st, b, f) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *StockRepo) SumOnHand(_ context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.v.read(func(st *state) error {
		sum = sumOnHand(st, productID, warehouseID)
		return nil
	})
	return sum, err
}

func sumOnHand(st *state, productID, warehouseID string) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range st.balances {
		if b.ProductID == productID && (warehouseID == "" || b.WarehouseID == warehouseID) {
			sum = sum.Add(b.OnHand)
		}
	}
	return sum
}

func (r *StockRepo) ListLowStock(_ context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	var out []repository.LowStockItem
	err := r.v.read(func(st *state) error {
		out = make([]repository.LowStockItem, 0)
		for _, p := range st.products {
			onHand := sumOnHand(st, p.ID, warehouseID)
			if onHand.LessThanOrEqual(p.MinStockLevel) {
				out = append(out, repository.LowStockItem{Product: *p, OnHand: onHand})
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Product.SKU < out[j].Product.SKU })
		return nil
	})
	return out, err
}

// LedgerRepo implementa repository.LedgerRepository en memoria (solo inserción).
type LedgerRepo struct{ v view }

func (r *LedgerRepo) Append(_ context.Context, e *entity.StockLedgerEntry) error {
	return r.v.write(func(st *state) error {
		c := *e
		st.ledger = append(st.ledger, &c)
		return nil
	})
}

func matchLedger(e *entity.StockLedgerEntry, f repository.LedgerFilter) bool {
	switch {
	case f.ProductID != "" && e.ProductID != f.ProductID,
		f.LocationID != "" && e.LocationID != f.LocationID,
		f.WarehouseID != "" && e.WarehouseID != f.WarehouseID,
		f.MovementType != "" && e.MovementType != f.MovementType,
		f.DocumentID != "" && e.DocumentID != f.DocumentID,
		f.From != nil && e.Date.Before(*f.From),
		f.To != nil && e.Date.After(*f.To):
		return false
	}
	return true
}

func (r *LedgerRepo) List(_ context.Context, f repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	err := r.v.read(func(st *state) error {
		all := make([]*entity.StockLedgerEntry, 0)
		// Recorrido inverso: a igual fecha, la última insertada va primero.
		for i := len(st.ledger) - 1; i >= 0; i-- {
			if e := st.ledger[i]; matchLedger(e, f) {
				c := *e
				all = append(all, &c)
			}
		}
		sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
		out = page(all, f.Limit, f.Skip)
		return nil
	})
	return out, err
}

func (r *LedgerRepo) Count(_ context.Context, f repository.LedgerFilter) (int, error) {
	n := 0
	err := r.v.read(func(st *state) error {
		for _, e := range st.ledger {
			if matchLedger(e, f) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *LedgerRepo) SumDelta(_ context.Context, productID, locationID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.v.read(func(st *state) error {
		for _, e := range st.ledger {
			if e.ProductID == productID && e.LocationID == locationID {
				sum = sum.Add(e.Quantity)
			}
		}
		return nil
	})
	return sum, err
}
