package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.LocationRepository  = (*LocationRepo)(nil)
)

// ProductRepo implementa repository.ProductRepository en memoria.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		for _, e := range st.products {
			if e.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		c := *p
		st.products[p.ID] = &c
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				c := *p
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrProductNotFound
		}
		c := *p
		st.products[p.ID] = &c
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(func(st *state) error {
		all := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			c := *p
			all = append(all, &c)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrProductNotFound
		}
		delete(st.products, id)
		return nil
	})
}

// WarehouseRepo implementa repository.WarehouseRepository en memoria.
type WarehouseRepo struct{ v view }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.v.write(func(st *state) error {
		for _, e := range st.warehouses {
			if e.ShortCode == w.ShortCode {
				return domain.ErrDuplicate
			}
		}
		c := *w
		st.warehouses[w.ID] = &c
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.read(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			c := *w
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) GetByShortCode(_ context.Context, code string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.read(func(st *state) error {
		for _, w := range st.warehouses {
			if w.ShortCode == code {
				c := *w
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.warehouses[w.ID]; !ok {
			return domain.ErrWarehouseNotFound
		}
		c := *w
		st.warehouses[w.ID] = &c
		return nil
	})
}

func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.v.read(func(st *state) error {
		all := make([]*entity.Warehouse, 0, len(st.warehouses))
		for _, w := range st.warehouses {
			c := *w
			all = append(all, &c)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].ShortCode < all[j].ShortCode })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.warehouses[id]; !ok {
			return domain.ErrWarehouseNotFound
		}
		delete(st.warehouses, id)
		return nil
	})
}

// LocationRepo implementa repository.LocationRepository en memoria.
type LocationRepo struct{ v view }

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.warehouses[l.WarehouseID]; !ok {
			return domain.ErrWarehouseNotFound
		}
		for _, e := range st.locations {
			if e.WarehouseID == l.WarehouseID && e.ShortCode == l.ShortCode {
				return domain.ErrDuplicate
			}
		}
		c := *l
		st.locations[l.ID] = &c
		return nil
	})
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	err := r.v.read(func(st *state) error {
		if l, ok := st.locations[id]; ok {
			c := *l
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) GetByCode(_ context.Context, warehouseID, code string) (*entity.Location, error) {
	var out *entity.Location
	err := r.v.read(func(st *state) error {
		for _, l := range st.locations {
			if l.WarehouseID == warehouseID && l.ShortCode == code {
				c := *l
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) Update(_ context.Context, l *entity.Location) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.locations[l.ID]; !ok {
			return domain.ErrLocationNotFound
		}
		c := *l
		st.locations[l.ID] = &c
		return nil
	})
}

func (r *LocationRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.Location, error) {
	var out []*entity.Location
	err := r.v.read(func(st *state) error {
		out = make([]*entity.Location, 0)
		for _, l := range st.locations {
			if l.WarehouseID == warehouseID {
				c := *l
				out = append(out, &c)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ShortCode < out[j].ShortCode })
		return nil
	})
	return out, err
}

func (r *LocationRepo) CountByWarehouse(_ context.Context, warehouseID string) (int, error) {
	n := 0
	err := r.v.read(func(st *state) error {
		for _, l := range st.locations {
			if l.WarehouseID == warehouseID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *LocationRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.locations[id]; !ok {
			return domain.ErrLocationNotFound
		}
		delete(st.locations, id)
		return nil
	})
}
