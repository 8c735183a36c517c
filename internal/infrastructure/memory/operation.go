package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo implementa repository.OperationRepository en memoria.
type OperationRepo struct{ v view }

func copyDocument(d *entity.OperationDocument) *entity.OperationDocument {
	c := *d
	c.Lines = append([]entity.OperationLine(nil), d.Lines...)
	if d.ScheduleDate != nil {
		t := *d.ScheduleDate
		c.ScheduleDate = &t
	}
	if d.DoneAt != nil {
		t := *d.DoneAt
		c.DoneAt = &t
	}
	return &c
}

func (r *OperationRepo) Create(_ context.Context, d *entity.OperationDocument) error {
	return r.v.write(func(st *state) error {
		for _, e := range st.operations {
			if e.Reference == d.Reference {
				return domain.ErrDuplicateReference
			}
		}
		if _, ok := st.operations[d.ID]; ok {
			return domain.ErrDuplicate
		}
		st.operations[d.ID] = copyDocument(d)
		return nil
	})
}

func (r *OperationRepo) GetByID(_ context.Context, id string) (*entity.OperationDocument, error) {
	var out *entity.OperationDocument
	err := r.v.read(func(st *state) error {
		if d, ok := st.operations[id]; ok {
			out = copyDocument(d)
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de Run el lock del almacén ya serializa la transacción.
func (r *OperationRepo) GetForUpdate(ctx context.Context, id string) (*entity.OperationDocument, error) {
	return r.GetByID(ctx, id)
}

func (r *OperationRepo) SaveTransition(_ context.Context, d *entity.OperationDocument) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.operations[d.ID]
		if !ok {
			return domain.ErrDocumentNotFound
		}
		next := copyDocument(cur)
		next.Status = d.Status
		next.UpdatedAt = d.UpdatedAt
		next.DoneAt = d.DoneAt
		for i := range next.Lines {
			for _, l := range d.Lines {
				if l.ID == next.Lines[i].ID {
					next.Lines[i].FulfilledQuantity = l.FulfilledQuantity
				}
			}
		}
		st.operations[d.ID] = next
		return nil
	})
}

func (r *OperationRepo) List(_ context.Context, f repository.OperationFilter) ([]*entity.OperationDocument, error) {
	var out []*entity.OperationDocument
	err := r.v.read(func(st *state) error {
		all := make([]*entity.OperationDocument, 0)
		for _, d := range st.operations {
			if f.Kind != "" && d.Kind != f.Kind {
				continue
			}
			if f.Status != "" && d.Status != f.Status {
				continue
			}
			if f.WarehouseID != "" && d.WarehouseID != f.WarehouseID {
				continue
			}
			all = append(all, copyDocument(d))
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].CreatedAt.After(all[j].CreatedAt)
			}
			return all[i].Reference > all[j].Reference
		})
		out = page(all, f.Limit, f.Skip)
		return nil
	})
	return out, err
}

func (r *OperationRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.operations[id]; !ok {
			return domain.ErrDocumentNotFound
		}
		delete(st.operations, id)
		return nil
	})
}
