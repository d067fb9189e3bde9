package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ a access }

func (r *SupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	return r.a.write(func(st *state) error {
		supplier.ID = st.nextID("suppliers")
		st.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.a.read(func(st *state) {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	r.a.read(func(st *state) {
		for _, s := range st.suppliers {
			s := s
			list = append(list, &s)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *SupplierRepo) Update(_ context.Context, supplier *entity.Supplier) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.suppliers[supplier.ID]; !ok {
			return domain.ErrNotFound
		}
		st.suppliers[supplier.ID] = *supplier
		return nil
	})
}

// Delete aplica ON DELETE RESTRICT sobre contracts.supplier_id.
func (r *SupplierRepo) Delete(_ context.Context, id int64) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		for _, c := range st.contracts {
			if c.SupplierID == id {
				return domain.ErrReferentialConflict
			}
		}
		delete(st.suppliers, id)
		return nil
	})
}
