package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo equipos en memoria.
type EquipmentRepo struct{ a access }

func copyEquipment(e entity.Equipment) *entity.Equipment {
	e.AcquiredOn = cloneTime(e.AcquiredOn)
	return &e
}

func (r *EquipmentRepo) Create(_ context.Context, equipment *entity.Equipment) error {
	return r.a.write(func(st *state) error {
		equipment.ID = st.nextID("equipment")
		st.equipment[equipment.ID] = *copyEquipment(*equipment)
		return nil
	})
}

func (r *EquipmentRepo) GetByID(_ context.Context, id int64) (*entity.Equipment, error) {
	var out *entity.Equipment
	r.a.read(func(st *state) {
		if e, ok := st.equipment[id]; ok {
			out = copyEquipment(e)
		}
	})
	return out, nil
}

func (r *EquipmentRepo) List(_ context.Context) ([]*entity.Equipment, error) {
	var list []*entity.Equipment
	r.a.read(func(st *state) {
		for _, e := range st.equipment {
			list = append(list, copyEquipment(e))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *EquipmentRepo) Update(_ context.Context, equipment *entity.Equipment) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.equipment[equipment.ID]; !ok {
			return domain.ErrNotFound
		}
		st.equipment[equipment.ID] = *copyEquipment(*equipment)
		return nil
	})
}

// Delete aplica RESTRICT sobre contract_equipment y interventions.equipment_id.
func (r *EquipmentRepo) Delete(_ context.Context, id int64) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.equipment[id]; !ok {
			return domain.ErrNotFound
		}
		for _, set := range st.contractEquipment {
			if _, ok := set[id]; ok {
				return domain.ErrReferentialConflict
			}
		}
		for _, i := range st.interventions {
			if i.EquipmentID != nil && *i.EquipmentID == id {
				return domain.ErrReferentialConflict
			}
		}
		delete(st.equipment, id)
		return nil
	})
}
