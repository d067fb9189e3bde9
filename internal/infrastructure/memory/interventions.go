package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.InterventionRepository = (*InterventionRepo)(nil)

// InterventionRepo intervenciones en memoria.
type InterventionRepo struct{ a access }

func copyIntervention(i entity.Intervention) *entity.Intervention {
	i.EquipmentID = cloneID(i.EquipmentID)
	i.PlannedPreventiveOn = cloneTime(i.PlannedPreventiveOn)
	return &i
}

func (r *InterventionRepo) Create(_ context.Context, intervention *entity.Intervention) error {
	return r.a.write(func(st *state) error {
		if err := st.checkInterventionRefs(intervention); err != nil {
			return err
		}
		intervention.ID = st.nextID("interventions")
		st.interventions[intervention.ID] = *copyIntervention(*intervention)
		return nil
	})
}

func (r *InterventionRepo) GetByID(_ context.Context, id int64) (*entity.Intervention, error) {
	var out *entity.Intervention
	r.a.read(func(st *state) {
		if i, ok := st.interventions[id]; ok {
			out = copyIntervention(i)
		}
	})
	return out, nil
}

func (r *InterventionRepo) List(_ context.Context, f repository.InterventionFilter) ([]*entity.Intervention, error) {
	var list []*entity.Intervention
	r.a.read(func(st *state) {
		for _, i := range st.interventions {
			if matchIntervention(i, f) {
				list = append(list, copyIntervention(i))
			}
		}
	})
	sortRecent(list)
	return list, nil
}

func matchIntervention(i entity.Intervention, f repository.InterventionFilter) bool {
	if f.ContractID != 0 && i.ContractID != f.ContractID {
		return false
	}
	if f.Status != "" && i.Status != f.Status {
		return false
	}
	if f.From != nil && i.IntervenedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && i.IntervenedAt.After(*f.To) {
		return false
	}
	return true
}

// sortRecent ordena por IntervenedAt descendente y luego por ID descendente.
func sortRecent(list []*entity.Intervention) {
	sort.Slice(list, func(a, b int) bool {
		if !list[a].IntervenedAt.Equal(list[b].IntervenedAt) {
			return list[a].IntervenedAt.After(list[b].IntervenedAt)
		}
		return list[a].ID > list[b].ID
	})
}

func (r *InterventionRepo) Update(_ context.Context, intervention *entity.Intervention) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.interventions[intervention.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := st.checkInterventionRefs(intervention); err != nil {
			return err
		}
		st.interventions[intervention.ID] = *copyIntervention(*intervention)
		return nil
	})
}

func (r *InterventionRepo) CountByEquipment(_ context.Context, equipmentID int64) (int, error) {
	n := 0
	r.a.read(func(st *state) {
		for _, i := range st.interventions {
			if i.EquipmentID != nil && *i.EquipmentID == equipmentID {
				n++
			}
		}
	})
	return n, nil
}

func (st *state) checkInterventionRefs(i *entity.Intervention) error {
	if _, ok := st.contracts[i.ContractID]; !ok {
		return fmt.Errorf("contract_id %d: %w", i.ContractID, domain.ErrNotFound)
	}
	if i.EquipmentID != nil {
		if _, ok := st.equipment[*i.EquipmentID]; !ok {
			return fmt.Errorf("equipment_id %d: %w", *i.EquipmentID, domain.ErrNotFound)
		}
	}
	return nil
}
