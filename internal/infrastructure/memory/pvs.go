package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.PVRepository = (*PVRepo)(nil)

// PVRepo actas en memoria.
type PVRepo struct{ a access }

func copyPV(p entity.PV) *entity.PV {
	p.InterventionID = cloneID(p.InterventionID)
	return &p
}

func (r *PVRepo) Create(_ context.Context, pv *entity.PV) error {
	return r.a.write(func(st *state) error {
		if err := st.checkPVRefs(pv); err != nil {
			return err
		}
		pv.ID = st.nextID("pvs")
		st.pvs[pv.ID] = *copyPV(*pv)
		return nil
	})
}

func (r *PVRepo) GetByID(_ context.Context, id int64) (*entity.PV, error) {
	var out *entity.PV
	r.a.read(func(st *state) {
		if p, ok := st.pvs[id]; ok {
			out = copyPV(p)
		}
	})
	return out, nil
}

func (r *PVRepo) List(_ context.Context, f repository.PVFilter) ([]*entity.PV, error) {
	var list []*entity.PV
	r.a.read(func(st *state) {
		for _, p := range st.pvs {
			if f.ContractID != 0 && p.ContractID != f.ContractID {
				continue
			}
			if f.InterventionID != 0 && (p.InterventionID == nil || *p.InterventionID != f.InterventionID) {
				continue
			}
			list = append(list, copyPV(p))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *PVRepo) Update(_ context.Context, pv *entity.PV) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.pvs[pv.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := st.checkPVRefs(pv); err != nil {
			return err
		}
		st.pvs[pv.ID] = *copyPV(*pv)
		return nil
	})
}

func (st *state) checkPVRefs(p *entity.PV) error {
	if _, ok := st.contracts[p.ContractID]; !ok {
		return fmt.Errorf("contract_id %d: %w", p.ContractID, domain.ErrNotFound)
	}
	if p.InterventionID != nil {
		if _, ok := st.interventions[*p.InterventionID]; !ok {
			return fmt.Errorf("intervention_id %d: %w", *p.InterventionID, domain.ErrNotFound)
		}
	}
	return nil
}
