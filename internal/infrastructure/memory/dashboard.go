package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas en memoria.
type DashboardRepo struct{ a access }

// Dashboard devuelve el repositorio de lectura del tablero.
func (s *Store) Dashboard() *DashboardRepo {
	return &DashboardRepo{access{s: s}}
}

func (st *state) inScope(contractID int64, f repository.DashboardFilter) bool {
	if f.ManagerID == 0 {
		return true
	}
	c, ok := st.contracts[contractID]
	return ok && c.ManagerID == f.ManagerID
}

func (r *DashboardRepo) CountContracts(_ context.Context, f repository.DashboardFilter, status entity.ContractStatus) (int, error) {
	n := 0
	r.a.read(func(st *state) {
		for id, c := range st.contracts {
			if st.inScope(id, f) && (status == "" || c.Status == status) {
				n++
			}
		}
	})
	return n, nil
}

func (r *DashboardRepo) CountEquipment(_ context.Context, f repository.DashboardFilter) (int, error) {
	n := 0
	r.a.read(func(st *state) {
		if f.ManagerID == 0 {
			n = len(st.equipment)
			return
		}
		seen := map[int64]struct{}{}
		for contractID, set := range st.contractEquipment {
			if !st.inScope(contractID, f) {
				continue
			}
			for id := range set {
				seen[id] = struct{}{}
			}
		}
		n = len(seen)
	})
	return n, nil
}

func (r *DashboardRepo) CountInterventions(_ context.Context, f repository.DashboardFilter, status entity.InterventionStatus) (int, error) {
	n := 0
	r.a.read(func(st *state) {
		for _, i := range st.interventions {
			if st.inScope(i.ContractID, f) && (status == "" || i.Status == status) {
				n++
			}
		}
	})
	return n, nil
}

func (r *DashboardRepo) RecentInterventions(_ context.Context, f repository.DashboardFilter, limit int) ([]*entity.Intervention, error) {
	var list []*entity.Intervention
	r.a.read(func(st *state) {
		for _, i := range st.interventions {
			if st.inScope(i.ContractID, f) {
				list = append(list, copyIntervention(i))
			}
		}
	})
	sortRecent(list)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *DashboardRepo) ExpiringContracts(_ context.Context, f repository.DashboardFilter, until time.Time) ([]*entity.Contract, error) {
	var list []*entity.Contract
	r.a.read(func(st *state) {
		for id, c := range st.contracts {
			if st.inScope(id, f) && !c.MaintenanceEnd.After(until) {
				c := c
				list = append(list, &c)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].MaintenanceEnd.Equal(list[j].MaintenanceEnd) {
			return list[i].MaintenanceEnd.Before(list[j].MaintenanceEnd)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}
