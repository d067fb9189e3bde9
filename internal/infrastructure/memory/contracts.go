package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo contratos y relación contract_equipment en memoria.
type ContractRepo struct{ a access }

func (r *ContractRepo) Create(_ context.Context, contract *entity.Contract) error {
	return r.a.write(func(st *state) error {
		if err := st.checkContractRefs(contract, 0); err != nil {
			return err
		}
		contract.ID = st.nextID("contracts")
		st.contracts[contract.ID] = *contract
		return nil
	})
}

func (r *ContractRepo) GetByID(_ context.Context, id int64) (*entity.Contract, error) {
	var out *entity.Contract
	r.a.read(func(st *state) {
		if c, ok := st.contracts[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *ContractRepo) GetByMarketReference(_ context.Context, reference string) (*entity.Contract, error) {
	var out *entity.Contract
	r.a.read(func(st *state) {
		for _, c := range st.contracts {
			if c.MarketReference == reference {
				c := c
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *ContractRepo) List(_ context.Context, f repository.ContractFilter) ([]*entity.Contract, error) {
	var list []*entity.Contract
	r.a.read(func(st *state) {
		for _, c := range st.contracts {
			if !matchContract(c, f) {
				continue
			}
			c := c
			list = append(list, &c)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func matchContract(c entity.Contract, f repository.ContractFilter) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.ManagerID != 0 && c.ManagerID != f.ManagerID {
		return false
	}
	if f.SupplierID != 0 && c.SupplierID != f.SupplierID {
		return false
	}
	if f.MaintenanceEndBefore != nil && c.MaintenanceEnd.After(*f.MaintenanceEndBefore) {
		return false
	}
	return true
}

func (r *ContractRepo) Update(_ context.Context, contract *entity.Contract) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.contracts[contract.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := st.checkContractRefs(contract, contract.ID); err != nil {
			return err
		}
		st.contracts[contract.ID] = *contract
		return nil
	})
}

func (r *ContractRepo) SetEquipment(_ context.Context, contractID int64, equipmentIDs []int64) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.contracts[contractID]; !ok {
			return fmt.Errorf("contract_id %d: %w", contractID, domain.ErrNotFound)
		}
		set := make(map[int64]struct{}, len(equipmentIDs))
		for _, id := range equipmentIDs {
			if _, ok := st.equipment[id]; !ok {
				return fmt.Errorf("equipment_id %d: %w", id, domain.ErrNotFound)
			}
			set[id] = struct{}{}
		}
		st.contractEquipment[contractID] = set
		return nil
	})
}

func (r *ContractRepo) ListEquipment(_ context.Context, contractID int64) ([]*entity.Equipment, error) {
	var list []*entity.Equipment
	r.a.read(func(st *state) {
		for id := range st.contractEquipment[contractID] {
			if e, ok := st.equipment[id]; ok {
				list = append(list, copyEquipment(e))
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *ContractRepo) CountBySupplier(_ context.Context, supplierID int64) (int, error) {
	n := 0
	r.a.read(func(st *state) {
		for _, c := range st.contracts {
			if c.SupplierID == supplierID {
				n++
			}
		}
	})
	return n, nil
}

func (r *ContractRepo) CountByEquipment(_ context.Context, equipmentID int64) (int, error) {
	n := 0
	r.a.read(func(st *state) {
		for _, set := range st.contractEquipment {
			if _, ok := set[equipmentID]; ok {
				n++
			}
		}
	})
	return n, nil
}

// checkContractRefs emula las FK y el índice único de contracts.
func (st *state) checkContractRefs(c *entity.Contract, self int64) error {
	if _, ok := st.suppliers[c.SupplierID]; !ok {
		return fmt.Errorf("supplier_id %d: %w", c.SupplierID, domain.ErrNotFound)
	}
	if _, ok := st.users[c.ManagerID]; !ok {
		return fmt.Errorf("manager_id %d: %w", c.ManagerID, domain.ErrNotFound)
	}
	for id, other := range st.contracts {
		if id != self && other.MarketReference == c.MarketReference {
			return domain.NewDuplicateError("market_reference")
		}
	}
	return nil
}
