// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORAGE_DRIVER=memory (desarrollo local) y como doble de pruebas.
// Aplica las mismas reglas que el esquema Postgres: unicidad, claves foráneas y RESTRICT.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	seq               map[string]int64
	users             map[int64]entity.User
	suppliers         map[int64]entity.Supplier
	equipment         map[int64]entity.Equipment
	contracts         map[int64]entity.Contract
	contractEquipment map[int64]map[int64]struct{}
	interventions     map[int64]entity.Intervention
	pvs               map[int64]entity.PV
}

func newState() *state {
	return &state{
		seq:               map[string]int64{},
		users:             map[int64]entity.User{},
		suppliers:         map[int64]entity.Supplier{},
		equipment:         map[int64]entity.Equipment{},
		contracts:         map[int64]entity.Contract{},
		contractEquipment: map[int64]map[int64]struct{}{},
		interventions:     map[int64]entity.Intervention{},
		pvs:               map[int64]entity.PV{},
	}
}

func (st *state) nextID(table string) int64 {
	st.seq[table]++
	return st.seq[table]
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.seq {
		c.seq[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range st.equipment {
		c.equipment[k] = v
	}
	for k, v := range st.contracts {
		c.contracts[k] = v
	}
	for k, set := range st.contractEquipment {
		cp := make(map[int64]struct{}, len(set))
		for id := range set {
			cp[id] = struct{}{}
		}
		c.contractEquipment[k] = cp
	}
	for k, v := range st.interventions {
		c.interventions[k] = v
	}
	for k, v := range st.pvs {
		c.pvs[k] = v
	}
	return c
}

// Store base de datos en memoria protegida por un RWMutex.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve los repositorios fuera de transacción.
func (s *Store) Repos() repository.Repos {
	return newRepos(access{s: s})
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
// Las transacciones se serializan entre sí.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.st.clone()
	if err := fn(newRepos(access{s: s, tx: tx})); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// AssociationRows cuenta las filas de contract_equipment de un contrato.
func (s *Store) AssociationRows(contractID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.st.contractEquipment[contractID])
}

func newRepos(a access) repository.Repos {
	return repository.Repos{
		Users:         &UserRepo{a},
		Suppliers:     &SupplierRepo{a},
		Equipment:     &EquipmentRepo{a},
		Contracts:     &ContractRepo{a},
		Interventions: &InterventionRepo{a},
		PVs:           &PVRepo{a},
	}
}

// access resuelve el estado a usar: el de la transacción en curso o el compartido con su lock.
type access struct {
	s  *Store
	tx *state
}

func (a access) read(fn func(st *state)) {
	if a.tx != nil {
		fn(a.tx)
		return
	}
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	fn(a.s.st)
}

func (a access) write(fn func(st *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.st)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
