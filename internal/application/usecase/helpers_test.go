package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/infrastructure/memory"
)

type env struct {
	store         *memory.Store
	admin         *entity.Identity
	suppliers     *SupplierUseCase
	equipment     *EquipmentUseCase
	contracts     *ContractUseCase
	interventions *InterventionUseCase
	pvs           *PVUseCase
	users         *UserUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	admin := &entity.User{Username: "admin", Email: "admin@example.com", Role: entity.RoleAdmin, PasswordHash: "x"}
	require.NoError(t, repos.Users.Create(context.Background(), admin))
	return &env{
		store:         store,
		admin:         &entity.Identity{UserID: admin.ID, Username: admin.Username, Role: entity.RoleAdmin, SessionID: "s"},
		suppliers:     NewSupplierUseCase(repos.Suppliers, store, nil),
		equipment:     NewEquipmentUseCase(repos.Equipment, store, nil),
		contracts:     NewContractUseCase(repos.Contracts, store, nil),
		interventions: NewInterventionUseCase(repos.Interventions, store, nil),
		pvs:           NewPVUseCase(repos.PVs, store, nil),
		users:         NewUserUseCase(repos.Users, store, nil),
	}
}

func (e *env) supplier(t *testing.T, name string) int64 {
	t.Helper()
	s := &entity.Supplier{Name: name, Email: "contact@" + name + ".example.com"}
	require.NoError(t, e.store.Repos().Suppliers.Create(context.Background(), s))
	return s.ID
}

func (e *env) equip(t *testing.T, name string) int64 {
	t.Helper()
	eq := &entity.Equipment{Name: name, Type: entity.EquipmentServer}
	require.NoError(t, e.store.Repos().Equipment.Create(context.Background(), eq))
	return eq.ID
}

// contract crea un contrato con fin de mantenimiento en maintenanceEnd.
func (e *env) contract(t *testing.T, supplierID int64, ref string, maintenanceEnd time.Time, equipmentIDs ...int64) int64 {
	t.Helper()
	start := maintenanceEnd.AddDate(-2, 0, 0)
	c := &entity.Contract{
		SupplierID:        supplierID,
		ManagerID:         e.admin.UserID,
		MarketReference:   ref,
		StartDate:         start,
		WarrantyEnd:       start.AddDate(1, 0, 0),
		MaintenanceEnd:    maintenanceEnd,
		VisitFrequency:    entity.FrequencyQuarterly,
		ResponseTimeHours: 2,
		Status:            entity.ContractActive,
	}
	repos := e.store.Repos()
	require.NoError(t, repos.Contracts.Create(context.Background(), c))
	require.NoError(t, repos.Contracts.SetEquipment(context.Background(), c.ID, equipmentIDs))
	return c.ID
}

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
