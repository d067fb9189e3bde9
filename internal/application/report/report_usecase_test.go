package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contracts-api/internal/application/usecase"
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/infrastructure/memory"
)

type fakePDF struct{ got PVSheet }

func (f *fakePDF) GeneratePVSheet(_ context.Context, sheet PVSheet) ([]byte, error) {
	f.got = sheet
	return []byte("%PDF-fake"), nil
}

type fakeXLSX struct{ rows []ContractRegisterRow }

func (f *fakeXLSX) ExportContracts(_ context.Context, rows []ContractRegisterRow, _ time.Time) ([]byte, error) {
	f.rows = rows
	return []byte("PK"), nil
}

func seedContract(t *testing.T, store *memory.Store) (*entity.Contract, *entity.Equipment) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repos()
	u := &entity.User{Username: "cm", Email: "cm@example.com", Role: entity.RoleContractManager, PasswordHash: "x"}
	require.NoError(t, repos.Users.Create(ctx, u))
	s := &entity.Supplier{Name: "Acme", Email: "acme@example.com"}
	require.NoError(t, repos.Suppliers.Create(ctx, s))
	eq := &entity.Equipment{Name: "SRV-01", Type: entity.EquipmentServer}
	require.NoError(t, repos.Equipment.Create(ctx, eq))
	c := &entity.Contract{
		SupplierID: s.ID, ManagerID: u.ID, MarketReference: "MKT-9",
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		WarrantyEnd:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		MaintenanceEnd: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		VisitFrequency: entity.FrequencyMonthly, ResponseTimeHours: 2, Status: entity.ContractActive,
	}
	require.NoError(t, repos.Contracts.Create(ctx, c))
	require.NoError(t, repos.Contracts.SetEquipment(ctx, c.ID, []int64{eq.ID}))
	return c, eq
}

func TestReportUseCase_HojaDeActa(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	c, eq := seedContract(t, store)
	pv := &entity.PV{ContractID: c.ID, Type: "réception", SignedOn: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Repos().PVs.Create(ctx, pv))

	gen := &fakePDF{}
	uc := NewReportUseCase(store.Repos(), usecase.NewContractUseCase(store.Repos().Contracts, store, nil), gen, &fakeXLSX{})

	data, name, err := uc.PVSheet(ctx, pv.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), data)
	assert.Equal(t, "pv-1-2025-04-02.pdf", name)
	assert.Equal(t, "Acme", gen.got.Supplier.Name)
	assert.Equal(t, "cm", gen.got.Manager.Username)
	require.Len(t, gen.got.Equipment, 1)
	assert.Equal(t, eq.ID, gen.got.Equipment[0].ID)
	assert.Nil(t, gen.got.Intervention)

	_, _, err = uc.PVSheet(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportUseCase_RegistroDeContratos(t *testing.T) {
	store := memory.NewStore()
	c, _ := seedContract(t, store)

	xl := &fakeXLSX{}
	uc := NewReportUseCase(store.Repos(), usecase.NewContractUseCase(store.Repos().Contracts, store, nil), &fakePDF{}, xl)
	uc.now = func() time.Time { return time.Date(2025, 12, 15, 9, 0, 0, 0, time.UTC) }

	data, name, err := uc.ContractRegister(context.Background(), usecase.ContractQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)
	assert.Equal(t, "contrats-2025-12-15.xlsx", name)
	require.Len(t, xl.rows, 1)
	assert.Equal(t, c.ID, xl.rows[0].Contract.ID)
	assert.Equal(t, "Acme", xl.rows[0].SupplierName)
	assert.Equal(t, "cm", xl.rows[0].ManagerName)
	assert.Equal(t, 1, xl.rows[0].EquipmentCount)
	assert.True(t, xl.rows[0].ExpiringSoon)
}
