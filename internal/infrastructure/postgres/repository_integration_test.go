package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
	"github.com/jhoicas/contracts-api/pkg/config"
)

// testPool aplica las migraciones sobre TEST_DATABASE_URL y vacía las tablas.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	require.NoError(t, Migrate(dsn))

	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE pvs, interventions, contract_equipment, contracts, equipment, suppliers, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func date(s string) time.Time {
	d, _ := time.Parse(entity.DateLayout, s)
	return d
}

func TestRepositories_CicloDeVidaDelContrato(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repos := NewRepos(pool)
	now := time.Now().UTC()

	user := &entity.User{Username: "jdupont", Email: "j@example.com", Role: entity.RoleContractManager, PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Users.Create(ctx, user))

	dup := *user
	dup.ID = 0
	err := repos.Users.Create(ctx, &dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	supplier := &entity.Supplier{Name: "Acme", Email: "contact@acme.fr", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Suppliers.Create(ctx, supplier))

	e1 := &entity.Equipment{Name: "srv-01", Type: entity.EquipmentServer, CreatedAt: now, UpdatedAt: now}
	e2 := &entity.Equipment{Name: "ups-01", Type: entity.EquipmentUPS, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Equipment.Create(ctx, e1))
	require.NoError(t, repos.Equipment.Create(ctx, e2))

	c := &entity.Contract{
		SupplierID: supplier.ID, ManagerID: user.ID, MarketReference: "MP-2024-001",
		StartDate: date("2024-01-01"), WarrantyEnd: date("2025-01-01"), MaintenanceEnd: date("2026-01-01"),
		VisitFrequency: entity.FrequencyQuarterly, ResponseTimeHours: 2, Status: entity.ContractActive,
		CreatedAt: now, UpdatedAt: now,
	}
	runner := NewTxRunner(pool)
	require.NoError(t, runner.Run(ctx, func(r repository.Repos) error {
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}
		return r.Contracts.SetEquipment(ctx, c.ID, []int64{e1.ID, e2.ID})
	}))

	got, err := repos.Contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2026-01-01", got.MaintenanceEnd.Format(entity.DateLayout))

	equip, err := repos.Contracts.ListEquipment(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, equip, 2)
	assert.Equal(t, e1.ID, equip[0].ID)

	// supplier y equipo referenciados no se pueden borrar
	assert.ErrorIs(t, repos.Suppliers.Delete(ctx, supplier.ID), domain.ErrReferentialConflict)
	assert.ErrorIs(t, repos.Equipment.Delete(ctx, e1.ID), domain.ErrReferentialConflict)

	// equipo inexistente: la tx entera se revierte
	err = runner.Run(ctx, func(r repository.Repos) error {
		return r.Contracts.SetEquipment(ctx, c.ID, []int64{e1.ID, 9999})
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	equip, err = repos.Contracts.ListEquipment(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, equip, 2)

	missing, err := repos.Contracts.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositories_IntervencionesYDashboard(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repos := NewRepos(pool)
	now := time.Now().UTC()

	user := &entity.User{Username: "admin", Email: "a@example.com", Role: entity.RoleAdmin, PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Users.Create(ctx, user))
	supplier := &entity.Supplier{Name: "Acme", Email: "contact@acme.fr", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Suppliers.Create(ctx, supplier))

	today := entity.DateOf(now)
	c := &entity.Contract{
		SupplierID: supplier.ID, ManagerID: user.ID, MarketReference: "MP-1",
		StartDate: today.AddDate(-1, 0, 0), WarrantyEnd: today, MaintenanceEnd: today.AddDate(0, 0, 30),
		VisitFrequency: entity.FrequencyMonthly, ResponseTimeHours: 4, Status: entity.ContractActive,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Contracts.Create(ctx, c))

	older := &entity.Intervention{ContractID: c.ID, Type: entity.InterventionPreventive, Description: "visite",
		IntervenedAt: now.Add(-48 * time.Hour), Status: entity.InterventionCompleted, CreatedAt: now, UpdatedAt: now}
	newer := &entity.Intervention{ContractID: c.ID, Type: entity.InterventionCorrective, Description: "panne",
		IntervenedAt: now.Add(-time.Hour), Status: entity.InterventionInProgress, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Interventions.Create(ctx, older))
	require.NoError(t, repos.Interventions.Create(ctx, newer))

	list, err := repos.Interventions.List(ctx, repository.InterventionFilter{ContractID: c.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	dash := NewDashboardRepository(pool)
	pending, err := dash.CountInterventions(ctx, repository.DashboardFilter{}, entity.InterventionInProgress)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	expiring, err := dash.ExpiringContracts(ctx, repository.DashboardFilter{}, entity.ExpiryCutoff(now))
	require.NoError(t, err)
	require.Len(t, expiring, 1)

	recent, err := dash.RecentInterventions(ctx, repository.DashboardFilter{}, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, newer.ID, recent[0].ID)
}
