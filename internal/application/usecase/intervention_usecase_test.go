package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/domain"
)

func TestInterventionUseCase_CreateValoresPorDefectoYReferencias(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sup := e.supplier(t, "acme")
	eq := e.equip(t, "SRV")
	cid := e.contract(t, sup, "MKT-I", day("2030-01-01"), eq)

	res, err := e.interventions.Create(ctx, e.admin, dto.CreateInterventionRequest{
		ContractID:          cid,
		EquipmentID:         &eq,
		Type:                "preventive",
		Description:         "visite trimestrielle",
		IntervenedAt:        "2025-02-01T09:30:00Z",
		PlannedPreventiveOn: "2025-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", res.Status)
	require.NotNil(t, res.PlannedPreventiveOn)
	assert.Equal(t, "2025-05-01", *res.PlannedPreventiveOn)

	_, err = e.interventions.Create(ctx, e.admin, dto.CreateInterventionRequest{
		ContractID: 999, Type: "corrective", Description: "x", IntervenedAt: "2025-02-01",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.interventions.Create(ctx, e.admin, dto.CreateInterventionRequest{
		ContractID: cid, Type: "curative", Description: "x", IntervenedAt: "2025-02-01",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInterventionUseCase_ListFiltros(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sup := e.supplier(t, "acme")
	c1 := e.contract(t, sup, "MKT-1", day("2030-01-01"))
	c2 := e.contract(t, sup, "MKT-2", day("2030-01-01"))

	for _, in := range []dto.CreateInterventionRequest{
		{ContractID: c1, Type: "preventive", Description: "a", IntervenedAt: "2025-01-10T08:00:00Z", Status: "completed"},
		{ContractID: c1, Type: "corrective", Description: "b", IntervenedAt: "2025-02-10T23:00:00Z"},
		{ContractID: c2, Type: "corrective", Description: "c", IntervenedAt: "2025-03-10T08:00:00Z"},
	} {
		_, err := e.interventions.Create(ctx, e.admin, in)
		require.NoError(t, err)
	}

	byContract, err := e.interventions.List(ctx, dto.InterventionQuery{ContractID: c1})
	require.NoError(t, err)
	require.Len(t, byContract.Items, 2)
	assert.Equal(t, "b", byContract.Items[0].Description) // más reciente primero

	pending, err := e.interventions.List(ctx, dto.InterventionQuery{Status: "in_progress"})
	require.NoError(t, err)
	assert.Len(t, pending.Items, 2)

	// "to" sin hora incluye el día completo
	ranged, err := e.interventions.List(ctx, dto.InterventionQuery{From: "2025-02-01", To: "2025-02-10"})
	require.NoError(t, err)
	require.Len(t, ranged.Items, 1)
	assert.Equal(t, "b", ranged.Items[0].Description)

	_, err = e.interventions.List(ctx, dto.InterventionQuery{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInterventionUseCase_UpdateDesasociaEquipo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sup := e.supplier(t, "acme")
	eq := e.equip(t, "SRV")
	cid := e.contract(t, sup, "MKT-I", day("2030-01-01"))

	created, err := e.interventions.Create(ctx, e.admin, dto.CreateInterventionRequest{
		ContractID: cid, EquipmentID: &eq, Type: "corrective", Description: "disque", IntervenedAt: "2025-02-01",
	})
	require.NoError(t, err)

	res, err := e.interventions.Update(ctx, e.admin, created.ID, dto.UpdateInterventionRequest{
		EquipmentID: ptr(int64(0)),
		Status:      ptr("completed"),
	})
	require.NoError(t, err)
	assert.Nil(t, res.EquipmentID)
	assert.Equal(t, "completed", res.Status)
}
