package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

func TestEquipmentUseCase_CreateYUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.equipment.Create(ctx, e.admin, dto.CreateEquipmentRequest{
		Name:         "SRV-01",
		Type:         "server",
		SerialNumber: "SN-123",
		AcquiredOn:   "2021-03-15",
	})
	require.NoError(t, err)
	require.NotNil(t, created.AcquiredOn)
	assert.Equal(t, "2021-03-15", *created.AcquiredOn)

	updated, err := e.equipment.Update(ctx, e.admin, created.ID, dto.UpdateEquipmentRequest{
		Type:       ptr("nas"),
		AcquiredOn: ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "nas", updated.Type)
	assert.Nil(t, updated.AcquiredOn)
	assert.Equal(t, "SN-123", updated.SerialNumber)
}

func TestEquipmentUseCase_RechazaTipoDesconocidoYFechaInvalida(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.equipment.Create(ctx, e.admin, dto.CreateEquipmentRequest{Name: "X", Type: "toaster"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.equipment.Create(ctx, e.admin, dto.CreateEquipmentRequest{Name: "X", Type: "ups", AcquiredOn: "15/03/2021"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "acquired_on", ve.Field)
}

func TestEquipmentUseCase_CatalogoDeTipos(t *testing.T) {
	e := newEnv(t)
	types := e.equipment.Types()
	assert.Len(t, types, 13)
	assert.Equal(t, "server", types[0])
	assert.Contains(t, types, "consumable_lot")
}

func TestEquipmentUseCase_DeleteRestringidoPorContratoOIntervencion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sup := e.supplier(t, "acme")
	attached := e.equip(t, "attached")
	intervened := e.equip(t, "intervened")
	free := e.equip(t, "free")
	cid := e.contract(t, sup, "MKT-1", day("2030-06-30"), attached)

	it := &entity.Intervention{
		ContractID: cid, EquipmentID: &intervened, Type: entity.InterventionCorrective,
		Description: "panne", IntervenedAt: time.Now(), Status: entity.InterventionCompleted,
	}
	require.NoError(t, e.store.Repos().Interventions.Create(ctx, it))

	assert.ErrorIs(t, e.equipment.Delete(ctx, e.admin, attached), domain.ErrReferentialConflict)
	assert.ErrorIs(t, e.equipment.Delete(ctx, e.admin, intervened), domain.ErrReferentialConflict)
	require.NoError(t, e.equipment.Delete(ctx, e.admin, free))
	assert.Equal(t, 1, e.store.AssociationRows(cid))
}

func TestEquipmentUseCase_UpdateCampoDemasiadoLargo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id := e.equip(t, "SRV-02")

	_, err := e.equipment.Update(ctx, e.admin, id, dto.UpdateEquipmentRequest{SerialNumber: ptr(strings.Repeat("S", 101))})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "serial_number", ve.Field)

	got, err := e.equipment.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.SerialNumber)
}
