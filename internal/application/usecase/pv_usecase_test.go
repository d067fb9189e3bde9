package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/domain"
)

func TestPVUseCase_CreatePersiste(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sup := e.supplier(t, "acme")
	cid := e.contract(t, sup, "MKT-P", day("2030-01-01"))

	created, err := e.pvs.Create(ctx, e.admin, dto.CreatePVRequest{
		ContractID:   cid,
		Type:         "réception définitive",
		SignedOn:     "2025-04-02",
		Reservations: "aucune",
		DocumentPath: "pv/2025/0042.pdf",
	})
	require.NoError(t, err)

	got, err := e.pvs.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "réception définitive", got.Type)
	assert.Equal(t, "2025-04-02", got.SignedOn)
	assert.Equal(t, "pv/2025/0042.pdf", got.DocumentPath)

	list, err := e.pvs.List(ctx, cid)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestPVUseCase_IntervencionDebePertenecerAlContrato(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sup := e.supplier(t, "acme")
	c1 := e.contract(t, sup, "MKT-1", day("2030-01-01"))
	c2 := e.contract(t, sup, "MKT-2", day("2030-01-01"))

	it, err := e.interventions.Create(ctx, e.admin, dto.CreateInterventionRequest{
		ContractID: c2, Type: "corrective", Description: "x", IntervenedAt: "2025-02-01",
	})
	require.NoError(t, err)

	_, err = e.pvs.Create(ctx, e.admin, dto.CreatePVRequest{
		ContractID: c1, InterventionID: &it.ID, Type: "intervention", SignedOn: "2025-02-02",
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "intervention_id", ve.Field)

	_, err = e.pvs.Create(ctx, e.admin, dto.CreatePVRequest{
		ContractID: c2, InterventionID: &it.ID, Type: "intervention", SignedOn: "2025-02-02",
	})
	require.NoError(t, err)
}

func TestPVUseCase_UpdateFusionaCampos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sup := e.supplier(t, "acme")
	cid := e.contract(t, sup, "MKT-P", day("2030-01-01"))
	created, err := e.pvs.Create(ctx, e.admin, dto.CreatePVRequest{ContractID: cid, Type: "réception", SignedOn: "2025-04-02"})
	require.NoError(t, err)

	res, err := e.pvs.Update(ctx, e.admin, created.ID, dto.UpdatePVRequest{Reservations: ptr("écran rayé")})
	require.NoError(t, err)
	assert.Equal(t, "écran rayé", res.Reservations)
	assert.Equal(t, "réception", res.Type)

	_, err = e.pvs.Update(ctx, e.admin, created.ID, dto.UpdatePVRequest{SignedOn: ptr("demain")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPVUseCase_UpdateCampoDemasiadoLargo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sup := e.supplier(t, "acme")
	cid := e.contract(t, sup, "MKT-Q", day("2030-01-01"))
	created, err := e.pvs.Create(ctx, e.admin, dto.CreatePVRequest{ContractID: cid, Type: "réception", SignedOn: "2025-04-02"})
	require.NoError(t, err)

	var ve *domain.ValidationError
	_, err = e.pvs.Update(ctx, e.admin, created.ID, dto.UpdatePVRequest{Type: ptr(strings.Repeat("t", 51))})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "type", ve.Field)

	_, err = e.pvs.Update(ctx, e.admin, created.ID, dto.UpdatePVRequest{DocumentPath: ptr("/actas/" + strings.Repeat("d", 250))})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "document_path", ve.Field)
}
