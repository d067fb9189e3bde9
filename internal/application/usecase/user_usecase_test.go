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

func TestUserUseCase_CreateNormalizaRol(t *testing.T) {
	e := newEnv(t)
	res, err := e.users.Create(context.Background(), e.admin, dto.CreateUserRequest{
		Username: "marie",
		Email:    "marie@example.com",
		Password: "motdepasse",
		Role:     "Gestionnaire Technique",
	})
	require.NoError(t, err)
	assert.Equal(t, "technical_manager", res.Role)
	assert.Equal(t, "Gestionnaire Technique", res.RoleLabel)
}

func TestUserUseCase_UsernameDuplicadoNoModificaOriginal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	original, err := e.users.Create(ctx, e.admin, dto.CreateUserRequest{
		Username: "paul", Email: "paul@example.com", Password: "password-1", Role: "contract_manager",
	})
	require.NoError(t, err)
	before, err := e.store.Repos().Users.GetByID(ctx, original.ID)
	require.NoError(t, err)

	_, err = e.users.Create(ctx, e.admin, dto.CreateUserRequest{
		Username: "paul", Email: "other@example.com", Password: "password-2", Role: "admin",
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "username", ve.Field)

	after, err := e.store.Repos().Users.GetByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	list, err := e.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2) // admin del fixture + paul
}

func TestUserUseCase_EmailDuplicado(t *testing.T) {
	e := newEnv(t)
	_, err := e.users.Create(context.Background(), e.admin, dto.CreateUserRequest{
		Username: "other", Email: "admin@example.com", Password: "password-1", Role: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserUseCase_RolRequeridoYConocido(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Create(ctx, e.admin, dto.CreateUserRequest{Username: "a", Email: "a@example.com", Password: "password-1"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Field)

	_, err = e.users.Create(ctx, e.admin, dto.CreateUserRequest{Username: "a", Email: "a@example.com", Password: "password-1", Role: "stagiaire"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Field)

	_, err = e.users.Create(ctx, e.admin, dto.CreateUserRequest{Username: "a", Email: "a@example.com", Password: "short", Role: "admin"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)
}

func TestUserUseCase_EnsureAdminIdempotente(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.users.EnsureAdmin(ctx, "root", "root@example.com", "root-password")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = e.users.EnsureAdmin(ctx, "root", "root@example.com", "root-password")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestUserUseCase_PasswordDemasiadoLargoEsValidacion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	in := dto.CreateUserRequest{Username: "long", Email: "long@example.com", Role: "admin"}

	for _, pw := range []string{
		strings.Repeat("a", 80),
		strings.Repeat("é", 40), // 40 caracteres, 80 bytes
	} {
		in.Password = pw
		_, err := e.users.Create(ctx, e.admin, in)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "password", ve.Field)
	}

	in.Password = strings.Repeat("a", 72)
	_, err := e.users.Create(ctx, e.admin, in)
	require.NoError(t, err)
}
