package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contracts-api/internal/domain"
)

func TestWriteError_TraduceCodigosPostgres(t *testing.T) {
	err := writeError("insert user", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "username", ve.Field)

	err = writeError("insert contract", fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23503", ConstraintName: "contracts_supplier_id_fkey"}))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "supplier_id")

	err = writeError("insert contract", &pgconn.PgError{Code: "23514", ConstraintName: "contracts_dates_check"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "dates", ve.Field)

	err = writeError("update supplier", &pgconn.PgError{Code: "22001", Message: "value too long for type character varying(20)"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)

	plain := errors.New("conn reset")
	assert.ErrorIs(t, writeError("x", plain), plain)
}

func TestDeleteError_ReferenciaEsConflicto(t *testing.T) {
	err := deleteError("delete supplier", &pgconn.PgError{Code: "23503", ConstraintName: "contracts_supplier_id_fkey"})
	assert.ErrorIs(t, err, domain.ErrReferentialConflict)

	other := errors.New("timeout")
	assert.ErrorIs(t, deleteError("delete supplier", other), other)
}

func TestMigrateURL_EsquemaPgx5(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/x?sslmode=disable", migrateURL("postgres://u:p@db:5432/x?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/x", migrateURL("postgresql://u@db/x"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}
