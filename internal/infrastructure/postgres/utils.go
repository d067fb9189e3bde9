package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/contracts-api/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
)

// constraintFields campo expuesto en la API para cada constraint con nombre.
var constraintFields = map[string]string{
	"users_username_key":                   "username",
	"users_email_key":                      "email",
	"contracts_market_reference_key":       "market_reference",
	"contracts_supplier_id_fkey":           "supplier_id",
	"contracts_manager_id_fkey":            "manager_id",
	"contracts_dates_check":                "dates",
	"contracts_visit_frequency_check":      "visit_frequency",
	"contracts_response_time_hours_check":  "response_time_hours",
	"contracts_status_check":               "status",
	"contract_equipment_contract_id_fkey":  "contract_id",
	"contract_equipment_equipment_id_fkey": "equipment_id",
	"contract_equipment_pkey":              "equipment_ids",
	"equipment_type_check":                 "type",
	"interventions_contract_id_fkey":       "contract_id",
	"interventions_equipment_id_fkey":      "equipment_id",
	"interventions_type_check":             "type",
	"interventions_status_check":           "status",
	"pvs_contract_id_fkey":                 "contract_id",
	"pvs_intervention_id_fkey":             "intervention_id",
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// writeError traduce errores de INSERT/UPDATE: único → ErrDuplicate, FK → ErrNotFound,
// CHECK y texto demasiado largo → ErrValidation.
func writeError(op string, err error) error {
	pgErr, ok := asPgError(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	field := constraintFields[pgErr.ConstraintName]
	switch pgErr.Code {
	case pgUniqueViolation:
		return domain.NewDuplicateError(field)
	case pgForeignKeyViolation:
		return fmt.Errorf("%s: %w", field, domain.ErrNotFound)
	case pgCheckViolation:
		return domain.NewValidationError(field, "valor no permitido")
	case pgStringTooLong:
		return domain.NewValidationError(pgErr.ColumnName, "valor demasiado largo")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// deleteError traduce errores de DELETE: FK → ErrReferentialConflict.
func deleteError(op string, err error) error {
	if pgErr, ok := asPgError(err); ok && pgErr.Code == pgForeignKeyViolation {
		return domain.ErrReferentialConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
