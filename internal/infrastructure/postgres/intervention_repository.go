package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.InterventionRepository = (*InterventionRepo)(nil)

// InterventionRepo implementación de InterventionRepository con pgx.
type InterventionRepo struct {
	q Querier
}

// NewInterventionRepository construye el repositorio de intervenciones.
func NewInterventionRepository(q Querier) *InterventionRepo {
	return &InterventionRepo{q: q}
}

const interventionColumns = `id, contract_id, equipment_id, type, description, intervened_at, planned_preventive_on,
	status, created_at, updated_at`

func (r *InterventionRepo) Create(ctx context.Context, i *entity.Intervention) error {
	query := `
		INSERT INTO interventions (contract_id, equipment_id, type, description, intervened_at,
			planned_preventive_on, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		i.ContractID, i.EquipmentID, string(i.Type), i.Description, i.IntervenedAt,
		i.PlannedPreventiveOn, string(i.Status), i.CreatedAt, i.UpdatedAt,
	).Scan(&i.ID)
	if err != nil {
		return writeError("insert intervention", err)
	}
	return nil
}

func (r *InterventionRepo) GetByID(ctx context.Context, id int64) (*entity.Intervention, error) {
	i, err := scanIntervention(r.q.QueryRow(ctx, `SELECT `+interventionColumns+` FROM interventions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intervention: %w", err)
	}
	return i, nil
}

// List más recientes primero; el ID desempata intervenciones del mismo instante.
func (r *InterventionRepo) List(ctx context.Context, f repository.InterventionFilter) ([]*entity.Intervention, error) {
	query := `SELECT ` + interventionColumns + ` FROM interventions WHERE 1=1`
	var args []any
	if f.ContractID != 0 {
		args = append(args, f.ContractID)
		query += fmt.Sprintf(" AND contract_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND intervened_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND intervened_at <= $%d", len(args))
	}
	query += " ORDER BY intervened_at DESC, id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	return collectInterventions(rows)
}

func (r *InterventionRepo) Update(ctx context.Context, i *entity.Intervention) error {
	query := `
		UPDATE interventions
		SET contract_id = $2, equipment_id = $3, type = $4, description = $5, intervened_at = $6,
			planned_preventive_on = $7, status = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		i.ID, i.ContractID, i.EquipmentID, string(i.Type), i.Description, i.IntervenedAt,
		i.PlannedPreventiveOn, string(i.Status), i.UpdatedAt,
	)
	if err != nil {
		return writeError("update intervention", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InterventionRepo) CountByEquipment(ctx context.Context, equipmentID int64) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM interventions WHERE equipment_id = $1`, equipmentID)
}

func scanIntervention(row pgx.Row) (*entity.Intervention, error) {
	var (
		i           entity.Intervention
		typ, status string
	)
	err := row.Scan(&i.ID, &i.ContractID, &i.EquipmentID, &typ, &i.Description, &i.IntervenedAt,
		&i.PlannedPreventiveOn, &status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	i.Type = entity.InterventionType(typ)
	i.Status = entity.InterventionStatus(status)
	i.IntervenedAt = i.IntervenedAt.UTC()
	return &i, nil
}

func collectInterventions(rows pgx.Rows) ([]*entity.Intervention, error) {
	defer rows.Close()
	var list []*entity.Intervention
	for rows.Next() {
		i, err := scanIntervention(rows)
		if err != nil {
			return nil, fmt.Errorf("scan intervention: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}
