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

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación de EquipmentRepository con pgx.
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el repositorio de equipos.
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `id, name, type, description, serial_number, acquired_on, created_at, updated_at`

func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	query := `
		INSERT INTO equipment (name, type, description, serial_number, acquired_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		e.Name, string(e.Type), e.Description, e.SerialNumber, e.AcquiredOn, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return writeError("insert equipment", err)
	}
	return nil
}

func (r *EquipmentRepo) GetByID(ctx context.Context, id int64) (*entity.Equipment, error) {
	e, err := scanEquipment(r.q.QueryRow(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return e, nil
}

func (r *EquipmentRepo) List(ctx context.Context) ([]*entity.Equipment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+equipmentColumns+` FROM equipment ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return collectEquipment(rows)
}

func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $2, type = $3, description = $4, serial_number = $5, acquired_on = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Name, string(e.Type), e.Description, e.SerialNumber, e.AcquiredOn, e.UpdatedAt,
	)
	if err != nil {
		return writeError("update equipment", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el equipo; contract_equipment e interventions lo restringen.
func (r *EquipmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete equipment", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEquipment(row pgx.Row) (*entity.Equipment, error) {
	var (
		e   entity.Equipment
		typ string
	)
	if err := row.Scan(&e.ID, &e.Name, &typ, &e.Description, &e.SerialNumber, &e.AcquiredOn, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Type = entity.EquipmentType(typ)
	return &e, nil
}

func collectEquipment(rows pgx.Rows) ([]*entity.Equipment, error) {
	defer rows.Close()
	var list []*entity.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
