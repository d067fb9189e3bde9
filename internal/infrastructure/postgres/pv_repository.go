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

var _ repository.PVRepository = (*PVRepo)(nil)

// PVRepo implementación de PVRepository con pgx.
type PVRepo struct {
	q Querier
}

// NewPVRepository construye el repositorio de actas.
func NewPVRepository(q Querier) *PVRepo {
	return &PVRepo{q: q}
}

const pvColumns = `id, contract_id, intervention_id, type, signed_on, reservations, document_path, created_at, updated_at`

func (r *PVRepo) Create(ctx context.Context, p *entity.PV) error {
	query := `
		INSERT INTO pvs (contract_id, intervention_id, type, signed_on, reservations, document_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.ContractID, p.InterventionID, p.Type, p.SignedOn, p.Reservations, p.DocumentPath, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return writeError("insert pv", err)
	}
	return nil
}

func (r *PVRepo) GetByID(ctx context.Context, id int64) (*entity.PV, error) {
	p, err := scanPV(r.q.QueryRow(ctx, `SELECT `+pvColumns+` FROM pvs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pv: %w", err)
	}
	return p, nil
}

func (r *PVRepo) List(ctx context.Context, f repository.PVFilter) ([]*entity.PV, error) {
	query := `SELECT ` + pvColumns + ` FROM pvs WHERE 1=1`
	var args []any
	if f.ContractID != 0 {
		args = append(args, f.ContractID)
		query += fmt.Sprintf(" AND contract_id = $%d", len(args))
	}
	if f.InterventionID != 0 {
		args = append(args, f.InterventionID)
		query += fmt.Sprintf(" AND intervention_id = $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pvs: %w", err)
	}
	defer rows.Close()
	var list []*entity.PV
	for rows.Next() {
		p, err := scanPV(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pv: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PVRepo) Update(ctx context.Context, p *entity.PV) error {
	query := `
		UPDATE pvs
		SET contract_id = $2, intervention_id = $3, type = $4, signed_on = $5, reservations = $6,
			document_path = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.ContractID, p.InterventionID, p.Type, p.SignedOn, p.Reservations, p.DocumentPath, p.UpdatedAt,
	)
	if err != nil {
		return writeError("update pv", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPV(row pgx.Row) (*entity.PV, error) {
	var p entity.PV
	err := row.Scan(&p.ID, &p.ContractID, &p.InterventionID, &p.Type, &p.SignedOn, &p.Reservations,
		&p.DocumentPath, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
