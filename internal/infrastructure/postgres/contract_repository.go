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

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación de ContractRepository con pgx. Incluye la relación contract_equipment.
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el repositorio de contratos.
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractColumns = `id, supplier_id, manager_id, market_reference, start_date, warranty_end, maintenance_end,
	visit_frequency, response_time_hours, status, created_at, updated_at`

func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	query := `
		INSERT INTO contracts (supplier_id, manager_id, market_reference, start_date, warranty_end, maintenance_end,
			visit_frequency, response_time_hours, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.SupplierID, c.ManagerID, c.MarketReference, c.StartDate, c.WarrantyEnd, c.MaintenanceEnd,
		string(c.VisitFrequency), c.ResponseTimeHours, string(c.Status), c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return writeError("insert contract", err)
	}
	return nil
}

func (r *ContractRepo) GetByID(ctx context.Context, id int64) (*entity.Contract, error) {
	return r.findOne(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id)
}

func (r *ContractRepo) GetByMarketReference(ctx context.Context, reference string) (*entity.Contract, error) {
	return r.findOne(ctx, `SELECT `+contractColumns+` FROM contracts WHERE market_reference = $1`, reference)
}

// List aplica los filtros presentes; orden por ID.
func (r *ContractRepo) List(ctx context.Context, f repository.ContractFilter) ([]*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE 1=1`
	var args []any
	if f.Status != "" {
		args = append(args, string(f.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.ManagerID != 0 {
		args = append(args, f.ManagerID)
		query += fmt.Sprintf(" AND manager_id = $%d", len(args))
	}
	if f.SupplierID != 0 {
		args = append(args, f.SupplierID)
		query += fmt.Sprintf(" AND supplier_id = $%d", len(args))
	}
	if f.MaintenanceEndBefore != nil {
		args = append(args, entity.DateOf(*f.MaintenanceEndBefore))
		query += fmt.Sprintf(" AND maintenance_end <= $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return collectContracts(rows)
}

func (r *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	query := `
		UPDATE contracts
		SET supplier_id = $2, manager_id = $3, market_reference = $4, start_date = $5, warranty_end = $6,
			maintenance_end = $7, visit_frequency = $8, response_time_hours = $9, status = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.SupplierID, c.ManagerID, c.MarketReference, c.StartDate, c.WarrantyEnd, c.MaintenanceEnd,
		string(c.VisitFrequency), c.ResponseTimeHours, string(c.Status), c.UpdatedAt,
	)
	if err != nil {
		return writeError("update contract", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetEquipment borra las asociaciones actuales e inserta las nuevas en una sola pasada.
// Debe ejecutarse dentro de una transacción para que el reemplazo sea atómico.
func (r *ContractRepo) SetEquipment(ctx context.Context, contractID int64, equipmentIDs []int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM contract_equipment WHERE contract_id = $1`, contractID); err != nil {
		return fmt.Errorf("clear contract equipment: %w", err)
	}
	if len(equipmentIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO contract_equipment (contract_id, equipment_id)
		SELECT $1, UNNEST($2::bigint[])`
	if _, err := r.q.Exec(ctx, query, contractID, equipmentIDs); err != nil {
		return writeError("insert contract equipment", err)
	}
	return nil
}

func (r *ContractRepo) ListEquipment(ctx context.Context, contractID int64) ([]*entity.Equipment, error) {
	query := `
		SELECT e.id, e.name, e.type, e.description, e.serial_number, e.acquired_on, e.created_at, e.updated_at
		FROM equipment e
		JOIN contract_equipment ce ON ce.equipment_id = e.id
		WHERE ce.contract_id = $1
		ORDER BY e.id`
	rows, err := r.q.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("list contract equipment: %w", err)
	}
	return collectEquipment(rows)
}

func (r *ContractRepo) CountBySupplier(ctx context.Context, supplierID int64) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM contracts WHERE supplier_id = $1`, supplierID)
}

func (r *ContractRepo) CountByEquipment(ctx context.Context, equipmentID int64) (int, error) {
	return count(ctx, r.q, `SELECT COUNT(*) FROM contract_equipment WHERE equipment_id = $1`, equipmentID)
}

func (r *ContractRepo) findOne(ctx context.Context, query string, arg any) (*entity.Contract, error) {
	c, err := scanContract(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

func scanContract(row pgx.Row) (*entity.Contract, error) {
	var (
		c            entity.Contract
		freq, status string
	)
	err := row.Scan(&c.ID, &c.SupplierID, &c.ManagerID, &c.MarketReference, &c.StartDate, &c.WarrantyEnd,
		&c.MaintenanceEnd, &freq, &c.ResponseTimeHours, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.VisitFrequency = entity.VisitFrequency(freq)
	c.Status = entity.ContractStatus(status)
	return &c, nil
}

func collectContracts(rows pgx.Rows) ([]*entity.Contract, error) {
	defer rows.Close()
	var list []*entity.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func count(ctx context.Context, q Querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
