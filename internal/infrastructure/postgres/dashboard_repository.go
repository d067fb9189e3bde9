package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para los tableros.
// Va sobre el pool: ComputeSummary lanza las consultas en paralelo y una tx no admite uso concurrente.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// ManagerID = 0 desactiva el filtro; $1 siempre es el gestor.
const managerScope = `($1::bigint = 0 OR c.manager_id = $1)`

// CountContracts cuenta contratos; status vacío = todos.
func (r *DashboardRepo) CountContracts(ctx context.Context, f repository.DashboardFilter, status entity.ContractStatus) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM contracts c
	WHERE ` + managerScope + `
	  AND ($2::text = '' OR c.status = $2)`
	return count(ctx, r.pool, query, f.ManagerID, string(status))
}

// CountEquipment con alcance cuenta solo equipos asociados a contratos del gestor.
func (r *DashboardRepo) CountEquipment(ctx context.Context, f repository.DashboardFilter) (int, error) {
	if f.ManagerID == 0 {
		return count(ctx, r.pool, `SELECT COUNT(*) FROM equipment`)
	}
	const query = `
	SELECT COUNT(DISTINCT ce.equipment_id)
	FROM contract_equipment ce
	JOIN contracts c ON c.id = ce.contract_id
	WHERE ` + managerScope
	return count(ctx, r.pool, query, f.ManagerID)
}

func (r *DashboardRepo) CountInterventions(ctx context.Context, f repository.DashboardFilter, status entity.InterventionStatus) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM interventions i
	JOIN contracts c ON c.id = i.contract_id
	WHERE ` + managerScope + `
	  AND ($2::text = '' OR i.status = $2)`
	return count(ctx, r.pool, query, f.ManagerID, string(status))
}

func (r *DashboardRepo) RecentInterventions(ctx context.Context, f repository.DashboardFilter, limit int) ([]*entity.Intervention, error) {
	const query = `
	SELECT i.id, i.contract_id, i.equipment_id, i.type, i.description, i.intervened_at,
	       i.planned_preventive_on, i.status, i.created_at, i.updated_at
	FROM interventions i
	JOIN contracts c ON c.id = i.contract_id
	WHERE ` + managerScope + `
	ORDER BY i.intervened_at DESC, i.id DESC
	LIMIT $2`
	rows, err := r.pool.Query(ctx, query, f.ManagerID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent interventions: %w", err)
	}
	return collectInterventions(rows)
}

// ExpiringContracts incluye los ya vencidos; ordena por fin de mantenimiento.
func (r *DashboardRepo) ExpiringContracts(ctx context.Context, f repository.DashboardFilter, until time.Time) ([]*entity.Contract, error) {
	const query = `
	SELECT c.id, c.supplier_id, c.manager_id, c.market_reference, c.start_date, c.warranty_end,
	       c.maintenance_end, c.visit_frequency, c.response_time_hours, c.status, c.created_at, c.updated_at
	FROM contracts c
	WHERE ` + managerScope + `
	  AND c.maintenance_end <= $2
	ORDER BY c.maintenance_end ASC, c.id ASC`
	rows, err := r.pool.Query(ctx, query, f.ManagerID, entity.DateOf(until))
	if err != nil {
		return nil, fmt.Errorf("expiring contracts: %w", err)
	}
	return collectContracts(rows)
}
