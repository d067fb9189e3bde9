package repository

import (
	"context"
	"time"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// DashboardFilter acota las consultas del dashboard. ManagerID = 0 significa sin restricción.
type DashboardFilter struct {
	ManagerID int64
}

// DashboardRepository consultas de solo lectura para los tableros por rol.
type DashboardRepository interface {
	CountContracts(ctx context.Context, f DashboardFilter, status entity.ContractStatus) (int, error)
	CountEquipment(ctx context.Context, f DashboardFilter) (int, error)
	CountInterventions(ctx context.Context, f DashboardFilter, status entity.InterventionStatus) (int, error)
	// RecentInterventions las últimas `limit` por IntervenedAt descendente.
	RecentInterventions(ctx context.Context, f DashboardFilter, limit int) ([]*entity.Intervention, error)
	// ExpiringContracts contratos con MaintenanceEnd <= until, por MaintenanceEnd ascendente.
	ExpiringContracts(ctx context.Context, f DashboardFilter, until time.Time) ([]*entity.Contract, error)
}
