// Package analytics contiene el caso de uso de los tableros por rol.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/application/usecase"
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

const dashboardRecentInterventions = 5 // intervenciones en el widget "recientes"

// Scope quién pide el tablero y para qué rol.
type Scope struct {
	Role   entity.Role
	UserID int64
}

// DashboardUseCase construye el resumen de cada tablero.
//
// Fuente de datos: DashboardRepository (consultas read-only). No escribe nada,
// dos llamadas con el mismo estado y el mismo día devuelven el mismo resumen.
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// scopeFilter traduce el alcance al filtro de consultas. Hoy los tres roles ven
// los mismos datos; una restricción por gestor se aplicaría aquí.
func scopeFilter(_ Scope) repository.DashboardFilter {
	return repository.DashboardFilter{}
}

// ComputeSummary construye el DashboardSummaryDTO para el alcance indicado.
//
// Las consultas se lanzan en paralelo:
//  1. contratos totales y activos
//  2. equipos totales
//  3. intervenciones en curso
//  4. las 5 intervenciones más recientes
//  5. contratos con fin de mantenimiento <= hoy+30
func (uc *DashboardUseCase) ComputeSummary(ctx context.Context, scope Scope) (*dto.DashboardSummaryDTO, error) {
	if !scope.Role.Valid() {
		return nil, domain.ErrUnknownRole
	}
	now := uc.now()
	filter := scopeFilter(scope)
	cutoff := entity.ExpiryCutoff(now)

	type countResult struct {
		n   int
		err error
	}
	type interventionsResult struct {
		list []*entity.Intervention
		err  error
	}
	type contractsResult struct {
		list []*entity.Contract
		err  error
	}

	totalCh := make(chan countResult, 1)
	activeCh := make(chan countResult, 1)
	equipmentCh := make(chan countResult, 1)
	pendingCh := make(chan countResult, 1)
	recentCh := make(chan interventionsResult, 1)
	expiringCh := make(chan contractsResult, 1)

	go func() {
		n, err := uc.repo.CountContracts(ctx, filter, "")
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountContracts(ctx, filter, entity.ContractActive)
		activeCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountEquipment(ctx, filter)
		equipmentCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountInterventions(ctx, filter, entity.InterventionInProgress)
		pendingCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.repo.RecentInterventions(ctx, filter, dashboardRecentInterventions)
		recentCh <- interventionsResult{list, err}
	}()
	go func() {
		list, err := uc.repo.ExpiringContracts(ctx, filter, cutoff)
		expiringCh <- contractsResult{list, err}
	}()

	total, active, equipment, pending := <-totalCh, <-activeCh, <-equipmentCh, <-pendingCh
	recent, expiring := <-recentCh, <-expiringCh

	for _, r := range []struct {
		name string
		err  error
	}{
		{"total_contracts", total.err},
		{"active_contracts", active.err},
		{"total_equipment", equipment.err},
		{"pending_interventions", pending.err},
		{"recent_interventions", recent.err},
		{"expiring_contracts", expiring.err},
	} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", r.name, r.err)
		}
	}

	out := &dto.DashboardSummaryDTO{
		Role:                 string(scope.Role),
		AsOf:                 entity.DateOf(now).Format(entity.DateLayout),
		TotalContracts:       total.n,
		ActiveContracts:      active.n,
		TotalEquipment:       equipment.n,
		PendingInterventions: pending.n,
		RecentInterventions:  make([]dto.InterventionResponse, 0, len(recent.list)),
		ExpiringContracts:    make([]dto.ContractResponse, 0, len(expiring.list)),
	}
	for _, it := range recent.list {
		out.RecentInterventions = append(out.RecentInterventions, *usecase.ToInterventionResponse(it))
	}
	for _, c := range expiring.list {
		out.ExpiringContracts = append(out.ExpiringContracts, *usecase.ToContractResponse(c, now))
	}
	return out, nil
}
