package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
	"github.com/jhoicas/contracts-api/pkg/logger"
)

// InterventionUseCase casos de uso para intervenciones en campo.
type InterventionUseCase struct {
	repo repository.InterventionRepository
	tx   repository.TxRunner
	log  *logger.Logger
}

// NewInterventionUseCase construye el caso de uso.
func NewInterventionUseCase(repo repository.InterventionRepository, tx repository.TxRunner, log *logger.Logger) *InterventionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InterventionUseCase{repo: repo, tx: tx, log: log.Named("interventions")}
}

// Create registra una intervención sobre un contrato existente.
func (uc *InterventionUseCase) Create(ctx context.Context, actor *entity.Identity, in dto.CreateInterventionRequest) (*dto.InterventionResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	it := &entity.Intervention{
		ContractID:  in.ContractID,
		EquipmentID: optionalID(in.EquipmentID),
		Type:        entity.InterventionType(in.Type),
		Description: strings.TrimSpace(in.Description),
		Status:      entity.InterventionInProgress,
	}
	if in.Status != "" {
		it.Status = entity.InterventionStatus(in.Status)
	}
	var err error
	if it.IntervenedAt, err = parseTimestamp("intervened_at", in.IntervenedAt); err != nil {
		return nil, err
	}
	if it.PlannedPreventiveOn, err = parseOptionalDate("planned_preventive_on", in.PlannedPreventiveOn); err != nil {
		return nil, err
	}
	if err := validateIntervention(it); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	it.CreatedAt, it.UpdatedAt = now, now

	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := checkInterventionRefs(ctx, r, it); err != nil {
			return err
		}
		return r.Interventions.Create(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("intervention_id", it.ID).Int64("contract_id", it.ContractID).
		Int64("actor_id", actorID(actor)).Msg("intervención registrada")
	return ToInterventionResponse(it), nil
}

// GetByID obtiene una intervención; domain.ErrNotFound si no existe.
func (uc *InterventionUseCase) GetByID(ctx context.Context, id int64) (*dto.InterventionResponse, error) {
	it, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	return ToInterventionResponse(it), nil
}

// List lista intervenciones por fecha descendente. from/to son inclusivos; una fecha
// sin hora en to cubre el día completo.
func (uc *InterventionUseCase) List(ctx context.Context, q dto.InterventionQuery) (*dto.ListResponse[dto.InterventionResponse], error) {
	f := repository.InterventionFilter{ContractID: q.ContractID}
	if q.Status != "" {
		st := entity.InterventionStatus(q.Status)
		if !st.Valid() {
			return nil, domain.NewValidationError("status", "valor desconocido")
		}
		f.Status = st
	}
	if q.From != "" {
		from, err := parseTimestamp("from", q.From)
		if err != nil {
			return nil, err
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := parseTimestamp("to", q.To)
		if err != nil {
			return nil, err
		}
		if to.Equal(entity.DateOf(to)) && !strings.Contains(q.To, "T") {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &to
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, ToInterventionResponse)), nil
}

// Update fusiona los campos enviados. equipment_id = 0 desasocia el equipo.
func (uc *InterventionUseCase) Update(ctx context.Context, actor *entity.Identity, id int64, in dto.UpdateInterventionRequest) (*dto.InterventionResponse, error) {
	var it *entity.Intervention
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		it, err = r.Interventions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrNotFound
		}
		if in.EquipmentID != nil {
			it.EquipmentID = optionalID(in.EquipmentID)
		}
		if in.Type != nil {
			it.Type = entity.InterventionType(*in.Type)
		}
		if in.Description != nil {
			it.Description = strings.TrimSpace(*in.Description)
		}
		if in.IntervenedAt != nil {
			if it.IntervenedAt, err = parseTimestamp("intervened_at", *in.IntervenedAt); err != nil {
				return err
			}
		}
		if in.PlannedPreventiveOn != nil {
			if it.PlannedPreventiveOn, err = parseOptionalDate("planned_preventive_on", *in.PlannedPreventiveOn); err != nil {
				return err
			}
		}
		if in.Status != nil {
			it.Status = entity.InterventionStatus(*in.Status)
		}
		if err := validateIntervention(it); err != nil {
			return err
		}
		if err := checkInterventionRefs(ctx, r, it); err != nil {
			return err
		}
		it.UpdatedAt = time.Now().UTC()
		return r.Interventions.Update(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("intervention_id", id).Int64("actor_id", actorID(actor)).Msg("intervención actualizada")
	return ToInterventionResponse(it), nil
}

func validateIntervention(it *entity.Intervention) error {
	if !it.Type.Valid() {
		return domain.NewValidationError("type", "debe ser preventive o corrective")
	}
	if !it.Status.Valid() {
		return domain.NewValidationError("status", "valor desconocido")
	}
	if it.Description == "" {
		return domain.NewValidationError("description", "es requerido")
	}
	return nil
}

func checkInterventionRefs(ctx context.Context, r repository.Repos, it *entity.Intervention) error {
	contract, err := r.Contracts.GetByID(ctx, it.ContractID)
	if err != nil {
		return err
	}
	if contract == nil {
		return fmt.Errorf("contract_id %d: %w", it.ContractID, domain.ErrNotFound)
	}
	if it.EquipmentID == nil {
		return nil
	}
	eq, err := r.Equipment.GetByID(ctx, *it.EquipmentID)
	if err != nil {
		return err
	}
	if eq == nil {
		return fmt.Errorf("equipment_id %d: %w", *it.EquipmentID, domain.ErrNotFound)
	}
	return nil
}
