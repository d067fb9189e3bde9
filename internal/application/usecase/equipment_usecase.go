package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
	"github.com/jhoicas/contracts-api/pkg/logger"
)

// EquipmentUseCase casos de uso CRUD para equipos.
type EquipmentUseCase struct {
	repo repository.EquipmentRepository
	tx   repository.TxRunner
	log  *logger.Logger
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository, tx repository.TxRunner, log *logger.Logger) *EquipmentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &EquipmentUseCase{repo: repo, tx: tx, log: log.Named("equipment")}
}

// Types catálogo de tipos de equipo.
func (uc *EquipmentUseCase) Types() []string {
	types := entity.EquipmentTypes()
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

// Create crea un equipo.
func (uc *EquipmentUseCase) Create(ctx context.Context, actor *entity.Identity, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	eqType := entity.EquipmentType(in.Type)
	if !eqType.Valid() {
		return nil, domain.NewValidationError("type", "tipo de equipo desconocido")
	}
	acquired, err := parseOptionalDate("acquired_on", in.AcquiredOn)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	eq := &entity.Equipment{
		Name:         strings.TrimSpace(in.Name),
		Type:         eqType,
		Description:  in.Description,
		SerialNumber: strings.TrimSpace(in.SerialNumber),
		AcquiredOn:   acquired,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if eq.Name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if err := uc.repo.Create(ctx, eq); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("equipment_id", eq.ID).Int64("actor_id", actorID(actor)).Msg("equipo creado")
	return ToEquipmentResponse(eq), nil
}

// GetByID obtiene un equipo; domain.ErrNotFound si no existe.
func (uc *EquipmentUseCase) GetByID(ctx context.Context, id int64) (*dto.EquipmentResponse, error) {
	eq, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}
	return ToEquipmentResponse(eq), nil
}

// List lista todos los equipos.
func (uc *EquipmentUseCase) List(ctx context.Context) (*dto.ListResponse[dto.EquipmentResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, ToEquipmentResponse)), nil
}

// Update fusiona los campos enviados.
func (uc *EquipmentUseCase) Update(ctx context.Context, actor *entity.Identity, id int64, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	eq, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "es requerido")
		}
		eq.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		t := entity.EquipmentType(*in.Type)
		if !t.Valid() {
			return nil, domain.NewValidationError("type", "tipo de equipo desconocido")
		}
		eq.Type = t
	}
	if in.Description != nil {
		eq.Description = *in.Description
	}
	if in.SerialNumber != nil {
		eq.SerialNumber = strings.TrimSpace(*in.SerialNumber)
	}
	if in.AcquiredOn != nil {
		acquired, err := parseOptionalDate("acquired_on", *in.AcquiredOn)
		if err != nil {
			return nil, err
		}
		eq.AcquiredOn = acquired
	}
	eq.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, eq); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("equipment_id", id).Int64("actor_id", actorID(actor)).Msg("equipo actualizado")
	return ToEquipmentResponse(eq), nil
}

// Delete elimina un equipo que no esté asociado a contratos ni a intervenciones.
func (uc *EquipmentUseCase) Delete(ctx context.Context, actor *entity.Identity, id int64) error {
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		eq, err := r.Equipment.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if eq == nil {
			return domain.ErrNotFound
		}
		n, err := r.Contracts.CountByEquipment(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrReferentialConflict
		}
		n, err = r.Interventions.CountByEquipment(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrReferentialConflict
		}
		return r.Equipment.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("equipment_id", id).Int64("actor_id", actorID(actor)).Msg("equipo eliminado")
	return nil
}
