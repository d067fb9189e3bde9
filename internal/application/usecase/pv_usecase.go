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

// PVUseCase casos de uso para actas (procès-verbaux) de contratos e intervenciones.
type PVUseCase struct {
	repo repository.PVRepository
	tx   repository.TxRunner
	log  *logger.Logger
}

// NewPVUseCase construye el caso de uso.
func NewPVUseCase(repo repository.PVRepository, tx repository.TxRunner, log *logger.Logger) *PVUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PVUseCase{repo: repo, tx: tx, log: log.Named("pvs")}
}

// Create registra y persiste un acta.
func (uc *PVUseCase) Create(ctx context.Context, actor *entity.Identity, in dto.CreatePVRequest) (*dto.PVResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	signed, err := parseDate("signed_on", in.SignedOn)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	pv := &entity.PV{
		ContractID:     in.ContractID,
		InterventionID: optionalID(in.InterventionID),
		Type:           strings.TrimSpace(in.Type),
		SignedOn:       signed,
		Reservations:   in.Reservations,
		DocumentPath:   strings.TrimSpace(in.DocumentPath),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if pv.Type == "" {
		return nil, domain.NewValidationError("type", "es requerido")
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := checkPVRefs(ctx, r, pv); err != nil {
			return err
		}
		return r.PVs.Create(ctx, pv)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("pv_id", pv.ID).Int64("contract_id", pv.ContractID).
		Int64("actor_id", actorID(actor)).Msg("acta registrada")
	return ToPVResponse(pv), nil
}

// GetByID obtiene un acta; domain.ErrNotFound si no existe.
func (uc *PVUseCase) GetByID(ctx context.Context, id int64) (*dto.PVResponse, error) {
	pv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pv == nil {
		return nil, domain.ErrNotFound
	}
	return ToPVResponse(pv), nil
}

// List lista actas, opcionalmente de un contrato.
func (uc *PVUseCase) List(ctx context.Context, contractID int64) (*dto.ListResponse[dto.PVResponse], error) {
	list, err := uc.repo.List(ctx, repository.PVFilter{ContractID: contractID})
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, ToPVResponse)), nil
}

// Update fusiona los campos enviados. intervention_id = 0 desasocia la intervención.
func (uc *PVUseCase) Update(ctx context.Context, actor *entity.Identity, id int64, in dto.UpdatePVRequest) (*dto.PVResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	var pv *entity.PV
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		pv, err = r.PVs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if pv == nil {
			return domain.ErrNotFound
		}
		if in.InterventionID != nil {
			pv.InterventionID = optionalID(in.InterventionID)
		}
		if in.Type != nil {
			if strings.TrimSpace(*in.Type) == "" {
				return domain.NewValidationError("type", "es requerido")
			}
			pv.Type = strings.TrimSpace(*in.Type)
		}
		if in.SignedOn != nil {
			if pv.SignedOn, err = parseDate("signed_on", *in.SignedOn); err != nil {
				return err
			}
		}
		if in.Reservations != nil {
			pv.Reservations = *in.Reservations
		}
		if in.DocumentPath != nil {
			pv.DocumentPath = strings.TrimSpace(*in.DocumentPath)
		}
		if err := checkPVRefs(ctx, r, pv); err != nil {
			return err
		}
		pv.UpdatedAt = time.Now().UTC()
		return r.PVs.Update(ctx, pv)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("pv_id", id).Int64("actor_id", actorID(actor)).Msg("acta actualizada")
	return ToPVResponse(pv), nil
}

// checkPVRefs contrato existente y, si hay intervención, que pertenezca al mismo contrato.
func checkPVRefs(ctx context.Context, r repository.Repos, pv *entity.PV) error {
	contract, err := r.Contracts.GetByID(ctx, pv.ContractID)
	if err != nil {
		return err
	}
	if contract == nil {
		return fmt.Errorf("contract_id %d: %w", pv.ContractID, domain.ErrNotFound)
	}
	if pv.InterventionID == nil {
		return nil
	}
	it, err := r.Interventions.GetByID(ctx, *pv.InterventionID)
	if err != nil {
		return err
	}
	if it == nil {
		return fmt.Errorf("intervention_id %d: %w", *pv.InterventionID, domain.ErrNotFound)
	}
	if it.ContractID != pv.ContractID {
		return domain.NewValidationError("intervention_id", "la intervención no pertenece al contrato")
	}
	return nil
}
