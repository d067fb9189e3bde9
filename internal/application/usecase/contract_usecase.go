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

// ContractQuery filtros de GET /api/contracts.
type ContractQuery struct {
	Status     string
	SupplierID int64
	Expiring   bool
}

// ContractUseCase casos de uso para contratos y su conjunto de equipos.
type ContractUseCase struct {
	repo repository.ContractRepository
	tx   repository.TxRunner
	log  *logger.Logger
	now  func() time.Time
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(repo repository.ContractRepository, tx repository.TxRunner, log *logger.Logger) *ContractUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ContractUseCase{repo: repo, tx: tx, log: log.Named("contracts"), now: time.Now}
}

// Create crea el contrato y sus filas contract_equipment en una sola transacción.
// El gestor por defecto es quien crea el contrato.
func (uc *ContractUseCase) Create(ctx context.Context, actor *entity.Identity, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	warranty, err := parseDate("warranty_end", in.WarrantyEnd)
	if err != nil {
		return nil, err
	}
	maintenance, err := parseDate("maintenance_end", in.MaintenanceEnd)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	contract := &entity.Contract{
		SupplierID:        in.SupplierID,
		ManagerID:         actorID(actor),
		MarketReference:   strings.TrimSpace(in.MarketReference),
		StartDate:         start,
		WarrantyEnd:       warranty,
		MaintenanceEnd:    maintenance,
		VisitFrequency:    entity.FrequencyQuarterly,
		ResponseTimeHours: entity.DefaultResponseTimeHours,
		Status:            entity.ContractActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.ManagerID != nil && *in.ManagerID != 0 {
		contract.ManagerID = *in.ManagerID
	}
	if in.VisitFrequency != "" {
		contract.VisitFrequency = entity.VisitFrequency(in.VisitFrequency)
	}
	if in.ResponseTimeHours != nil {
		contract.ResponseTimeHours = *in.ResponseTimeHours
	}
	if in.Status != "" {
		contract.Status = entity.ContractStatus(in.Status)
	}
	if err := contract.Validate(); err != nil {
		return nil, err
	}
	if contract.ManagerID == 0 {
		return nil, domain.NewValidationError("manager_id", "es requerido")
	}
	equipmentIDs := dedupeIDs(in.EquipmentIDs)

	var equipment []*entity.Equipment
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := checkContractRefs(ctx, r, contract, 0); err != nil {
			return err
		}
		if err := checkEquipmentExists(ctx, r, equipmentIDs); err != nil {
			return err
		}
		if err := r.Contracts.Create(ctx, contract); err != nil {
			return err
		}
		if err := r.Contracts.SetEquipment(ctx, contract.ID, equipmentIDs); err != nil {
			return err
		}
		equipment, err = r.Contracts.ListEquipment(ctx, contract.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("contract_id", contract.ID).Int64("actor_id", actorID(actor)).
		Int("equipment", len(equipmentIDs)).Msg("contrato creado")
	return uc.toDetail(contract, equipment), nil
}

// GetByID devuelve el contrato con sus equipos.
func (uc *ContractUseCase) GetByID(ctx context.Context, id int64) (*dto.ContractResponse, error) {
	contract, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}
	equipment, err := uc.repo.ListEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toDetail(contract, equipment), nil
}

// List lista contratos. Expiring limita a fin de mantenimiento <= hoy+30 días.
func (uc *ContractUseCase) List(ctx context.Context, q ContractQuery) (*dto.ListResponse[dto.ContractResponse], error) {
	filter, err := uc.filter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	items := make([]dto.ContractResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToContractResponse(c, now))
	}
	return dto.NewListResponse(items), nil
}

// ListEntities como List pero sin mapear (exportaciones).
func (uc *ContractUseCase) ListEntities(ctx context.Context, q ContractQuery) ([]*entity.Contract, error) {
	filter, err := uc.filter(q)
	if err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, filter)
}

func (uc *ContractUseCase) filter(q ContractQuery) (repository.ContractFilter, error) {
	var f repository.ContractFilter
	if q.Status != "" {
		st := entity.ContractStatus(q.Status)
		if !st.Valid() {
			return f, domain.NewValidationError("status", "valor desconocido")
		}
		f.Status = st
	}
	f.SupplierID = q.SupplierID
	if q.Expiring {
		cutoff := entity.ExpiryCutoff(uc.now())
		f.MaintenanceEndBefore = &cutoff
	}
	return f, nil
}

// ListEquipment equipos del contrato ordenados por ID.
func (uc *ContractUseCase) ListEquipment(ctx context.Context, id int64) (*dto.ListResponse[dto.EquipmentResponse], error) {
	contract, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, ToEquipmentResponse)), nil
}

// Update fusiona los campos enviados; si llega equipment_ids reemplaza el conjunto completo.
func (uc *ContractUseCase) Update(ctx context.Context, actor *entity.Identity, id int64, in dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	var (
		contract  *entity.Contract
		equipment []*entity.Equipment
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		contract, err = r.Contracts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if contract == nil {
			return domain.ErrNotFound
		}
		if err := mergeContract(contract, in); err != nil {
			return err
		}
		if err := contract.Validate(); err != nil {
			return err
		}
		if err := checkContractRefs(ctx, r, contract, id); err != nil {
			return err
		}
		contract.UpdatedAt = uc.now().UTC()
		if err := r.Contracts.Update(ctx, contract); err != nil {
			return err
		}
		if in.EquipmentIDs != nil {
			ids := dedupeIDs(*in.EquipmentIDs)
			if err := checkEquipmentExists(ctx, r, ids); err != nil {
				return err
			}
			if err := r.Contracts.SetEquipment(ctx, id, ids); err != nil {
				return err
			}
		}
		equipment, err = r.Contracts.ListEquipment(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("contract_id", id).Int64("actor_id", actorID(actor)).Msg("contrato actualizado")
	return uc.toDetail(contract, equipment), nil
}

func mergeContract(c *entity.Contract, in dto.UpdateContractRequest) error {
	if in.SupplierID != nil {
		c.SupplierID = *in.SupplierID
	}
	if in.ManagerID != nil {
		c.ManagerID = *in.ManagerID
	}
	if in.MarketReference != nil {
		c.MarketReference = strings.TrimSpace(*in.MarketReference)
	}
	for _, d := range []struct {
		field string
		in    *string
		out   *time.Time
	}{
		{"start_date", in.StartDate, &c.StartDate},
		{"warranty_end", in.WarrantyEnd, &c.WarrantyEnd},
		{"maintenance_end", in.MaintenanceEnd, &c.MaintenanceEnd},
	} {
		if d.in == nil {
			continue
		}
		t, err := parseDate(d.field, *d.in)
		if err != nil {
			return err
		}
		*d.out = t
	}
	if in.VisitFrequency != nil {
		c.VisitFrequency = entity.VisitFrequency(*in.VisitFrequency)
	}
	if in.ResponseTimeHours != nil {
		c.ResponseTimeHours = *in.ResponseTimeHours
	}
	if in.Status != nil {
		c.Status = entity.ContractStatus(*in.Status)
	}
	return nil
}

// checkContractRefs proveedor y gestor existentes y referencia de mercado única.
func checkContractRefs(ctx context.Context, r repository.Repos, c *entity.Contract, self int64) error {
	supplier, err := r.Suppliers.GetByID(ctx, c.SupplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return fmt.Errorf("supplier_id %d: %w", c.SupplierID, domain.ErrNotFound)
	}
	manager, err := r.Users.GetByID(ctx, c.ManagerID)
	if err != nil {
		return err
	}
	if manager == nil {
		return fmt.Errorf("manager_id %d: %w", c.ManagerID, domain.ErrNotFound)
	}
	existing, err := r.Contracts.GetByMarketReference(ctx, c.MarketReference)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return domain.NewDuplicateError("market_reference")
	}
	return nil
}

func checkEquipmentExists(ctx context.Context, r repository.Repos, ids []int64) error {
	for _, id := range ids {
		eq, err := r.Equipment.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if eq == nil {
			return fmt.Errorf("equipment_id %d: %w", id, domain.ErrNotFound)
		}
	}
	return nil
}

// dedupeIDs conserva el primer orden de aparición.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (uc *ContractUseCase) toDetail(c *entity.Contract, equipment []*entity.Equipment) *dto.ContractResponse {
	res := ToContractResponse(c, uc.now())
	res.Equipment = mapList(equipment, ToEquipmentResponse)
	return res
}
