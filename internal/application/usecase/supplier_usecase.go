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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	tx   repository.TxRunner
	log  *logger.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, tx repository.TxRunner, log *logger.Logger) *SupplierUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplierUseCase{repo: repo, tx: tx, log: log.Named("suppliers")}
}

// Create crea un proveedor con los campos tal como llegan (sin normalizar).
func (uc *SupplierUseCase) Create(ctx context.Context, actor *entity.Identity, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	supplier := &entity.Supplier{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if strings.TrimSpace(supplier.Name) == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("supplier_id", supplier.ID).Int64("actor_id", actorID(actor)).Msg("proveedor creado")
	return ToSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor; domain.ErrNotFound si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return ToSupplierResponse(supplier), nil
}

// List lista todos los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) (*dto.ListResponse[dto.SupplierResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, ToSupplierResponse)), nil
}

// Update fusiona los campos enviados. Los valores se guardan tal como llegan.
func (uc *SupplierUseCase) Update(ctx context.Context, actor *entity.Identity, id int64, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "es requerido")
		}
		supplier.Name = *in.Name
	}
	if in.Email != nil {
		if err := validateEmail("email", *in.Email); err != nil {
			return nil, err
		}
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	supplier.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("supplier_id", id).Int64("actor_id", actorID(actor)).Msg("proveedor actualizado")
	return ToSupplierResponse(supplier), nil
}

// Delete elimina un proveedor sin contratos. Con contratos asociados devuelve
// domain.ErrReferentialConflict y no modifica nada.
func (uc *SupplierUseCase) Delete(ctx context.Context, actor *entity.Identity, id int64) error {
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		supplier, err := r.Suppliers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		n, err := r.Contracts.CountBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrReferentialConflict
		}
		return r.Suppliers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("supplier_id", id).Int64("actor_id", actorID(actor)).Msg("proveedor eliminado")
	return nil
}
