package repository

import (
	"context"
	"time"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// ContractFilter filtros opcionales para listar contratos (valores cero = sin filtro).
type ContractFilter struct {
	Status               entity.ContractStatus
	ManagerID            int64
	SupplierID           int64
	MaintenanceEndBefore *time.Time // inclusivo
}

// ContractRepository define el puerto de persistencia para Contract y su relación con Equipment.
type ContractRepository interface {
	Create(ctx context.Context, contract *entity.Contract) error
	GetByID(ctx context.Context, id int64) (*entity.Contract, error)
	GetByMarketReference(ctx context.Context, reference string) (*entity.Contract, error)
	List(ctx context.Context, filter ContractFilter) ([]*entity.Contract, error)
	Update(ctx context.Context, contract *entity.Contract) error
	// SetEquipment reemplaza las filas de contract_equipment del contrato.
	SetEquipment(ctx context.Context, contractID int64, equipmentIDs []int64) error
	// ListEquipment devuelve los equipos del contrato ordenados por ID.
	ListEquipment(ctx context.Context, contractID int64) ([]*entity.Equipment, error)
	CountBySupplier(ctx context.Context, supplierID int64) (int, error)
	CountByEquipment(ctx context.Context, equipmentID int64) (int, error)
}
