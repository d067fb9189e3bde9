package repository

import (
	"context"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// EquipmentRepository define el puerto de persistencia para Equipment.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *entity.Equipment) error
	GetByID(ctx context.Context, id int64) (*entity.Equipment, error)
	List(ctx context.Context) ([]*entity.Equipment, error)
	Update(ctx context.Context, equipment *entity.Equipment) error
	// Delete devuelve domain.ErrReferentialConflict si está asociado a contratos o intervenciones.
	Delete(ctx context.Context, id int64) error
}
