package repository

import (
	"context"
	"time"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// InterventionFilter filtros opcionales; From/To acotan IntervenedAt (inclusivos).
type InterventionFilter struct {
	ContractID int64
	Status     entity.InterventionStatus
	From       *time.Time
	To         *time.Time
}

// InterventionRepository define el puerto de persistencia para Intervention.
// List ordena por IntervenedAt descendente.
type InterventionRepository interface {
	Create(ctx context.Context, intervention *entity.Intervention) error
	GetByID(ctx context.Context, id int64) (*entity.Intervention, error)
	List(ctx context.Context, filter InterventionFilter) ([]*entity.Intervention, error)
	Update(ctx context.Context, intervention *entity.Intervention) error
	CountByEquipment(ctx context.Context, equipmentID int64) (int, error)
}
