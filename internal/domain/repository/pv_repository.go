package repository

import (
	"context"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// PVFilter filtros opcionales para actas.
type PVFilter struct {
	ContractID     int64
	InterventionID int64
}

// PVRepository define el puerto de persistencia para PV.
type PVRepository interface {
	Create(ctx context.Context, pv *entity.PV) error
	GetByID(ctx context.Context, id int64) (*entity.PV, error)
	List(ctx context.Context, filter PVFilter) ([]*entity.PV, error)
	Update(ctx context.Context, pv *entity.PV) error
}
