package usecase

import (
	"time"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// ToUserResponse mapea un usuario sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		RoleLabel: u.Role.Label(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToSupplierResponse mapea un proveedor.
func ToSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToEquipmentResponse mapea un equipo.
func ToEquipmentResponse(e *entity.Equipment) *dto.EquipmentResponse {
	if e == nil {
		return nil
	}
	return &dto.EquipmentResponse{
		ID:           e.ID,
		Name:         e.Name,
		Type:         string(e.Type),
		Description:  e.Description,
		SerialNumber: e.SerialNumber,
		AcquiredOn:   formatOptionalDate(e.AcquiredOn),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ToContractResponse mapea un contrato; now fija el cálculo de "por vencer".
func ToContractResponse(c *entity.Contract, now time.Time) *dto.ContractResponse {
	if c == nil {
		return nil
	}
	return &dto.ContractResponse{
		ID:                c.ID,
		SupplierID:        c.SupplierID,
		ManagerID:         c.ManagerID,
		MarketReference:   c.MarketReference,
		StartDate:         formatDate(c.StartDate),
		WarrantyEnd:       formatDate(c.WarrantyEnd),
		MaintenanceEnd:    formatDate(c.MaintenanceEnd),
		VisitFrequency:    string(c.VisitFrequency),
		ResponseTimeHours: c.ResponseTimeHours,
		Status:            string(c.Status),
		ExpiringSoon:      c.IsExpiringSoon(now),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ToInterventionResponse mapea una intervención.
func ToInterventionResponse(i *entity.Intervention) *dto.InterventionResponse {
	if i == nil {
		return nil
	}
	return &dto.InterventionResponse{
		ID:                  i.ID,
		ContractID:          i.ContractID,
		EquipmentID:         i.EquipmentID,
		Type:                string(i.Type),
		Description:         i.Description,
		IntervenedAt:        i.IntervenedAt,
		PlannedPreventiveOn: formatOptionalDate(i.PlannedPreventiveOn),
		Status:              string(i.Status),
		CreatedAt:           i.CreatedAt,
		UpdatedAt:           i.UpdatedAt,
	}
}

// ToPVResponse mapea un acta.
func ToPVResponse(p *entity.PV) *dto.PVResponse {
	if p == nil {
		return nil
	}
	return &dto.PVResponse{
		ID:             p.ID,
		ContractID:     p.ContractID,
		InterventionID: p.InterventionID,
		Type:           p.Type,
		SignedOn:       formatDate(p.SignedOn),
		Reservations:   p.Reservations,
		DocumentPath:   p.DocumentPath,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func mapList[E any, R any](list []*E, fn func(*E) *R) []R {
	out := make([]R, 0, len(list))
	for _, e := range list {
		out = append(out, *fn(e))
	}
	return out
}
