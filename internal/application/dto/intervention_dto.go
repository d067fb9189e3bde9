package dto

import "time"

// CreateInterventionRequest entrada para registrar una intervención.
// IntervenedAt en RFC 3339 (o YYYY-MM-DD); PlannedPreventiveOn en YYYY-MM-DD.
type CreateInterventionRequest struct {
	ContractID          int64  `json:"contract_id" validate:"required"`
	EquipmentID         *int64 `json:"equipment_id"`
	Type                string `json:"type" validate:"required"`
	Description         string `json:"description" validate:"required"`
	IntervenedAt        string `json:"intervened_at" validate:"required"`
	PlannedPreventiveOn string `json:"planned_preventive_on"`
	Status              string `json:"status"`
}

// UpdateInterventionRequest campos a fusionar. EquipmentID = 0 desasocia el equipo.
type UpdateInterventionRequest struct {
	EquipmentID         *int64  `json:"equipment_id"`
	Type                *string `json:"type"`
	Description         *string `json:"description"`
	IntervenedAt        *string `json:"intervened_at"`
	PlannedPreventiveOn *string `json:"planned_preventive_on"`
	Status              *string `json:"status"`
}

// InterventionResponse salida de una intervención.
type InterventionResponse struct {
	ID                  int64     `json:"id"`
	ContractID          int64     `json:"contract_id"`
	EquipmentID         *int64    `json:"equipment_id,omitempty"`
	Type                string    `json:"type"`
	Description         string    `json:"description"`
	IntervenedAt        time.Time `json:"intervened_at"`
	PlannedPreventiveOn *string   `json:"planned_preventive_on,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// InterventionQuery filtros de GET /api/interventions.
type InterventionQuery struct {
	ContractID int64  `query:"contract_id"`
	Status     string `query:"status"`
	From       string `query:"from"`
	To         string `query:"to"`
}
