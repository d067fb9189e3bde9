package dto

import "time"

// CreatePVRequest entrada para registrar un acta. SignedOn en YYYY-MM-DD.
type CreatePVRequest struct {
	ContractID     int64  `json:"contract_id" validate:"required"`
	InterventionID *int64 `json:"intervention_id"`
	Type           string `json:"type" validate:"required,max=50"`
	SignedOn       string `json:"signed_on" validate:"required"`
	Reservations   string `json:"reservations"`
	DocumentPath   string `json:"document_path" validate:"max=255"`
}

// UpdatePVRequest campos a fusionar. InterventionID = 0 desasocia la intervención.
type UpdatePVRequest struct {
	InterventionID *int64  `json:"intervention_id"`
	Type           *string `json:"type" validate:"omitempty,max=50"`
	SignedOn       *string `json:"signed_on"`
	Reservations   *string `json:"reservations"`
	DocumentPath   *string `json:"document_path" validate:"omitempty,max=255"`
}

// PVResponse salida de un acta.
type PVResponse struct {
	ID             int64     `json:"id"`
	ContractID     int64     `json:"contract_id"`
	InterventionID *int64    `json:"intervention_id,omitempty"`
	Type           string    `json:"type"`
	SignedOn       string    `json:"signed_on"`
	Reservations   string    `json:"reservations,omitempty"`
	DocumentPath   string    `json:"document_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
