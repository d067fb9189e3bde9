package dto

import "time"

// CreateEquipmentRequest entrada para crear un equipo. AcquiredOn en formato YYYY-MM-DD.
type CreateEquipmentRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Type         string `json:"type" validate:"required"`
	Description  string `json:"description"`
	SerialNumber string `json:"serial_number" validate:"max=100"`
	AcquiredOn   string `json:"acquired_on"`
}

// UpdateEquipmentRequest campos a fusionar. AcquiredOn = "" borra la fecha.
type UpdateEquipmentRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=255"`
	Type         *string `json:"type"`
	Description  *string `json:"description"`
	SerialNumber *string `json:"serial_number" validate:"omitempty,max=100"`
	AcquiredOn   *string `json:"acquired_on"`
}

// EquipmentResponse salida de un equipo.
type EquipmentResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Description  string    `json:"description,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	AcquiredOn   *string   `json:"acquired_on,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
