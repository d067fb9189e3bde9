package entity

import "time"

// PV acta de recepción/conformidad de un contrato o de una intervención.
// DocumentPath es una referencia opaca a un archivo externo; aquí no se almacenan archivos.
type PV struct {
	ID             int64
	ContractID     int64
	InterventionID *int64
	Type           string
	SignedOn       time.Time
	Reservations   string
	DocumentPath   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
