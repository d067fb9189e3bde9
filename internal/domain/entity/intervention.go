package entity

import "time"

// InterventionType preventiva (visita planificada) o correctiva (reparación).
type InterventionType string

const (
	InterventionPreventive InterventionType = "preventive"
	InterventionCorrective InterventionType = "corrective"
)

// Valid indica si el tipo es conocido.
func (t InterventionType) Valid() bool {
	return t == InterventionPreventive || t == InterventionCorrective
}

// InterventionStatus estado de la intervención.
type InterventionStatus string

const (
	InterventionInProgress InterventionStatus = "in_progress"
	InterventionPlanned    InterventionStatus = "planned"
	InterventionCompleted  InterventionStatus = "completed"
	InterventionCancelled  InterventionStatus = "cancelled"
)

// Valid indica si el estado es conocido.
func (s InterventionStatus) Valid() bool {
	switch s {
	case InterventionInProgress, InterventionPlanned, InterventionCompleted, InterventionCancelled:
		return true
	}
	return false
}

// Intervention intervención en campo sobre un contrato y, opcionalmente, un equipo.
type Intervention struct {
	ID                  int64
	ContractID          int64
	EquipmentID         *int64
	Type                InterventionType
	Description         string
	IntervenedAt        time.Time
	PlannedPreventiveOn *time.Time
	Status              InterventionStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
