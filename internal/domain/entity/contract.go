package entity

import (
	"time"

	"github.com/jhoicas/contracts-api/internal/domain"
)

// ExpiryWindowDays ventana (inclusiva) para considerar un contrato "por vencer".
const ExpiryWindowDays = 30

// DefaultResponseTimeHours plazo de respuesta por defecto del contrato.
const DefaultResponseTimeHours = 2

// VisitFrequency frecuencia de las visitas preventivas.
type VisitFrequency string

const (
	FrequencyMonthly    VisitFrequency = "monthly"
	FrequencyQuarterly  VisitFrequency = "quarterly"
	FrequencySemiannual VisitFrequency = "semiannual"
	FrequencyAnnual     VisitFrequency = "annual"
)

// Valid indica si la frecuencia es conocida.
func (f VisitFrequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemiannual, FrequencyAnnual:
		return true
	}
	return false
}

// ContractStatus estado del contrato.
type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractSuspended  ContractStatus = "suspended"
	ContractExpired    ContractStatus = "expired"
	ContractTerminated ContractStatus = "terminated"
)

// Valid indica si el estado es conocido.
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractActive, ContractSuspended, ContractExpired, ContractTerminated:
		return true
	}
	return false
}

// Contract contrato de mantenimiento con un proveedor, gestionado por un usuario.
// El conjunto de equipos vive en la relación contract_equipment y se consulta explícitamente.
type Contract struct {
	ID                int64
	SupplierID        int64
	ManagerID         int64
	MarketReference   string
	StartDate         time.Time
	WarrantyEnd       time.Time
	MaintenanceEnd    time.Time
	VisitFrequency    VisitFrequency
	ResponseTimeHours int
	Status            ContractStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ExpiryCutoff última fecha de fin de mantenimiento que cuenta como "por vencer" hoy.
func ExpiryCutoff(now time.Time) time.Time {
	return DateOf(now).AddDate(0, 0, ExpiryWindowDays)
}

// IsExpiringSoon indica si el mantenimiento termina dentro de la ventana de 30 días.
func (c *Contract) IsExpiringSoon(now time.Time) bool {
	return !DateOf(c.MaintenanceEnd).After(ExpiryCutoff(now))
}

// Validate comprueba los invariantes propios del contrato.
func (c *Contract) Validate() error {
	if c.MarketReference == "" {
		return domain.NewValidationError("market_reference", "es requerido")
	}
	if c.StartDate.IsZero() || c.WarrantyEnd.IsZero() || c.MaintenanceEnd.IsZero() {
		return domain.NewValidationError("dates", "start_date, warranty_end y maintenance_end son requeridos")
	}
	if c.WarrantyEnd.Before(c.StartDate) || c.MaintenanceEnd.Before(c.WarrantyEnd) {
		return domain.NewValidationError("dates", "se requiere start_date <= warranty_end <= maintenance_end")
	}
	if !c.VisitFrequency.Valid() {
		return domain.NewValidationError("visit_frequency", "valor desconocido")
	}
	if c.ResponseTimeHours <= 0 {
		return domain.NewValidationError("response_time_hours", "debe ser un entero positivo")
	}
	if !c.Status.Valid() {
		return domain.NewValidationError("status", "valor desconocido")
	}
	return nil
}
