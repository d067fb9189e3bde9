package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard[/:role].
// Mismo contenido para los tres roles; el filtrado por rol se aplica en el use case.
type DashboardSummaryDTO struct {
	Role                 string                 `json:"role"`
	AsOf                 string                 `json:"as_of"` // fecha de cálculo, YYYY-MM-DD
	TotalContracts       int                    `json:"total_contracts"`
	ActiveContracts      int                    `json:"active_contracts"`
	TotalEquipment       int                    `json:"total_equipment"`
	PendingInterventions int                    `json:"pending_interventions"`
	RecentInterventions  []InterventionResponse `json:"recent_interventions"` // 5 más recientes
	ExpiringContracts    []ContractResponse     `json:"expiring_contracts"`   // fin de mantenimiento <= hoy+30
}
