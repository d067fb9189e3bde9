package dto

import "time"

// CreateContractRequest entrada para crear un contrato con su conjunto de equipos.
// Fechas en formato YYYY-MM-DD. ManagerID por defecto es el usuario autenticado.
type CreateContractRequest struct {
	SupplierID        int64   `json:"supplier_id" validate:"required"`
	ManagerID         *int64  `json:"manager_id"`
	MarketReference   string  `json:"market_reference" validate:"required,max=100"`
	StartDate         string  `json:"start_date" validate:"required"`
	WarrantyEnd       string  `json:"warranty_end" validate:"required"`
	MaintenanceEnd    string  `json:"maintenance_end" validate:"required"`
	VisitFrequency    string  `json:"visit_frequency"`
	ResponseTimeHours *int    `json:"response_time_hours"`
	Status            string  `json:"status"`
	EquipmentIDs      []int64 `json:"equipment_ids"`
}

// UpdateContractRequest campos a fusionar. EquipmentIDs != nil reemplaza el conjunto completo.
type UpdateContractRequest struct {
	SupplierID        *int64   `json:"supplier_id"`
	ManagerID         *int64   `json:"manager_id"`
	MarketReference   *string  `json:"market_reference" validate:"omitempty,max=100"`
	StartDate         *string  `json:"start_date"`
	WarrantyEnd       *string  `json:"warranty_end"`
	MaintenanceEnd    *string  `json:"maintenance_end"`
	VisitFrequency    *string  `json:"visit_frequency"`
	ResponseTimeHours *int     `json:"response_time_hours"`
	Status            *string  `json:"status"`
	EquipmentIDs      *[]int64 `json:"equipment_ids"`
}

// ContractResponse salida de un contrato. ExpiringSoon se calcula al consultar.
type ContractResponse struct {
	ID                int64               `json:"id"`
	SupplierID        int64               `json:"supplier_id"`
	ManagerID         int64               `json:"manager_id"`
	MarketReference   string              `json:"market_reference"`
	StartDate         string              `json:"start_date"`
	WarrantyEnd       string              `json:"warranty_end"`
	MaintenanceEnd    string              `json:"maintenance_end"`
	VisitFrequency    string              `json:"visit_frequency"`
	ResponseTimeHours int                 `json:"response_time_hours"`
	Status            string              `json:"status"`
	ExpiringSoon      bool                `json:"expiring_soon"`
	Equipment         []EquipmentResponse `json:"equipment,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}
