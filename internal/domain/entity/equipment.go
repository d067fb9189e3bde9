package entity

import "time"

// EquipmentType tipo de equipo cubierto por los contratos.
type EquipmentType string

const (
	EquipmentServer         EquipmentType = "server"
	EquipmentSANSwitch      EquipmentType = "san_switch"
	EquipmentDiskArray      EquipmentType = "disk_array"
	EquipmentNAS            EquipmentType = "nas"
	EquipmentRackChassis    EquipmentType = "rack_chassis"
	EquipmentSwitch         EquipmentType = "switch"
	EquipmentRouter         EquipmentType = "router"
	EquipmentFirewall       EquipmentType = "firewall"
	EquipmentAirConditioner EquipmentType = "air_conditioner"
	EquipmentUPS            EquipmentType = "ups"
	EquipmentGenerator      EquipmentType = "generator"
	EquipmentConsumableLot  EquipmentType = "consumable_lot"
	EquipmentSoftware       EquipmentType = "software"
)

// EquipmentTypes catálogo completo, en el orden del formulario original.
func EquipmentTypes() []EquipmentType {
	return []EquipmentType{
		EquipmentServer, EquipmentSANSwitch, EquipmentDiskArray, EquipmentNAS,
		EquipmentRackChassis, EquipmentSwitch, EquipmentRouter, EquipmentFirewall,
		EquipmentAirConditioner, EquipmentUPS, EquipmentGenerator,
		EquipmentConsumableLot, EquipmentSoftware,
	}
}

// Valid indica si el tipo pertenece al catálogo.
func (t EquipmentType) Valid() bool {
	for _, v := range EquipmentTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// Equipment equipo inventariado. Relación N:M con Contract y 1:N con Intervention.
type Equipment struct {
	ID           int64
	Name         string
	Type         EquipmentType
	Description  string
	SerialNumber string
	AcquiredOn   *time.Time // fecha de adquisición (opcional)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
