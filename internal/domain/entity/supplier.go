package entity

import "time"

// Supplier proveedor titular de contratos de mantenimiento.
type Supplier struct {
	ID        int64
	Name      string
	Email     string
	Phone     string // opcional
	Address   string // opcional, texto libre
	CreatedAt time.Time
	UpdatedAt time.Time
}
