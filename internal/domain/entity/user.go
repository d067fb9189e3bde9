package entity

import "time"

// User representa un usuario del sistema. Lo crea un administrador; no hay auto-registro.
type User struct {
	ID           int64
	Username     string
	Email        string
	Role         Role   // puede venir inválido desde la base; validar con Role.Valid o ParseRole
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
