package entity

import "time"

// Identity es la identidad autenticada asociada a una sesión.
type Identity struct {
	UserID    int64
	Username  string
	Role      Role
	SessionID string
}

// Session sesión del lado servidor; el token que recibe el cliente solo la referencia.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired indica si la sesión venció en el instante dado.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
