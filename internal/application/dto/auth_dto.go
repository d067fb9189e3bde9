package dto

import "time"

// LoginRequest credenciales presentadas.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token opaco de sesión más la identidad resuelta.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Identity  IdentityResponse `json:"identity"`
}

// IdentityResponse identidad autenticada (GET /api/auth/me).
type IdentityResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	RoleLabel string `json:"role_label"`
	Dashboard string `json:"dashboard"`
}
