package repository

import (
	"context"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// SessionRepository almacén de sesiones del lado servidor (Redis o memoria, nunca Postgres).
// Get devuelve (nil, nil) si la sesión no existe o ya expiró.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
