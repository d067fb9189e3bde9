package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contracts-api/internal/application/policy"
)

// RequireAction corta la petición antes del handler si la identidad no puede
// ejecutar la acción. Debe montarse DESPUÉS de AuthMiddleware.
//
//   - 401 → sin identidad o con rol desconocido.
//   - 403 → rol válido sin permiso.
func RequireAction(p *policy.Policy, action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := p.Authorize(GetIdentity(c), action); err != nil {
			RequestLogger(c).Warn().Str("action", string(action)).Err(err).Msg("acceso denegado")
			return respondError(c, err)
		}
		return c.Next()
	}
}
