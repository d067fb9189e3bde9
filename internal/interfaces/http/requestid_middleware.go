package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/contracts-api/pkg/logger"
)

// Locals keys del contexto de la petición.
const (
	LocalRequestID = "request_id"
	LocalLogger    = "logger"
	LocalIdentity  = "identity"
	LocalToken     = "token"
)

const headerRequestID = "X-Request-ID"

// RequestID asigna (o respeta) X-Request-ID, guarda un logger con ese campo en
// c.Locals y escribe una línea de acceso al terminar.
func RequestID(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)
		reqLog := log.WithField("request_id", id)
		c.Locals(LocalRequestID, id)
		c.Locals(LocalLogger, reqLog)

		start := time.Now()
		err := c.Next()
		reqLog.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}

// RequestLogger logger de la petición (Nop si RequestID no se montó).
func RequestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok && l != nil {
		return l
	}
	return logger.Nop()
}
