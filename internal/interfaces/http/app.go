package http

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/pkg/logger"
)

// AppConfig opciones del servidor HTTP.
type AppConfig struct {
	Name        string
	Log         *logger.Logger
	SwaggerFile string // si existe, se sirve la UI en /docs
}

// NewApp construye la aplicación Fiber con middlewares comunes, /health, /metrics
// (si deps.Metrics no es nil) y las rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ErrorHandler: errorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    cfg.Name + " API",
			}))
		}
	}
	app.Use(RequestID(cfg.Log.Named("http")))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	Router(app, deps)
	return app
}

// errorHandler respuestas para errores que no pasan por respondError
// (rutas inexistentes, pánicos recuperados).
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code == fiber.StatusInternalServerError {
		RequestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(code).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	name := "HTTP_ERROR"
	if code == fiber.StatusNotFound {
		name = "NOT_FOUND"
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: name, Message: fe.Message})
}
