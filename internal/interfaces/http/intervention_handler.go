package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/application/usecase"
)

// InterventionHandler maneja las peticiones HTTP para Intervention.
type InterventionHandler struct {
	uc *usecase.InterventionUseCase
}

// NewInterventionHandler construye el handler.
func NewInterventionHandler(uc *usecase.InterventionUseCase) *InterventionHandler {
	return &InterventionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar intervención
// @Tags         interventions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInterventionRequest  true  "Datos de la intervención"
// @Success      201   {object}  dto.InterventionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/interventions [post]
func (h *InterventionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInterventionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener intervención por ID
// @Tags         interventions
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la intervención"
// @Success      200  {object}  dto.InterventionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/interventions/{id} [get]
func (h *InterventionHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar intervenciones
// @Description  Más recientes primero. from/to en YYYY-MM-DD o RFC 3339; to sin hora cubre el día completo.
// @Tags         interventions
// @Security     Bearer
// @Produce      json
// @Param        contract_id  query  int     false  "Contrato"
// @Param        status       query  string  false  "in_progress | planned | completed | cancelled"
// @Param        from         query  string  false  "Desde"
// @Param        to           query  string  false  "Hasta"
// @Success      200  {object}  dto.ListResponse[dto.InterventionResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/interventions [get]
func (h *InterventionHandler) List(c *fiber.Ctx) error {
	var q dto.InterventionQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar intervención
// @Tags         interventions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la intervención"
// @Param        body  body  dto.UpdateInterventionRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.InterventionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/interventions/{id} [put]
func (h *InterventionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateInterventionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
