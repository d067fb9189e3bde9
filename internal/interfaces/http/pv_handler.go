package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/application/report"
	"github.com/jhoicas/contracts-api/internal/application/usecase"
)

// PVHandler maneja actas (PV) y su hoja de firma en PDF.
type PVHandler struct {
	uc     *usecase.PVUseCase
	report *report.ReportUseCase
}

// NewPVHandler construye el handler.
func NewPVHandler(uc *usecase.PVUseCase, reportUC *report.ReportUseCase) *PVHandler {
	return &PVHandler{uc: uc, report: reportUC}
}

// Create godoc
// @Summary      Registrar acta
// @Tags         pvs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePVRequest  true  "Datos del acta"
// @Success      201   {object}  dto.PVResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pvs [post]
func (h *PVHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePVRequest
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
// @Summary      Obtener acta por ID
// @Tags         pvs
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del acta"
// @Success      200  {object}  dto.PVResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pvs/{id} [get]
func (h *PVHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar actas
// @Tags         pvs
// @Security     Bearer
// @Produce      json
// @Param        contract_id  query  int  false  "Contrato"
// @Success      200  {object}  dto.ListResponse[dto.PVResponse]
// @Router       /api/pvs [get]
func (h *PVHandler) List(c *fiber.Ctx) error {
	contractID, err := queryID(c, "contract_id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), contractID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar acta
// @Tags         pvs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del acta"
// @Param        body  body  dto.UpdatePVRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PVResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pvs/{id} [put]
func (h *PVHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdatePVRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sheet godoc
// @Summary      Hoja de firma del acta (PDF)
// @Tags         pvs
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del acta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pvs/{id}/sheet.pdf [get]
func (h *PVHandler) Sheet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.report.PVSheet(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(filename)
	return c.Send(data)
}
