package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/application/report"
	"github.com/jhoicas/contracts-api/internal/application/usecase"
)

// ContractHandler maneja contratos, su conjunto de equipos y el registro exportable.
type ContractHandler struct {
	uc     *usecase.ContractUseCase
	report *report.ReportUseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(uc *usecase.ContractUseCase, reportUC *report.ReportUseCase) *ContractHandler {
	return &ContractHandler{uc: uc, report: reportUC}
}

func contractQuery(c *fiber.Ctx) (usecase.ContractQuery, error) {
	supplierID, err := queryID(c, "supplier_id")
	if err != nil {
		return usecase.ContractQuery{}, err
	}
	return usecase.ContractQuery{
		Status:     c.Query("status"),
		SupplierID: supplierID,
		Expiring:   c.QueryBool("expiring"),
	}, nil
}

// Create godoc
// @Summary      Crear contrato
// @Description  Crea el contrato y asocia los equipos indicados en una sola transacción.
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContractRequest  true  "Datos del contrato"
// @Success      201   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/contracts [post]
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContractRequest
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
// @Summary      Obtener contrato con sus equipos
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del contrato"
// @Success      200  {object}  dto.ContractResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [get]
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar contratos
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "active | suspended | expired | terminated"
// @Param        supplier_id  query  int     false  "Proveedor"
// @Param        expiring     query  bool    false  "Solo fin de mantenimiento <= hoy+30"
// @Success      200  {object}  dto.ListResponse[dto.ContractResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/contracts [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	q, err := contractQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Equipment godoc
// @Summary      Equipos del contrato
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del contrato"
// @Success      200  {object}  dto.ListResponse[dto.EquipmentResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id}/equipment [get]
func (h *ContractHandler) Equipment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListEquipment(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar contrato
// @Description  equipment_ids presente reemplaza el conjunto de equipos.
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del contrato"
// @Param        body  body  dto.UpdateContractRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [put]
func (h *ContractHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Registro de contratos en Excel
// @Tags         contracts
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status       query  string  false  "Filtro de estado"
// @Param        supplier_id  query  int     false  "Proveedor"
// @Param        expiring     query  bool    false  "Solo por vencer"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/contracts/export.xlsx [get]
func (h *ContractHandler) Export(c *fiber.Ctx) error {
	q, err := contractQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.report.ContractRegister(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(filename)
	return c.Send(data)
}
