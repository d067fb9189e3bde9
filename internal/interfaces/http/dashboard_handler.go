package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/contracts-api/internal/application/analytics"
	"github.com/jhoicas/contracts-api/internal/application/policy"
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// DashboardHandler tableros por rol.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	policy *policy.Policy
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, p *policy.Policy) *DashboardHandler {
	return &DashboardHandler{uc: uc, policy: p}
}

// Own godoc
// @Summary      Tablero del rol del usuario
// @Description  Resuelve el tablero que corresponde al rol de la sesión.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.DashboardSummaryDTO
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Own(c *fiber.Ctx) error {
	id := GetIdentity(c)
	if id == nil {
		return respondError(c, domain.ErrUnauthorized)
	}
	return h.render(c, id, id.Role)
}

// ByRole godoc
// @Summary      Tablero de un rol
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        role  path  string  true  "admin | contract_manager | technical_manager"
// @Success      200   {object}  dto.DashboardSummaryDTO
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dashboard/{role} [get]
func (h *DashboardHandler) ByRole(c *fiber.Ctx) error {
	role := entity.Role(c.Params("role"))
	if !role.Valid() {
		return respondError(c, domain.ErrNotFound)
	}
	return h.render(c, GetIdentity(c), role)
}

func (h *DashboardHandler) render(c *fiber.Ctx, id *entity.Identity, role entity.Role) error {
	action, err := policy.DashboardAction(role)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.policy.Authorize(id, action); err != nil {
		return respondError(c, err)
	}
	summary, err := h.uc.ComputeSummary(c.UserContext(), appanalytics.Scope{Role: role, UserID: id.UserID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
