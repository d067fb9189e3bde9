package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contracts-api/internal/application/analytics"
	"github.com/jhoicas/contracts-api/internal/application/auth"
	"github.com/jhoicas/contracts-api/internal/application/policy"
	"github.com/jhoicas/contracts-api/internal/application/report"
	"github.com/jhoicas/contracts-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	SupplierUC     *usecase.SupplierUseCase
	EquipmentUC    *usecase.EquipmentUseCase
	ContractUC     *usecase.ContractUseCase
	InterventionUC *usecase.InterventionUseCase
	PVUC           *usecase.PVUseCase
	DashboardUC    *analytics.DashboardUseCase
	ReportUC       *report.ReportUseCase
	Policy         *policy.Policy
	Metrics        *Metrics // opcional
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Policy == nil {
		deps.Policy = policy.New()
	}
	api := app.Group("/api")
	authn := AuthMiddleware(deps.AuthUC)
	can := func(action policy.Action) fiber.Handler { return RequireAction(deps.Policy, action) }

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authn, authHandler.Logout)
	authGroup.Get("/me", authn, authHandler.Me)

	// Dashboard: la acción depende del rol pedido, la evalúa el handler
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Policy)
	dashboard := api.Group("/dashboard", authn)
	dashboard.Get("/", dashboardHandler.Own)
	dashboard.Get("/:role", dashboardHandler.ByRole)

	// Users (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", authn, can(policy.ActionManageUsers))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers", authn)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", can(policy.ActionWriteSuppliers), supplierHandler.Create)
	suppliers.Put("/:id", can(policy.ActionWriteSuppliers), supplierHandler.Update)
	suppliers.Delete("/:id", can(policy.ActionWriteSuppliers), supplierHandler.Delete)

	// Equipment
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	equipment := api.Group("/equipment", authn)
	equipment.Get("/", equipmentHandler.List)
	equipment.Get("/types", equipmentHandler.Types)
	equipment.Get("/:id", equipmentHandler.GetByID)
	equipment.Post("/", can(policy.ActionWriteEquipment), equipmentHandler.Create)
	equipment.Put("/:id", can(policy.ActionWriteEquipment), equipmentHandler.Update)
	equipment.Delete("/:id", can(policy.ActionWriteEquipment), equipmentHandler.Delete)

	// Contracts (export.xlsx antes de /:id)
	contractHandler := NewContractHandler(deps.ContractUC, deps.ReportUC)
	contracts := api.Group("/contracts", authn)
	contracts.Get("/", contractHandler.List)
	contracts.Get("/export.xlsx", contractHandler.Export)
	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Get("/:id/equipment", contractHandler.Equipment)
	contracts.Post("/", can(policy.ActionWriteContracts), contractHandler.Create)
	contracts.Put("/:id", can(policy.ActionWriteContracts), contractHandler.Update)

	// Interventions
	interventionHandler := NewInterventionHandler(deps.InterventionUC)
	interventions := api.Group("/interventions", authn)
	interventions.Get("/", interventionHandler.List)
	interventions.Get("/:id", interventionHandler.GetByID)
	interventions.Post("/", can(policy.ActionWriteInterventions), interventionHandler.Create)
	interventions.Put("/:id", can(policy.ActionWriteInterventions), interventionHandler.Update)

	// PVs
	pvHandler := NewPVHandler(deps.PVUC, deps.ReportUC)
	pvs := api.Group("/pvs", authn)
	pvs.Get("/", pvHandler.List)
	pvs.Get("/:id", pvHandler.GetByID)
	pvs.Get("/:id/sheet.pdf", pvHandler.Sheet)
	pvs.Post("/", can(policy.ActionWritePVs), pvHandler.Create)
	pvs.Put("/:id", can(policy.ActionWritePVs), pvHandler.Update)
}
