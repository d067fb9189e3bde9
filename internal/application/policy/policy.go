// Package policy decide qué rol puede ejecutar cada acción protegida.
package policy

import (
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// Action identifica una operación protegida.
type Action string

const (
	ActionDashboardAdmin            Action = "dashboard:admin"
	ActionDashboardContractManager  Action = "dashboard:contract_manager"
	ActionDashboardTechnicalManager Action = "dashboard:technical_manager"
	ActionManageUsers               Action = "users:manage"
	ActionWriteSuppliers            Action = "suppliers:write"
	ActionWriteEquipment            Action = "equipment:write"
	ActionWriteContracts            Action = "contracts:write"
	ActionWriteInterventions        Action = "interventions:write"
	ActionWritePVs                  Action = "pvs:write"
)

// DefaultRules tabla de permisos. El administrador tiene acceso a todo.
func DefaultRules() map[Action][]entity.Role {
	return map[Action][]entity.Role{
		ActionDashboardAdmin:            {entity.RoleAdmin},
		ActionDashboardContractManager:  {entity.RoleAdmin, entity.RoleContractManager},
		ActionDashboardTechnicalManager: {entity.RoleAdmin, entity.RoleTechnicalManager},
		ActionManageUsers:               {entity.RoleAdmin},
		ActionWriteSuppliers:            {entity.RoleAdmin, entity.RoleContractManager},
		ActionWriteEquipment:            {entity.RoleAdmin, entity.RoleContractManager},
		ActionWriteContracts:            {entity.RoleAdmin, entity.RoleContractManager},
		ActionWriteInterventions:        {entity.RoleAdmin, entity.RoleTechnicalManager},
		ActionWritePVs:                  {entity.RoleAdmin, entity.RoleTechnicalManager},
	}
}

// Policy evalúa permisos por rol.
type Policy struct {
	rules map[Action]map[entity.Role]struct{}
}

// New construye la política con DefaultRules.
func New() *Policy {
	return NewWithRules(DefaultRules())
}

// NewWithRules construye la política con una tabla explícita.
func NewWithRules(rules map[Action][]entity.Role) *Policy {
	p := &Policy{rules: make(map[Action]map[entity.Role]struct{}, len(rules))}
	for action, roles := range rules {
		set := make(map[entity.Role]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		p.rules[action] = set
	}
	return p
}

// Authorize devuelve nil si la identidad puede ejecutar la acción,
// domain.ErrUnknownRole si su rol no es válido y domain.ErrForbidden en otro caso.
// Una acción desconocida se deniega.
func (p *Policy) Authorize(id *entity.Identity, action Action) error {
	if id == nil {
		return domain.ErrUnauthorized
	}
	if !id.Role.Valid() {
		return domain.ErrUnknownRole
	}
	allowed, ok := p.rules[action]
	if !ok {
		return domain.ErrForbidden
	}
	if _, ok := allowed[id.Role]; !ok {
		return domain.ErrForbidden
	}
	return nil
}

// DashboardAction acción que protege el dashboard de un rol.
func DashboardAction(role entity.Role) (Action, error) {
	switch role {
	case entity.RoleAdmin:
		return ActionDashboardAdmin, nil
	case entity.RoleContractManager:
		return ActionDashboardContractManager, nil
	case entity.RoleTechnicalManager:
		return ActionDashboardTechnicalManager, nil
	}
	return "", domain.ErrUnknownRole
}
