package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/contracts-api/internal/domain"
)

// Role es el conjunto cerrado de roles de usuario.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleContractManager  Role = "contract_manager"
	RoleTechnicalManager Role = "technical_manager"
)

// Roles devuelve los roles válidos en orden estable.
func Roles() []Role {
	return []Role{RoleAdmin, RoleContractManager, RoleTechnicalManager}
}

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleContractManager, RoleTechnicalManager:
		return true
	}
	return false
}

// Label etiqueta legible del rol (la que mostraba la aplicación original).
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleContractManager:
		return "Gestionnaire de Contrat"
	case RoleTechnicalManager:
		return "Gestionnaire Technique"
	}
	return string(r)
}

// legacyRoles mapea etiquetas normalizadas (minúsculas, sin acentos, "_" como separador)
// al rol canónico. Incluye las etiquetas que se guardaban en la base anterior.
var legacyRoles = map[string]Role{
	"admin":                   RoleAdmin,
	"administrateur":          RoleAdmin,
	"contract_manager":        RoleContractManager,
	"gestionnaire_de_contrat": RoleContractManager,
	"technical_manager":       RoleTechnicalManager,
	"gestionnaire_technique":  RoleTechnicalManager,
}

// ParseRole convierte un valor externo o persistido en Role.
// Devuelve domain.ErrUnknownRole si el valor no corresponde a ningún rol.
func ParseRole(s string) (Role, error) {
	if r, ok := legacyRoles[normalizeLabel(s)]; ok {
		return r, nil
	}
	return "", domain.ErrUnknownRole
}

func normalizeLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	out = strings.ToLower(out)
	return strings.Join(strings.FieldsFunc(out, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}
