package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidCredentials  = errors.New("credenciales inválidas")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrUnknownRole         = errors.New("rol de usuario desconocido")
	ErrForbidden           = errors.New("acceso denegado")
	ErrValidation          = errors.New("entrada inválida")
	ErrDuplicate           = fmt.Errorf("%w: recurso duplicado", ErrValidation)
	ErrReferentialConflict = errors.New("el recurso está referenciado por otros registros")
)

// ValidationError describe un campo rechazado. Siempre satisface errors.Is(err, ErrValidation);
// Err permite encadenar un sentinel más específico (ej. ErrDuplicate).
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError construye un error de validación para un campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewDuplicateError construye un error de validación por valor único repetido.
func NewDuplicateError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "ya está en uso", Err: ErrDuplicate}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}
