package http

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/contracts-api/internal/domain"
)

func TestErrorStatus_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrUnknownRole, fiber.StatusUnauthorized, "UNKNOWN_ROLE"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, fiber.StatusForbidden, "ACCESS_DENIED"},
		{fmt.Errorf("supplier_id: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{domain.NewDuplicateError("username"), fiber.StatusConflict, "DUPLICATE"},
		{domain.NewValidationError("dates", "orden"), fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrReferentialConflict, fiber.StatusConflict, "REFERENTIAL_CONFLICT"},
		{fmt.Errorf("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := errorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}
