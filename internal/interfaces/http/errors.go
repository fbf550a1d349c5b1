package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/daskasas/inventory-tracker/internal/application/dto"
	"github.com/daskasas/inventory-tracker/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var malformed *domain.MalformedInputError
	switch {
	case errors.As(err, &malformed), errors.Is(err, domain.ErrMalformedInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeMalformedInput, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeInvalidParams, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: dto.CodeNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrPreconditionViolation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: dto.CodePrecondition, Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: dto.CodeInternal, Message: err.Error()})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeInvalidParams, Message: message})
}
