package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
)

// Envelope respuesta uniforme de la API. Todos los endpoints responden con
// esta forma; el SDK (pkg/apiclient) depende de ella para decodificar.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
	Details    map[string]any  `json:"details,omitempty"`
	Pagination *dto.Pagination `json:"pagination,omitempty"`
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: data})
}

func respondList(c *fiber.Ctx, data any, pagination dto.Pagination) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data, Pagination: &pagination})
}

func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: true, Message: message})
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: code, Message: message})
}

func respondErrorDetails(c *fiber.Ctx, status int, code, message string, details map[string]any) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: code, Message: message, Details: details})
}

// respondValidation responde 400 con el mapa campo → mensaje del validador.
func respondValidation(c *fiber.Ctx, fields map[string]string) error {
	details := make(map[string]any, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return respondErrorDetails(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
}

// respondDomainError traduce errores de dominio a códigos HTTP.
// Cualquier error no reconocido se reporta como 500 sin filtrar detalles internos.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrTenantMismatch):
		return respondError(c, fiber.StatusForbidden, "FORBIDDEN", "You do not have access to this resource")
	case errors.Is(err, domain.ErrUnauthorized):
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respondError(c, fiber.StatusConflict, "EMAIL_EXISTS", "Email is already registered")
	case errors.Is(err, domain.ErrDuplicate):
		return respondError(c, fiber.StatusConflict, "DUPLICATE", "Resource already exists")
	case errors.Is(err, domain.ErrInvalidTransition):
		return respondError(c, fiber.StatusConflict, "INVALID_TRANSITION", "Status transition not allowed")
	case errors.Is(err, domain.ErrOverpayment):
		return respondError(c, fiber.StatusUnprocessableEntity, "OVERPAYMENT", "Payment exceeds the invoice balance due")
	case errors.Is(err, domain.ErrConflict):
		return respondError(c, fiber.StatusConflict, "CONFLICT", "Operation conflicts with the current state")
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "INVALID_INPUT", "Invalid input")
	default:
		return respondError(c, fiber.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
