package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/pkg/validate"
)

// PaymentHandler maneja las peticiones HTTP de pagos (protegido).
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pago sobre una factura
// @Description  El saldo de la factura se actualiza en la misma transacción. Pagos que excedan el saldo son rechazados.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePaymentRequest  true  "datos del pago"
// @Success      201   {object}  Envelope{data=dto.PaymentResponse}
// @Failure      422   {object}  Envelope
// @Router       /api/v1/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	payment, err := h.uc.Create(c.Context(), GetTenantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, payment)
}

// Get godoc
// @Summary      Obtener pago por ID
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del pago"
// @Success      200  {object}  Envelope{data=dto.PaymentResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/v1/payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	payment, err := h.uc.Get(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, payment)
}

// List godoc
// @Summary      Listar pagos
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        page        query  int     false  "página (desde 1)"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        status      query  string  false  "filtrar por estado"
// @Param        customerId  query  string  false  "filtrar por cliente"
// @Param        invoiceId   query  string  false  "filtrar por factura"
// @Success      200  {object}  Envelope{data=[]dto.PaymentResponse}
// @Router       /api/v1/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var in dto.ListPaymentsRequest
	if err := c.QueryParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_QUERY", "Malformed query parameters")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	list, pagination, err := h.uc.List(c.Context(), GetTenantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondList(c, list, pagination)
}

// Process godoc
// @Summary      Completar un pago pendiente
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del pago"
// @Success      200  {object}  Envelope{data=dto.PaymentResponse}
// @Failure      409  {object}  Envelope
// @Router       /api/v1/payments/{id}/process [post]
func (h *PaymentHandler) Process(c *fiber.Ctx) error {
	payment, err := h.uc.Process(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, payment)
}

// Refund godoc
// @Summary      Reembolsar un pago completado
// @Description  La factura recupera el saldo en la misma transacción.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del pago"
// @Success      200  {object}  Envelope{data=dto.PaymentResponse}
// @Failure      409  {object}  Envelope
// @Router       /api/v1/payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	payment, err := h.uc.Refund(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, payment)
}
