package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/pkg/validate"
)

// EstimateHandler maneja las peticiones HTTP de cotizaciones (protegido).
type EstimateHandler struct {
	uc *billing.EstimateUseCase
}

// NewEstimateHandler construye el handler.
func NewEstimateHandler(uc *billing.EstimateUseCase) *EstimateHandler {
	return &EstimateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cotización
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEstimateRequest  true  "datos de la cotización"
// @Success      201   {object}  Envelope{data=dto.EstimateResponse}
// @Failure      400   {object}  Envelope
// @Router       /api/v1/estimates [post]
func (h *EstimateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	estimate, err := h.uc.Create(c.Context(), GetTenantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, estimate)
}

// Get godoc
// @Summary      Obtener cotización por ID
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  Envelope{data=dto.EstimateResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/v1/estimates/{id} [get]
func (h *EstimateHandler) Get(c *fiber.Ctx) error {
	estimate, err := h.uc.Get(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, estimate)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        page        query  int     false  "página (desde 1)"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        status      query  string  false  "filtrar por estado"
// @Param        customerId  query  string  false  "filtrar por cliente"
// @Success      200  {object}  Envelope{data=[]dto.EstimateResponse}
// @Router       /api/v1/estimates [get]
func (h *EstimateHandler) List(c *fiber.Ctx) error {
	var in dto.ListEstimatesRequest
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

// Update godoc
// @Summary      Actualizar cotización
// @Description  Solo cotizaciones en draft pueden modificarse.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID de la cotización"
// @Param        body  body  dto.UpdateEstimateRequest  true  "datos de la cotización"
// @Success      200   {object}  Envelope{data=dto.EstimateResponse}
// @Failure      409   {object}  Envelope
// @Router       /api/v1/estimates/{id} [put]
func (h *EstimateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	estimate, err := h.uc.Update(c.Context(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, estimate)
}

// Send godoc
// @Summary      Enviar cotización al cliente por email
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  Envelope{data=dto.EstimateResponse}
// @Failure      409  {object}  Envelope
// @Router       /api/v1/estimates/{id}/send [post]
func (h *EstimateHandler) Send(c *fiber.Ctx) error {
	estimate, err := h.uc.Send(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, estimate)
}

// Approve godoc
// @Summary      Aprobar cotización y convertirla en factura
// @Description  La cotización pasa a approved y se crea la factura con sus items en una sola transacción.
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cotización"
// @Success      201  {object}  Envelope{data=dto.InvoiceResponse}
// @Failure      409  {object}  Envelope
// @Router       /api/v1/estimates/{id}/approve [post]
func (h *EstimateHandler) Approve(c *fiber.Ctx) error {
	invoice, err := h.uc.Approve(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, invoice)
}

// Delete godoc
// @Summary      Eliminar cotización
// @Description  Solo cotizaciones en draft pueden eliminarse.
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  Envelope
// @Failure      409  {object}  Envelope
// @Router       /api/v1/estimates/{id} [delete]
func (h *EstimateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Estimate deleted")
}
