package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/crm"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/pkg/validate"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *crm.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *crm.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCustomerRequest  true  "datos del cliente"
// @Success      201   {object}  Envelope{data=dto.CustomerResponse}
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	customer, err := h.uc.Create(c.Context(), GetTenantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, customer)
}

// Get godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  Envelope{data=dto.CustomerResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/v1/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, customer)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "página (desde 1)"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        status  query  string  false  "filtrar por estado"
// @Param        type    query  string  false  "filtrar por tipo"
// @Param        search  query  string  false  "buscar en nombre, email y teléfono"
// @Success      200  {object}  Envelope{data=[]dto.CustomerResponse}
// @Router       /api/v1/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var in dto.ListCustomersRequest
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
// @Summary      Actualizar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "datos del cliente"
// @Success      200   {object}  Envelope{data=dto.CustomerResponse}
// @Failure      404   {object}  Envelope
// @Router       /api/v1/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	customer, err := h.uc.Update(c.Context(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, customer)
}

// Delete godoc
// @Summary      Archivar cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Customer archived")
}
