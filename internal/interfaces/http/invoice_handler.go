package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/pkg/validate"
)

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido).
type InvoiceHandler struct {
	uc    *billing.InvoiceUseCase
	pdfUC *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvoiceRequest  true  "datos de la factura"
// @Success      201   {object}  Envelope{data=dto.InvoiceResponse}
// @Failure      400   {object}  Envelope
// @Router       /api/v1/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	invoice, err := h.uc.Create(c.Context(), GetTenantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, invoice)
}

// Get godoc
// @Summary      Obtener factura por ID
// @Description  Las facturas vencidas se reportan con estado overdue.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  Envelope{data=dto.InvoiceResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	invoice, err := h.uc.Get(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, invoice)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        page        query  int     false  "página (desde 1)"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        status      query  string  false  "filtrar por estado"
// @Param        customerId  query  string  false  "filtrar por cliente"
// @Success      200  {object}  Envelope{data=[]dto.InvoiceResponse}
// @Router       /api/v1/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.ListInvoicesRequest
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
// @Summary      Actualizar factura
// @Description  Solo facturas en draft pueden modificarse.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "datos de la factura"
// @Success      200   {object}  Envelope{data=dto.InvoiceResponse}
// @Failure      409   {object}  Envelope
// @Router       /api/v1/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	invoice, err := h.uc.Update(c.Context(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, invoice)
}

// Send godoc
// @Summary      Enviar factura al cliente por email con su PDF
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  Envelope{data=dto.InvoiceResponse}
// @Failure      409  {object}  Envelope
// @Router       /api/v1/invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	invoice, err := h.uc.Send(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, invoice)
}

// PDF godoc
// @Summary      Descargar PDF de la factura
// @Description  Devuelve el PDF dentro del envelope (content en base64).
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  Envelope{data=dto.InvoicePDFResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/v1/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdf, err := h.pdfUC.GenerateInvoicePDF(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, pdf)
}

// Delete godoc
// @Summary      Cancelar factura
// @Description  Rechazado si la factura ya tiene pagos aplicados.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  Envelope
// @Failure      409  {object}  Envelope
// @Router       /api/v1/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Invoice cancelled")
}
