package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/application/usecase"
	"github.com/jobblox/crm-api/pkg/validate"
)

// EmployeeHandler maneja las peticiones HTTP de empleados (protegido, owner/admin).
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta un empleado
// @Description  Crea también el usuario del empleado (rol employee) con la contraseña temporal indicada.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEmployeeRequest  true  "datos del empleado"
// @Success      201   {object}  Envelope{data=dto.EmployeeResponse}
// @Failure      409   {object}  Envelope
// @Router       /api/v1/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	employee, err := h.uc.Create(c.Context(), GetTenantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, employee)
}

// Get godoc
// @Summary      Obtener empleado por ID
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del empleado"
// @Success      200  {object}  Envelope{data=dto.EmployeeResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/v1/employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	employee, err := h.uc.Get(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, employee)
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        page        query  int     false  "página (desde 1)"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        status      query  string  false  "filtrar por estado"
// @Param        department  query  string  false  "filtrar por departamento"
// @Success      200  {object}  Envelope{data=[]dto.EmployeeResponse}
// @Router       /api/v1/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	var in dto.ListEmployeesRequest
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
// @Summary      Actualizar empleado
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "datos del empleado"
// @Success      200   {object}  Envelope{data=dto.EmployeeResponse}
// @Failure      404   {object}  Envelope
// @Router       /api/v1/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	employee, err := h.uc.Update(c.Context(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, employee)
}

// Deactivate godoc
// @Summary      Desactivar empleado
// @Description  Desactiva al empleado y a su usuario; el histórico se conserva.
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del empleado"
// @Success      200  {object}  Envelope{data=dto.EmployeeResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/v1/employees/{id}/deactivate [post]
func (h *EmployeeHandler) Deactivate(c *fiber.Ctx) error {
	employee, err := h.uc.Deactivate(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, employee)
}
