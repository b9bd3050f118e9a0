package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/crm"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/pkg/validate"
)

// JobHandler maneja las peticiones HTTP de trabajos (protegido).
type JobHandler struct {
	uc *crm.JobUseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *crm.JobUseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create godoc
// @Summary      Crear trabajo
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateJobRequest  true  "datos del trabajo"
// @Success      201   {object}  Envelope{data=dto.JobResponse}
// @Failure      400   {object}  Envelope
// @Router       /api/v1/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	job, err := h.uc.Create(c.Context(), GetTenantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, job)
}

// Get godoc
// @Summary      Obtener trabajo por ID
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del trabajo"
// @Success      200  {object}  Envelope{data=dto.JobResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/v1/jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.uc.Get(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, job)
}

// List godoc
// @Summary      Listar trabajos
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        page        query  int     false  "página (desde 1)"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        status      query  string  false  "filtrar por estado"
// @Param        customerId  query  string  false  "filtrar por cliente"
// @Param        assignedTo  query  string  false  "filtrar por empleado asignado"
// @Success      200  {object}  Envelope{data=[]dto.JobResponse}
// @Router       /api/v1/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	var in dto.ListJobsRequest
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
// @Summary      Actualizar trabajo
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "ID del trabajo"
// @Param        body  body  dto.UpdateJobRequest  true  "datos del trabajo"
// @Success      200   {object}  Envelope{data=dto.JobResponse}
// @Failure      404   {object}  Envelope
// @Router       /api/v1/jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	job, err := h.uc.Update(c.Context(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, job)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del trabajo
// @Description  Aplica la tabla de transiciones válidas (draft→scheduled→in_progress→completed).
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "ID del trabajo"
// @Param        body  body  dto.UpdateJobStatusRequest  true  "nuevo estado"
// @Success      200   {object}  Envelope{data=dto.JobResponse}
// @Failure      409   {object}  Envelope
// @Router       /api/v1/jobs/{id}/status [patch]
func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateJobStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	job, err := h.uc.UpdateStatus(c.Context(), GetTenantID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, job)
}

// Assign godoc
// @Summary      Asignar empleados al trabajo
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "ID del trabajo"
// @Param        body  body  dto.AssignJobRequest  true  "IDs de empleados"
// @Success      200   {object}  Envelope{data=dto.JobResponse}
// @Failure      404   {object}  Envelope
// @Router       /api/v1/jobs/{id}/assign [patch]
func (h *JobHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignJobRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	job, err := h.uc.Assign(c.Context(), GetTenantID(c), c.Params("id"), in.AssignedTo)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, job)
}

// Delete godoc
// @Summary      Eliminar trabajo
// @Description  Solo trabajos en draft o cancelled pueden eliminarse.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del trabajo"
// @Success      200  {object}  Envelope
// @Failure      409  {object}  Envelope
// @Router       /api/v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Job deleted")
}
