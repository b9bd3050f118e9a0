package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/application/usecase"
	"github.com/jobblox/crm-api/pkg/validate"
)

// UserHandler maneja la administración de usuarios del tenant (owner/admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  Envelope{data=dto.UserResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.uc.Get(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, user)
}

// List godoc
// @Summary      Listar usuarios del tenant
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int     false  "página (desde 1)"
// @Param        limit  query  int     false  "tamaño de página"
// @Param        role   query  string  false  "filtrar por rol"
// @Success      200  {object}  Envelope{data=[]dto.UserResponse}
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var in dto.ListUsersRequest
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
// @Summary      Actualizar usuario (nombre, rol, estado, preferencias)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "datos del usuario"
// @Success      200   {object}  Envelope{data=dto.UserResponse}
// @Failure      404   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	user, err := h.uc.Update(c.Context(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, user)
}

// Delete godoc
// @Summary      Desactivar usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Failure      409  {object}  Envelope
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "User deactivated")
}
