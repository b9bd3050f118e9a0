package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/auth"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/pkg/validate"
)

// AuthHandler maneja registro, login y sesión.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar tenant y usuario owner
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "tenantName, email, password"
// @Success      201   {object}  Envelope{data=dto.SessionResponse}
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	session, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, session)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  Envelope{data=dto.SessionResponse}
// @Failure      401   {object}  Envelope
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	session, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, session)
}

// Refresh godoc
// @Summary      Renovar el token de sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=dto.SessionResponse}
// @Failure      401  {object}  Envelope
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	session, err := h.uc.Refresh(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, session)
}

// Me godoc
// @Summary      Usuario autenticado actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=dto.UserResponse}
// @Failure      401  {object}  Envelope
// @Router       /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, user)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Los JWT son stateless: el logout es responsabilidad del cliente
	// (descartar el token). El endpoint existe para simetría del SDK.
	return respondMessage(c, fiber.StatusOK, "Session closed")
}
