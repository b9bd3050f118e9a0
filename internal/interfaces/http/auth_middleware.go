package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/pkg/jwt"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUserID   = "user_id"
	LocalTenantID = "tenant_id"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, TenantID y Role a c.Locals.
// Las respuestas 401 incluyen en details la ruta solicitada, para que el cliente
// pueda volver a ella después de reautenticarse.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from := map[string]any{"from": c.OriginalURL()}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return respondErrorDetails(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required", from)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respondErrorDetails(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Expected format: Bearer <token>", from)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respondErrorDetails(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Empty token", from)
		}
		userID, tenantID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return respondErrorDetails(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token", from)
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalTenantID, tenantID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole exige que el rol autenticado esté en la lista. Responder 403
// incluye required/actual en details para que la UI explique el rechazo.
// Debe montarse después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actual := GetRole(c)
		if actual == "" {
			return respondError(c, fiber.StatusUnauthorized, "MISSING_ROLE", "Token does not carry a role claim")
		}
		for _, r := range roles {
			if r == actual {
				return c.Next()
			}
		}
		return respondErrorDetails(c, fiber.StatusForbidden, "FORBIDDEN", "Insufficient role for this operation", map[string]any{
			"required": roles,
			"actual":   actual,
		})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetTenantID devuelve el TenantID del contexto (después del middleware de auth).
func GetTenantID(c *fiber.Ctx) string {
	v := c.Locals(LocalTenantID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
