package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/analytics"
)

// DashboardHandler expone las métricas agregadas del tenant.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Métricas del dashboard
// @Description  Facturación, recaudo, saldo pendiente, trabajos por estado y mejores clientes del mes en curso.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=dto.DashboardStatsResponse}
// @Router       /api/v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context(), GetTenantID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, stats)
}
