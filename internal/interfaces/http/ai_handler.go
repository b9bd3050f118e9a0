package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/application/usecase"
	"github.com/jobblox/crm-api/pkg/validate"
)

// AIHandler expone el análisis de negocio generado por el LLM.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Insights godoc
// @Summary      Generar análisis de negocio con IA
// @Description  Combina las métricas del dashboard con una pregunta opcional y delega en el LLM.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AIInsightsRequest  false  "pregunta opcional"
// @Success      200   {object}  Envelope{data=dto.AIInsightsResponse}
// @Failure      502   {object}  Envelope
// @Router       /api/v1/ai/insights [post]
func (h *AIHandler) Insights(c *fiber.Ctx) error {
	var in dto.AIInsightsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
		}
	}
	if fields := validate.Struct(in); fields != nil {
		return respondValidation(c, fields)
	}
	insights, err := h.uc.GenerateInsights(c.Context(), GetTenantID(c), in)
	if err != nil {
		// El proveedor LLM es un upstream externo: sus fallas se reportan como 502.
		return respondError(c, fiber.StatusBadGateway, "AI_UNAVAILABLE", "Could not generate insights")
	}
	return respond(c, fiber.StatusOK, insights)
}
