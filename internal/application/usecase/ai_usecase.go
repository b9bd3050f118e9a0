package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jobblox/crm-api/internal/application/analytics"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/application/ports"
)

// AIUseCase orquesta los insights de negocio asistidos por IA: recopila las
// métricas del dashboard y se las entrega al LLM con la pregunta del usuario.
// Aplica un timeout de 10 segundos en cada llamada al LLM para evitar que
// las latencias externas bloqueen los goroutines del servidor.
type AIUseCase struct {
	dashboard *analytics.DashboardUseCase
	llm       ports.LLMService
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(dashboard *analytics.DashboardUseCase, llm ports.LLMService) *AIUseCase {
	return &AIUseCase{dashboard: dashboard, llm: llm}
}

// GenerateInsights construye el contexto de métricas y delega al LLM.
func (uc *AIUseCase) GenerateInsights(ctx context.Context, tenantID string, req dto.AIInsightsRequest) (*dto.AIInsightsResponse, error) {
	stats, err := uc.dashboard.GetStats(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("métricas para insights: %w", err)
	}

	// Timeout de 10 s: las llamadas a LLMs pueden demorar varios segundos.
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	insights, err := uc.llm.GenerateBusinessInsights(ctx, *stats, req.Question)
	if err != nil {
		return nil, fmt.Errorf("insights IA: %w", err)
	}
	return insights, nil
}
