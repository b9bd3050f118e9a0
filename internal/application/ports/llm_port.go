package ports

import (
	"context"

	"github.com/jobblox/crm-api/internal/application/dto"
)

// LLMService define el puerto de salida para los servicios de inteligencia
// artificial. Cualquier adaptador (Anthropic, mock) debe implementar esta
// interfaz; la aplicación solo conoce este contrato.
type LLMService interface {
	// GenerateBusinessInsights analiza las métricas del tenant y produce un
	// resumen con recomendaciones accionables. El contexto debe llevar un
	// timeout para evitar bloqueos en llamadas externas.
	GenerateBusinessInsights(
		ctx context.Context,
		stats dto.DashboardStatsResponse,
		question string,
	) (*dto.AIInsightsResponse, error)
}
