package sdk

import (
	"context"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// AIService análisis de negocio generado por IA.
type AIService struct {
	client *apiclient.Client
}

// InsightsRequest pregunta opcional para enfocar el análisis.
type InsightsRequest struct {
	Question string `json:"question,omitempty"`
}

// Insights genera un resumen y recomendaciones sobre los datos del tenant.
func (s *AIService) Insights(ctx context.Context, question string) (*Insights, error) {
	var insights Insights
	_, err := s.client.Post(ctx, "/ai/insights", InsightsRequest{Question: question}, &insights)
	if err != nil {
		return nil, err
	}
	return &insights, nil
}
