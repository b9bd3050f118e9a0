package sdk

import (
	"context"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// DashboardService métricas agregadas del tenant.
type DashboardService struct {
	client *apiclient.Client
}

// Stats devuelve las métricas del dashboard (respuesta cacheada).
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	_, err := s.client.Get(ctx, "/dashboard/stats", nil, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
