package sdk

import (
	"context"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// IntegrationsService conexiones con servicios externos.
type IntegrationsService struct {
	client *apiclient.Client
}

// ConnectIntegrationRequest alta de una integración.
type ConnectIntegrationRequest struct {
	Provider string            `json:"provider"`
	Config   map[string]string `json:"config,omitempty"`
}

// List lista las integraciones del tenant.
func (s *IntegrationsService) List(ctx context.Context) ([]Integration, error) {
	var integrations []Integration
	_, err := s.client.Get(ctx, "/integrations", nil, &integrations)
	if err != nil {
		return nil, err
	}
	return integrations, nil
}

// Connect conecta un proveedor externo.
func (s *IntegrationsService) Connect(ctx context.Context, req ConnectIntegrationRequest) (*Integration, error) {
	var integration Integration
	_, err := s.client.Post(ctx, "/integrations", req, &integration)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/integrations`)
	return &integration, nil
}

// Sync dispara una sincronización manual de la integración.
func (s *IntegrationsService) Sync(ctx context.Context, id string) (*Integration, error) {
	var integration Integration
	_, err := s.client.Post(ctx, "/integrations/"+id+"/sync", nil, &integration)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/integrations`)
	return &integration, nil
}

// Disconnect desconecta la integración.
func (s *IntegrationsService) Disconnect(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/integrations/"+id, nil)
	if err != nil {
		return err
	}
	_ = s.client.InvalidateCache(`/integrations`)
	return nil
}
