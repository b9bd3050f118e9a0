package sdk

import (
	"context"
	"net/url"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// CustomersService operaciones sobre clientes del CRM.
type CustomersService struct {
	client *apiclient.Client
}

// CustomerListParams filtros de listado de clientes.
type CustomerListParams struct {
	PageParams
	Status string
	Type   string
	Search string
}

// CustomerInput payload de creación/actualización de cliente.
type CustomerInput struct {
	Name    string   `json:"name"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Type    string   `json:"type"`
	Status  string   `json:"status,omitempty"`
	Address Address  `json:"address"`
	Notes   string   `json:"notes,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// List lista clientes con filtros y paginación (respuesta cacheada).
func (s *CustomersService) List(ctx context.Context, params CustomerListParams) ([]Customer, *apiclient.Pagination, error) {
	query := url.Values{}
	params.apply(query)
	setIfNotEmpty(query, "status", params.Status)
	setIfNotEmpty(query, "type", params.Type)
	setIfNotEmpty(query, "search", params.Search)

	var customers []Customer
	resp, err := s.client.Get(ctx, "/customers", query, &customers)
	if err != nil {
		return nil, nil, err
	}
	return customers, resp.Pagination, nil
}

// Get devuelve un cliente por ID.
func (s *CustomersService) Get(ctx context.Context, id string) (*Customer, error) {
	var customer Customer
	_, err := s.client.Get(ctx, "/customers/"+id, nil, &customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create crea un cliente e invalida el cache del recurso.
func (s *CustomersService) Create(ctx context.Context, input CustomerInput) (*Customer, error) {
	var customer Customer
	_, err := s.client.Post(ctx, "/customers", input, &customer)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/customers`)
	return &customer, nil
}

// Update actualiza un cliente e invalida el cache del recurso.
func (s *CustomersService) Update(ctx context.Context, id string, input CustomerInput) (*Customer, error) {
	var customer Customer
	_, err := s.client.Put(ctx, "/customers/"+id, input, &customer)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/customers`)
	return &customer, nil
}

// Delete elimina (archiva) un cliente.
func (s *CustomersService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/customers/"+id, nil)
	if err != nil {
		return err
	}
	_ = s.client.InvalidateCache(`/customers`)
	return nil
}
