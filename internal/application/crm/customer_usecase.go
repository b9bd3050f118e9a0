// Package crm contiene los casos de uso de clientes y trabajos.
package crm

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes con aislamiento por tenant.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create da de alta un cliente. Devuelve ErrDuplicate si el email ya existe
// en el tenant.
func (uc *CustomerUseCase) Create(ctx context.Context, tenantID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" {
		existing, _ := uc.customerRepo.GetByTenantAndEmail(tenantID, email)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	status := in.Status
	if status == "" {
		status = entity.CustomerStatusProspect
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		Email:     email,
		Phone:     in.Phone,
		Type:      in.Type,
		Status:    status,
		Address:   toAddress(in.Address),
		Notes:     in.Notes,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get devuelve un cliente por ID, verificando que pertenezca al tenant.
func (uc *CustomerUseCase) Get(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes del tenant con filtros y paginación.
func (uc *CustomerUseCase) List(ctx context.Context, tenantID string, in dto.ListCustomersRequest) ([]dto.CustomerResponse, dto.Pagination, error) {
	in.DefaultPage()
	filter := repository.CustomerFilter{
		Status: in.Status,
		Type:   in.Type,
		Search: in.Search,
	}
	customers, total, err := uc.customerRepo.ListByTenant(tenantID, filter, in.Limit, in.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, dto.NewPagination(in.Page, in.Limit, total), nil
}

// Update actualiza un cliente del tenant.
func (uc *CustomerUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" && email != customer.Email {
		existing, _ := uc.customerRepo.GetByTenantAndEmail(tenantID, email)
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
	}

	customer.Name = in.Name
	customer.Email = email
	customer.Phone = in.Phone
	customer.Type = in.Type
	if in.Status != "" {
		customer.Status = in.Status
	}
	customer.Address = toAddress(in.Address)
	customer.Notes = in.Notes
	customer.Tags = in.Tags
	customer.UpdatedAt = time.Now()

	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete archiva el cliente (soft delete: conserva el histórico de trabajos
// y facturas que lo referencian).
func (uc *CustomerUseCase) Delete(ctx context.Context, tenantID, id string) error {
	customer, err := uc.getOwned(tenantID, id)
	if err != nil {
		return err
	}
	customer.Status = entity.CustomerStatusArchived
	customer.UpdatedAt = time.Now()
	return uc.customerRepo.Update(customer)
}

func (uc *CustomerUseCase) getOwned(tenantID, id string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func toAddress(in dto.AddressDTO) entity.Address {
	return entity.Address{
		Street:  in.Street,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
		Country: in.Country,
	}
}

func toAddressDTO(in entity.Address) dto.AddressDTO {
	return dto.AddressDTO{
		Street:  in.Street,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
		Country: in.Country,
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		TenantID:  c.TenantID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Type:      c.Type,
		Status:    c.Status,
		Address:   toAddressDTO(c.Address),
		Notes:     c.Notes,
		Tags:      c.Tags,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
