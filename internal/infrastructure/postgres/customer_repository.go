package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, name, email, phone, type, status,
	address_street, address_city, address_state, address_zip, address_country,
	notes, tags, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.TenantID, customer.Name, customer.Email, customer.Phone,
		customer.Type, customer.Status,
		customer.Address.Street, customer.Address.City, customer.Address.State,
		customer.Address.ZipCode, customer.Address.Country,
		customer.Notes, customer.Tags, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByTenantAndEmail busca un cliente por email dentro de un tenant.
func (r *CustomerRepo) GetByTenantAndEmail(tenantID, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1 AND email = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, tenantID, email))
}

// ListByTenant lista clientes del tenant con filtros y paginación.
// Search busca por coincidencia parcial en nombre, email y teléfono.
func (r *CustomerRepo) ListByTenant(tenantID string, filter repository.CustomerFilter, limit, offset int) ([]*entity.Customer, int, error) {
	where := `WHERE tenant_id = $1`
	args := []any{tenantID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)`, len(args), len(args), len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM customers `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM customers %s ORDER BY name LIMIT $%d OFFSET $%d`,
		customerColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, type = $5, status = $6,
		    address_street = $7, address_city = $8, address_state = $9,
		    address_zip = $10, address_country = $11,
		    notes = $12, tags = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.Type, customer.Status,
		customer.Address.Street, customer.Address.City, customer.Address.State,
		customer.Address.ZipCode, customer.Address.Country,
		customer.Notes, customer.Tags, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
// El caso de uso usa archivado lógico; este método existe para limpieza administrativa.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) scanOne(row pgx.Row) (*entity.Customer, error) {
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.Type, &c.Status,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.ZipCode, &c.Address.Country,
		&c.Notes, &c.Tags, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return &c, nil
}
