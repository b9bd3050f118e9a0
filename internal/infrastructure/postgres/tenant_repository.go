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

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación de TenantRepository (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un nuevo tenant.
func (r *TenantRepo) Create(tenant *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, domain, plan, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		tenant.ID, tenant.Name, nullIfEmpty(tenant.Domain), tenant.Plan, tenant.Status,
		tenant.CreatedAt, tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	query := `
		SELECT id, name, COALESCE(domain, ''), plan, status, created_at, updated_at
		FROM tenants WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByDomain obtiene un tenant por su dominio.
func (r *TenantRepo) GetByDomain(dom string) (*entity.Tenant, error) {
	query := `
		SELECT id, name, COALESCE(domain, ''), plan, status, created_at, updated_at
		FROM tenants WHERE domain = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, dom))
}

// List lista tenants con paginación (uso administrativo).
func (r *TenantRepo) List(limit, offset int) ([]*entity.Tenant, error) {
	query := `
		SELECT id, name, COALESCE(domain, ''), plan, status, created_at, updated_at
		FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tenant
	for rows.Next() {
		var t entity.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Domain, &t.Plan, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza un tenant.
func (r *TenantRepo) Update(tenant *entity.Tenant) error {
	query := `
		UPDATE tenants SET name = $2, domain = $3, plan = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tenant.ID, tenant.Name, nullIfEmpty(tenant.Domain), tenant.Plan, tenant.Status, tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

func (r *TenantRepo) scanOne(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Domain, &t.Plan, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}
