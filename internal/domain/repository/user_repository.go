package repository

import "github.com/jobblox/crm-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndTenant(email, tenantID string) (*entity.User, error)
	ListByTenant(tenantID string, role string, limit, offset int) ([]*entity.User, int, error)
	Update(user *entity.User) error
	Delete(id string) error
}
