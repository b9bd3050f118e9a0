package usecase

import (
	"context"
	"time"

	"github.com/jobblox/crm-api/internal/application/auth"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// UserUseCase administración de usuarios del tenant (owner/admin).
// El alta de usuarios pasa por auth.Register (owner) o EmployeeUseCase
// (técnicos); aquí solo se listan, consultan y modifican.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// Get devuelve un usuario por ID, verificando que pertenezca al tenant.
func (uc *UserUseCase) Get(ctx context.Context, tenantID, id string) (*dto.UserResponse, error) {
	user, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios del tenant con filtro opcional por rol.
func (uc *UserUseCase) List(ctx context.Context, tenantID string, in dto.ListUsersRequest) ([]dto.UserResponse, dto.Pagination, error) {
	in.DefaultPage()
	users, total, err := uc.userRepo.ListByTenant(tenantID, in.Role, in.Limit, in.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, dto.NewPagination(in.Page, in.Limit, total), nil
}

// Update modifica nombre, rol, estado y preferencias de un usuario.
// No permite retirar el rol owner si es el último owner activo del tenant.
func (uc *UserUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}

	if in.Role != "" && in.Role != user.Role {
		if !entity.IsValidRole(in.Role) {
			return nil, domain.ErrInvalidInput
		}
		if user.Role == entity.RoleOwner {
			if err := uc.ensureAnotherOwner(tenantID, id); err != nil {
				return nil, err
			}
		}
		user.Role = in.Role
	}
	if in.Status != "" && in.Status != user.Status {
		if user.Role == entity.RoleOwner && in.Status != "active" {
			if err := uc.ensureAnotherOwner(tenantID, id); err != nil {
				return nil, err
			}
		}
		user.Status = in.Status
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	if in.Preferences.Theme != "" {
		user.Preferences.Theme = in.Preferences.Theme
	}
	if in.Preferences.Language != "" {
		user.Preferences.Language = in.Preferences.Language
	}
	if in.Preferences.Timezone != "" {
		user.Preferences.Timezone = in.Preferences.Timezone
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Deactivate desactiva el usuario (soft delete: conserva referencias en
// trabajos y documentos). El último owner activo no puede desactivarse.
func (uc *UserUseCase) Deactivate(ctx context.Context, tenantID, id string) error {
	user, err := uc.getOwned(tenantID, id)
	if err != nil {
		return err
	}
	if user.Role == entity.RoleOwner {
		if err := uc.ensureAnotherOwner(tenantID, id); err != nil {
			return err
		}
	}
	user.Status = "inactive"
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

func (uc *UserUseCase) getOwned(tenantID, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil || user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// ensureAnotherOwner verifica que exista al menos otro owner activo además
// del usuario excluido.
func (uc *UserUseCase) ensureAnotherOwner(tenantID, excludeID string) error {
	owners, _, err := uc.userRepo.ListByTenant(tenantID, entity.RoleOwner, 100, 0)
	if err != nil {
		return err
	}
	for _, o := range owners {
		if o.ID != excludeID && o.Status == "active" {
			return nil
		}
	}
	return domain.ErrConflict
}
