package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// StaffTxRunner ejecuta el alta usuario+empleado dentro de una transacción.
type StaffTxRunner interface {
	RunStaff(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		employeeRepo repository.EmployeeRepository,
	) error) error
}

// EmployeeUseCase gestión de empleados. El alta crea también el usuario del
// empleado (rol employee) en la misma transacción.
type EmployeeUseCase struct {
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	txRunner     StaffTxRunner
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(employeeRepo repository.EmployeeRepository, userRepo repository.UserRepository, txRunner StaffTxRunner) *EmployeeUseCase {
	return &EmployeeUseCase{employeeRepo: employeeRepo, userRepo: userRepo, txRunner: txRunner}
}

// Create da de alta un empleado y su usuario en una sola transacción.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *EmployeeUseCase) Create(ctx context.Context, tenantID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, _ := uc.userRepo.FindByEmail(email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Consecutivo EMP-NNNN a partir del total actual del tenant.
	_, total, err := uc.employeeRepo.ListByTenant(tenantID, repository.EmployeeFilter{}, 1, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         entity.RoleEmployee,
		Status:       "active",
		Preferences: entity.UserPreferences{
			Theme:    "system",
			Language: "en",
			Timezone: "UTC",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	employee := &entity.Employee{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		UserID:         user.ID,
		EmployeeNumber: fmt.Sprintf("EMP-%04d", total+1),
		Department:     in.Department,
		Position:       in.Position,
		HourlyRate:     in.HourlyRate,
		Skills:         in.Skills,
		Availability:   toAvailability(in.Availability),
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunStaff(ctx, func(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		return employeeRepo.Create(employee)
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee, user), nil
}

// Get devuelve un empleado del tenant con los datos de su usuario.
func (uc *EmployeeUseCase) Get(ctx context.Context, tenantID, id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(employee.UserID)
	if err != nil || user == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(employee, user), nil
}

// List lista empleados del tenant con filtros y paginación.
func (uc *EmployeeUseCase) List(ctx context.Context, tenantID string, in dto.ListEmployeesRequest) ([]dto.EmployeeResponse, dto.Pagination, error) {
	in.DefaultPage()
	filter := repository.EmployeeFilter{Status: in.Status, Department: in.Department}
	employees, total, err := uc.employeeRepo.ListByTenant(tenantID, filter, in.Limit, in.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		user, err := uc.userRepo.GetByID(e.UserID)
		if err != nil || user == nil {
			continue
		}
		out = append(out, *toEmployeeResponse(e, user))
	}
	return out, dto.NewPagination(in.Page, in.Limit, total), nil
}

// Update actualiza los datos laborales y de contacto del empleado.
func (uc *EmployeeUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(employee.UserID)
	if err != nil || user == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.UpdatedAt = now

	employee.Department = in.Department
	employee.Position = in.Position
	employee.HourlyRate = in.HourlyRate
	employee.Skills = in.Skills
	employee.Availability = toAvailability(in.Availability)
	employee.UpdatedAt = now

	err = uc.txRunner.RunStaff(ctx, func(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) error {
		if err := userRepo.Update(user); err != nil {
			return err
		}
		return employeeRepo.Update(employee)
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee, user), nil
}

// Deactivate desactiva al empleado y su usuario (conserva el histórico).
func (uc *EmployeeUseCase) Deactivate(ctx context.Context, tenantID, id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(employee.UserID)
	if err != nil || user == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	employee.Status = "inactive"
	employee.UpdatedAt = now
	user.Status = "inactive"
	user.UpdatedAt = now

	err = uc.txRunner.RunStaff(ctx, func(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) error {
		if err := userRepo.Update(user); err != nil {
			return err
		}
		return employeeRepo.Update(employee)
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee, user), nil
}

func (uc *EmployeeUseCase) getOwned(tenantID, id string) (*entity.Employee, error) {
	employee, err := uc.employeeRepo.GetByID(id)
	if err != nil || employee == nil {
		return nil, domain.ErrNotFound
	}
	if employee.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return employee, nil
}

func toAvailability(in map[string][]dto.TimeSlotDTO) map[string][]entity.TimeSlot {
	if in == nil {
		return nil
	}
	out := make(map[string][]entity.TimeSlot, len(in))
	for day, slots := range in {
		converted := make([]entity.TimeSlot, 0, len(slots))
		for _, s := range slots {
			converted = append(converted, entity.TimeSlot{Start: s.Start, End: s.End, Available: s.Available})
		}
		out[day] = converted
	}
	return out
}

func toAvailabilityDTO(in map[string][]entity.TimeSlot) map[string][]dto.TimeSlotDTO {
	if in == nil {
		return nil
	}
	out := make(map[string][]dto.TimeSlotDTO, len(in))
	for day, slots := range in {
		converted := make([]dto.TimeSlotDTO, 0, len(slots))
		for _, s := range slots {
			converted = append(converted, dto.TimeSlotDTO{Start: s.Start, End: s.End, Available: s.Available})
		}
		out[day] = converted
	}
	return out
}

func toEmployeeResponse(e *entity.Employee, u *entity.User) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:             e.ID,
		TenantID:       e.TenantID,
		UserID:         e.UserID,
		EmployeeNumber: e.EmployeeNumber,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Department:     e.Department,
		Position:       e.Position,
		HourlyRate:     e.HourlyRate,
		Skills:         e.Skills,
		Availability:   toAvailabilityDTO(e.Availability),
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
	}
}
