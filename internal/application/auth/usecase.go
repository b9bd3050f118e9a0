package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
	"github.com/jobblox/crm-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// BootstrapTxRunner ejecuta el alta tenant+owner dentro de una transacción:
// si falla la creación del usuario, el tenant no queda huérfano.
type BootstrapTxRunner interface {
	RunBootstrap(ctx context.Context, fn func(
		tenantRepo repository.TenantRepository,
		userRepo repository.UserRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh y perfil.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	txRunner   BootstrapTxRunner
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, txRunner BootstrapTxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tenantRepo: tenantRepo, txRunner: txRunner, jwtCfg: jwtCfg}
}

// Register crea tenant y usuario owner en una sola transacción y abre sesión.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, _ := uc.userRepo.FindByEmail(email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      in.TenantName,
		Plan:      entity.PlanFree,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenant.ID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         entity.RoleOwner,
		Status:       "active",
		Preferences: entity.UserPreferences{
			Theme:    "system",
			Language: "en",
			Timezone: "UTC",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.RunBootstrap(ctx, func(tenantRepo repository.TenantRepository, userRepo repository.UserRepository) error {
		if err := tenantRepo.Create(tenant); err != nil {
			return err
		}
		return userRepo.Create(user)
	})
	if err != nil {
		return nil, err
	}

	return uc.newSession(user)
}

// Login verifica email/password y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	// Email desconocido y contraseña incorrecta responden el mismo error:
	// un 404 aquí permitiría enumerar los emails registrados.
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	_ = uc.userRepo.Update(user)

	return uc.newSession(user)
}

// Refresh emite un token nuevo para la sesión vigente.
func (uc *AuthUseCase) Refresh(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	return uc.newSession(user)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

func (uc *AuthUseCase) newSession(user *entity.User) (*dto.SessionResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      *ToUserResponse(user),
	}, nil
}

// ToUserResponse convierte la entidad a DTO de respuesta (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Status:    u.Status,
		Preferences: dto.PreferencesDTO{
			Theme:    u.Preferences.Theme,
			Language: u.Preferences.Language,
			Timezone: u.Preferences.Timezone,
		},
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
