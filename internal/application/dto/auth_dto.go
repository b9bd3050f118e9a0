package dto

import "time"

// RegisterRequest alta de tenant + usuario owner en una sola operación.
type RegisterRequest struct {
	TenantName      string `json:"tenantName" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required,max=50"`
	LastName        string `json:"lastName" validate:"required,max=50"`
}

// LoginRequest credenciales de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse usuario en respuestas (sin hash de password).
type UserResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenantId"`
	Email       string          `json:"email"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Role        string          `json:"role"`
	Status      string          `json:"status"`
	Preferences PreferencesDTO  `json:"preferences"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PreferencesDTO preferencias de UI del usuario.
type PreferencesDTO struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
	Timezone string `json:"timezone"`
}

// SessionResponse resultado de login/register/refresh.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
