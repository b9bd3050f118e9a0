package entity

import "time"

// Roles válidos para User. Enumeración canónica única para toda la aplicación.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleCustomer = "customer"
)

// ValidRoles roles aceptados en registro y actualización de usuarios.
var ValidRoles = []string{RoleOwner, RoleAdmin, RoleManager, RoleEmployee, RoleCustomer}

// IsValidRole verifica que el rol pertenezca a la enumeración canónica.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa un usuario del sistema (pertenece a un Tenant).
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // ver constantes Role*
	Status       string // active, inactive, suspended
	Preferences  UserPreferences
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPreferences preferencias de UI/notificaciones del usuario.
type UserPreferences struct {
	Theme    string // light, dark, system
	Language string
	Timezone string
}
