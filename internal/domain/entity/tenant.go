package entity

import "time"

// Planes de suscripción disponibles.
const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Tenant representa una organización aislada del sistema (multi-tenant).
// Todos los datos de negocio están scoped a exactamente un tenant.
type Tenant struct {
	ID        string
	Name      string
	Domain    string
	Plan      string // ver constantes Plan*
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
