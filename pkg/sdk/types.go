package sdk

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de wire del API. Los campos siguen el formato JSON del servidor
// (camelCase); los montos viajan como decimales con precisión exacta.

// User usuario autenticado.
type User struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenantId"`
	Email       string          `json:"email"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Role        string          `json:"role"`
	Status      string          `json:"status"`
	Preferences UserPreferences `json:"preferences"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// UserPreferences preferencias de UI del usuario.
type UserPreferences struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
	Timezone string `json:"timezone"`
}

// Session resultado de login/refresh: token + usuario.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// Address dirección física.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Customer cliente del CRM.
type Customer struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Address   Address   `json:"address"`
	Notes     string    `json:"notes,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Job trabajo asociado a un cliente.
type Job struct {
	ID             string     `json:"id"`
	TenantID       string     `json:"tenantId"`
	CustomerID     string     `json:"customerId"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	ScheduledDate  *time.Time `json:"scheduledDate,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	EstimatedHours float64    `json:"estimatedHours,omitempty"`
	ActualHours    float64    `json:"actualHours,omitempty"`
	AssignedTo     []string   `json:"assignedTo,omitempty"`
	Location       Address    `json:"location"`
	Notes          string     `json:"notes,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// LineItem renglón de estimado o factura.
type LineItem struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Taxable     bool            `json:"taxable"`
	Total       decimal.Decimal `json:"total"`
}

// Estimate estimado/cotización.
type Estimate struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenantId"`
	CustomerID string          `json:"customerId"`
	JobID      string          `json:"jobId,omitempty"`
	Number     string          `json:"number"`
	Status     string          `json:"status"`
	Items      []LineItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
	ValidUntil *time.Time      `json:"validUntil,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Invoice factura.
type Invoice struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenantId"`
	CustomerID string          `json:"customerId"`
	JobID      string          `json:"jobId,omitempty"`
	Number     string          `json:"number"`
	Status     string          `json:"status"`
	Items      []LineItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	BalanceDue decimal.Decimal `json:"balanceDue"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// InvoicePDF documento PDF generado por el servidor (content en base64).
type InvoicePDF struct {
	FileName string `json:"fileName"`
	Content  []byte `json:"content"`
}

// Payment pago registrado contra una factura.
type Payment struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenantId"`
	InvoiceID  string          `json:"invoiceId"`
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Status     string          `json:"status"`
	Reference  string          `json:"reference,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	PaidAt     *time.Time      `json:"paidAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// TimeSlot franja horaria de disponibilidad.
type TimeSlot struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`
}

// Employee empleado del tenant.
type Employee struct {
	ID             string                `json:"id"`
	TenantID       string                `json:"tenantId"`
	UserID         string                `json:"userId"`
	EmployeeNumber string                `json:"employeeNumber"`
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone,omitempty"`
	Department     string                `json:"department,omitempty"`
	Position       string                `json:"position,omitempty"`
	HourlyRate     decimal.Decimal       `json:"hourlyRate"`
	Skills         []string              `json:"skills,omitempty"`
	Availability   map[string][]TimeSlot `json:"availability,omitempty"`
	Status         string                `json:"status"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// Integration conexión con un servicio externo (QuickBooks, Stripe, etc.).
type Integration struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenantId"`
	Provider     string     `json:"provider"`
	Status       string     `json:"status"` // connected, disconnected, error
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// DashboardStats métricas agregadas del tenant.
type DashboardStats struct {
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	JobsByStatus       map[string]int  `json:"jobsByStatus"`
	TopCustomers       []TopCustomer   `json:"topCustomers"`
}

// TopCustomer cliente con mayor facturación.
type TopCustomer struct {
	CustomerID string          `json:"customerId"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// Insights análisis generado por el asistente de IA.
type Insights struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	GeneratedAt     string   `json:"generatedAt"`
}
