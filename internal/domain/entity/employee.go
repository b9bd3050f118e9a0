package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Días de la semana para disponibilidad (claves del mapa Availability).
const (
	DayMonday    = "monday"
	DayTuesday   = "tuesday"
	DayWednesday = "wednesday"
	DayThursday  = "thursday"
	DayFriday    = "friday"
	DaySaturday  = "saturday"
	DaySunday    = "sunday"
)

// Employee extiende un User con datos laborales.
type Employee struct {
	ID             string
	TenantID       string
	UserID         string
	EmployeeNumber string // formato EMP-NNNN
	Department     string
	Position       string
	HourlyRate     decimal.Decimal
	Skills         []string
	Certifications []string
	Availability   map[string][]TimeSlot // día → franjas horarias
	Status         string                // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TimeSlot franja horaria de disponibilidad semanal.
type TimeSlot struct {
	Start     string // "08:00"
	End       string // "17:00"
	Available bool
}
