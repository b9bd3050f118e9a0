package entity

import "time"

// Tipos de trabajo.
const (
	JobTypeInstallation = "installation"
	JobTypeRepair       = "repair"
	JobTypeMaintenance  = "maintenance"
	JobTypeConsultation = "consultation"
	JobTypeEmergency    = "emergency"
)

// Estados del ciclo de vida de un Job.
// Flujo principal: draft → scheduled → in_progress → completed.
// Estados laterales: cancelled y on_hold.
const (
	JobStatusDraft      = "draft"
	JobStatusScheduled  = "scheduled"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
	JobStatusOnHold     = "on_hold"
)

// Prioridades de trabajo.
const (
	JobPriorityLow    = "low"
	JobPriorityMedium = "medium"
	JobPriorityHigh   = "high"
	JobPriorityUrgent = "urgent"
)

// jobTransitions tabla de transiciones válidas de estado.
var jobTransitions = map[string][]string{
	JobStatusDraft:      {JobStatusScheduled, JobStatusCancelled},
	JobStatusScheduled:  {JobStatusInProgress, JobStatusOnHold, JobStatusCancelled},
	JobStatusInProgress: {JobStatusCompleted, JobStatusOnHold, JobStatusCancelled},
	JobStatusOnHold:     {JobStatusScheduled, JobStatusInProgress, JobStatusCancelled},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

// CanTransitionJob indica si el cambio de estado from → to está permitido.
func CanTransitionJob(from, to string) bool {
	for _, next := range jobTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Job representa una unidad de trabajo asociada a un Customer.
type Job struct {
	ID             string
	TenantID       string
	CustomerID     string
	Title          string
	Description    string
	Type           string // ver constantes JobType*
	Status         string // ver constantes JobStatus*
	Priority       string // ver constantes JobPriority*
	ScheduledDate  *time.Time
	StartDate      *time.Time
	EndDate        *time.Time
	EstimatedHours float64
	ActualHours    float64
	AssignedTo     []string // IDs de Employee
	Location       Address
	Notes          string
	Tags           []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
