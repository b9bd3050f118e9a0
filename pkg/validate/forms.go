package validate

// Esquemas de formularios compartidos entre el SDK y los handlers HTTP.
// Cada struct es un esquema declarativo: las reglas viven en los tags.

// LoginForm credenciales de inicio de sesión.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterForm registro de tenant + usuario owner.
type RegisterForm struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	TenantName      string `json:"tenantName" validate:"required"`
}

// AddressForm dirección opcional anidada.
type AddressForm struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// CustomerForm alta/edición de cliente.
type CustomerForm struct {
	Name    string       `json:"name" validate:"required"`
	Email   string       `json:"email" validate:"omitempty,email"`
	Phone   string       `json:"phone" validate:"omitempty,phone"`
	Type    string       `json:"type" validate:"required,oneof=residential commercial industrial"`
	Address *AddressForm `json:"address"`
	Notes   string       `json:"notes"`
}

// JobForm alta/edición de trabajo.
type JobForm struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	CustomerID     string   `json:"customerId" validate:"required"`
	Type           string   `json:"type" validate:"omitempty,oneof=installation repair maintenance consultation emergency"`
	Status         string   `json:"status" validate:"required,oneof=draft scheduled in_progress completed cancelled on_hold"`
	Priority       string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	ScheduledDate  string   `json:"scheduledDate"`
	EstimatedHours float64  `json:"estimatedHours" validate:"gte=0"`
	AssignedTo     []string `json:"assignedTo"`
	Tags           []string `json:"tags"`
}

// LineItemForm línea de factura o cotización.
type LineItemForm struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"min=1"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

// InvoiceForm alta de factura.
type InvoiceForm struct {
	CustomerID string         `json:"customerId" validate:"required"`
	JobID      string         `json:"jobId"`
	Items      []LineItemForm `json:"items" validate:"min=1,dive"`
	DueDate    string         `json:"dueDate"`
	TaxRate    float64        `json:"taxRate" validate:"gte=0,lte=1"`
	Notes      string         `json:"notes"`
}
