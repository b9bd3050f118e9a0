// seed puebla la base de datos con un tenant de demostración completo:
// usuarios, clientes, trabajos, cotizaciones, facturas y pagos.
//
// Uso: go run ./cmd/seed
// Idempotencia: si el owner demo ya existe, el seed aborta sin tocar nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/infrastructure/postgres"
	"github.com/jobblox/crm-api/pkg/config"
)

const (
	demoOwnerEmail    = "owner@acmeservices.demo"
	demoOwnerPassword = "Demo1234!"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fatal("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	estimateRepo := postgres.NewEstimateRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)

	// Guard de idempotencia: no duplicar el tenant demo
	if existing, err := userRepo.FindByEmail(demoOwnerEmail); err != nil {
		fatal("verificar owner demo: %v", err)
	} else if existing != nil {
		fmt.Println("El tenant demo ya existe; nada que hacer.")
		return
	}

	now := time.Now()

	// ── Tenant ────────────────────────────────────────────────────────────
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      "Acme Field Services",
		Domain:    "acmeservices.demo",
		Plan:      entity.PlanProfessional,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tenantRepo.Create(tenant); err != nil {
		fatal("crear tenant: %v", err)
	}

	// ── Usuarios ──────────────────────────────────────────────────────────
	owner := mustUser(tenant.ID, demoOwnerEmail, demoOwnerPassword, "Alice", "Mendoza", entity.RoleOwner)
	if err := userRepo.Create(owner); err != nil {
		fatal("crear owner: %v", err)
	}
	manager := mustUser(tenant.ID, "manager@acmeservices.demo", demoOwnerPassword, "Bruno", "Castro", entity.RoleManager)
	if err := userRepo.Create(manager); err != nil {
		fatal("crear manager: %v", err)
	}

	// ── Técnicos (User + Employee) ────────────────────────────────────────
	techSpecs := []struct {
		email, first, last, position string
		rate                         string
		skills                       []string
	}{
		{"carla@acmeservices.demo", "Carla", "Ríos", "Senior Technician", "45.00", []string{"hvac", "electrical"}},
		{"diego@acmeservices.demo", "Diego", "Paredes", "Technician", "32.50", []string{"plumbing"}},
	}
	var techs []*entity.Employee
	for i, spec := range techSpecs {
		u := mustUser(tenant.ID, spec.email, demoOwnerPassword, spec.first, spec.last, entity.RoleEmployee)
		if err := userRepo.Create(u); err != nil {
			fatal("crear usuario técnico: %v", err)
		}
		emp := &entity.Employee{
			ID:             uuid.New().String(),
			TenantID:       tenant.ID,
			UserID:         u.ID,
			EmployeeNumber: fmt.Sprintf("EMP-%04d", i+1),
			Department:     "Field Operations",
			Position:       spec.position,
			HourlyRate:     decimal.RequireFromString(spec.rate),
			Skills:         spec.skills,
			Availability:   weekdayAvailability(),
			Status:         "active",
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := employeeRepo.Create(emp); err != nil {
			fatal("crear técnico: %v", err)
		}
		techs = append(techs, emp)
	}

	// ── Clientes ──────────────────────────────────────────────────────────
	customers := []*entity.Customer{
		demoCustomer(tenant.ID, "Northside Bakery", "contact@northsidebakery.demo", "555-0101",
			entity.CustomerTypeCommercial, "412 Oak Street", "Springfield", []string{"vip", "recurring"}),
		demoCustomer(tenant.ID, "Maria Lopez", "maria.lopez@example.demo", "555-0102",
			entity.CustomerTypeResidential, "87 Elm Avenue", "Springfield", []string{"residential"}),
		demoCustomer(tenant.ID, "Ironworks Ltd", "ops@ironworks.demo", "555-0103",
			entity.CustomerTypeIndustrial, "1 Foundry Road", "Shelbyville", nil),
	}
	for _, c := range customers {
		if err := customerRepo.Create(c); err != nil {
			fatal("crear cliente: %v", err)
		}
	}

	// ── Trabajos ──────────────────────────────────────────────────────────
	scheduled := now.AddDate(0, 0, 3)
	job := &entity.Job{
		ID:             uuid.New().String(),
		TenantID:       tenant.ID,
		CustomerID:     customers[0].ID,
		Title:          "HVAC quarterly maintenance",
		Description:    "Full inspection and filter replacement for the rooftop units.",
		Type:           entity.JobTypeMaintenance,
		Status:         entity.JobStatusScheduled,
		Priority:       entity.JobPriorityMedium,
		ScheduledDate:  &scheduled,
		EstimatedHours: 4,
		AssignedTo:     []string{techs[0].ID},
		Location:       customers[0].Address,
		Tags:           []string{"hvac"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := jobRepo.Create(job); err != nil {
		fatal("crear trabajo: %v", err)
	}

	// ── Cotización aprobada + factura + pago parcial ──────────────────────
	items := []entity.LineItem{
		lineItem("HVAC maintenance labor", "4", "hours", "85.00"),
		lineItem("Air filters (MERV 13)", "6", "each", "24.50"),
	}
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	tax := subtotal.Mul(decimal.RequireFromString("0.08")).Round(2)
	total := subtotal.Add(tax)

	estNumber, err := estimateRepo.NextNumber(tenant.ID, now.Year())
	if err != nil {
		fatal("consecutivo de cotización: %v", err)
	}
	approvedAt := now.AddDate(0, 0, -7)
	estimate := &entity.Estimate{
		ID:         uuid.New().String(),
		TenantID:   tenant.ID,
		CustomerID: customers[0].ID,
		JobID:      job.ID,
		Number:     estNumber,
		Title:      "HVAC quarterly maintenance",
		Status:     entity.EstimateStatusApproved,
		Items:      items,
		Subtotal:   subtotal,
		Tax:        tax,
		Discount:   decimal.Zero,
		Total:      total,
		ValidUntil: now.AddDate(0, 1, 0),
		SentAt:     &approvedAt,
		ApprovedAt: &approvedAt,
		CreatedAt:  approvedAt,
		UpdatedAt:  now,
	}
	if err := estimateRepo.Create(estimate); err != nil {
		fatal("crear cotización: %v", err)
	}

	invNumber, err := invoiceRepo.NextNumber(tenant.ID, now.Year())
	if err != nil {
		fatal("consecutivo de factura: %v", err)
	}
	paid := decimal.RequireFromString("150.00")
	sentAt := now.AddDate(0, 0, -5)
	invoice := &entity.Invoice{
		ID:         uuid.New().String(),
		TenantID:   tenant.ID,
		CustomerID: customers[0].ID,
		JobID:      job.ID,
		EstimateID: estimate.ID,
		Number:     invNumber,
		Title:      estimate.Title,
		Status:     entity.InvoiceStatusPartial,
		Items:      items,
		Subtotal:   subtotal,
		Tax:        tax,
		Discount:   decimal.Zero,
		Total:      total,
		PaidAmount: paid,
		BalanceDue: total.Sub(paid),
		IssueDate:  sentAt,
		DueDate:    sentAt.AddDate(0, 0, 30),
		SentAt:     &sentAt,
		Terms:      "Net 30",
		CreatedAt:  sentAt,
		UpdatedAt:  now,
	}
	if err := invoiceRepo.Create(invoice); err != nil {
		fatal("crear factura: %v", err)
	}

	paidAt := now.AddDate(0, 0, -2)
	payment := &entity.Payment{
		ID:         uuid.New().String(),
		TenantID:   tenant.ID,
		InvoiceID:  invoice.ID,
		CustomerID: customers[0].ID,
		Amount:     paid,
		Method:     entity.PaymentMethodCard,
		Status:     entity.PaymentStatusCompleted,
		Reference:  "**** 4242",
		PaidAt:     &paidAt,
		CreatedAt:  paidAt,
		UpdatedAt:  paidAt,
	}
	if err := paymentRepo.Create(payment); err != nil {
		fatal("crear pago: %v", err)
	}

	fmt.Println("Seed completado.")
	fmt.Printf("  Tenant:  %s (%s)\n", tenant.Name, tenant.ID)
	fmt.Printf("  Login:   %s / %s\n", demoOwnerEmail, demoOwnerPassword)
	fmt.Printf("  Factura: %s (saldo %s)\n", invoice.Number, invoice.BalanceDue.StringFixed(2))
}

func mustUser(tenantID, email, password, first, last, role string) *entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fatal("hash de contraseña: %v", err)
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		Role:         role,
		Status:       "active",
		Preferences: entity.UserPreferences{
			Theme:    "system",
			Language: "en",
			Timezone: "America/New_York",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func demoCustomer(tenantID, name, email, phone, ctype, street, city string, tags []string) *entity.Customer {
	now := time.Now()
	return &entity.Customer{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Type:     ctype,
		Status:   entity.CustomerStatusActive,
		Address: entity.Address{
			Street:  street,
			City:    city,
			State:   "IL",
			ZipCode: "62704",
			Country: "US",
		},
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func lineItem(description, qty, unit, unitPrice string) entity.LineItem {
	q := decimal.RequireFromString(qty)
	p := decimal.RequireFromString(unitPrice)
	return entity.LineItem{
		ID:          uuid.New().String(),
		Description: description,
		Quantity:    q,
		Unit:        unit,
		UnitPrice:   p,
		Total:       q.Mul(p).Round(2),
		Taxable:     true,
	}
}

// weekdayAvailability lunes a viernes 08:00-17:00.
func weekdayAvailability() map[string][]entity.TimeSlot {
	slot := entity.TimeSlot{Start: "08:00", End: "17:00", Available: true}
	return map[string][]entity.TimeSlot{
		entity.DayMonday:    {slot},
		entity.DayTuesday:   {slot},
		entity.DayWednesday: {slot},
		entity.DayThursday:  {slot},
		entity.DayFriday:    {slot},
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
