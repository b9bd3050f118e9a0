package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobblox/crm-api/internal/application/analytics"
	"github.com/jobblox/crm-api/internal/application/auth"
	"github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/internal/application/crm"
	"github.com/jobblox/crm-api/internal/application/usecase"
	"github.com/jobblox/crm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *crm.CustomerUseCase
	JobUC       *crm.JobUseCase
	EstimateUC  *billing.EstimateUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PaymentUC   *billing.PaymentUseCase
	PDFUC       *billing.PDFUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *analytics.DashboardUseCase
	AIUC        *usecase.AIUseCase
	JWTSecret   string

	// EnableAnalytics controla el registro de /dashboard/stats y /ai/insights
	// (flag ENABLE_ANALYTICS).
	EnableAnalytics bool
}

// Router registra las rutas de la API bajo /api/v1.
//
// Política de roles:
//   - jobs: cualquier usuario autenticado (los técnicos consultan sus trabajos)
//   - customers, estimates, invoices, payments, dashboard, ai: owner/admin/manager
//   - employees, users: owner/admin
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (login/register públicos; el resto requiere token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", AuthMiddleware(deps.JWTSecret), authHandler.Refresh)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	managers := RequireRole(entity.RoleOwner, entity.RoleAdmin, entity.RoleManager)
	admins := RequireRole(entity.RoleOwner, entity.RoleAdmin)

	// Customers (owner/admin/manager)
	customers := protected.Group("/customers", managers)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Jobs (cualquier autenticado)
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.Get)
	jobs.Put("/:id", jobHandler.Update)
	jobs.Patch("/:id/status", jobHandler.UpdateStatus)
	jobs.Patch("/:id/assign", jobHandler.Assign)
	jobs.Delete("/:id", jobHandler.Delete)

	// Estimates (owner/admin/manager)
	estimates := protected.Group("/estimates", managers)
	estimateHandler := NewEstimateHandler(deps.EstimateUC)
	estimates.Post("/", estimateHandler.Create)
	estimates.Get("/", estimateHandler.List)
	estimates.Get("/:id", estimateHandler.Get)
	estimates.Put("/:id", estimateHandler.Update)
	estimates.Post("/:id/send", estimateHandler.Send)
	estimates.Post("/:id/approve", estimateHandler.Approve)
	estimates.Delete("/:id", estimateHandler.Delete)

	// Invoices (owner/admin/manager)
	invoices := protected.Group("/invoices", managers)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Post("/:id/send", invoiceHandler.Send)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Payments (owner/admin/manager)
	payments := protected.Group("/payments", managers)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.Get)
	payments.Post("/:id/process", paymentHandler.Process)
	payments.Post("/:id/refund", paymentHandler.Refund)

	// Employees (owner/admin)
	employees := protected.Group("/employees", admins)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.Get)
	employees.Put("/:id", employeeHandler.Update)
	employees.Post("/:id/deactivate", employeeHandler.Deactivate)

	// Users (owner/admin)
	users := protected.Group("/users", admins)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Dashboard y AI (owner/admin/manager), detrás del flag de analytics
	if deps.EnableAnalytics {
		dashboardHandler := NewDashboardHandler(deps.DashboardUC)
		protected.Get("/dashboard/stats", managers, dashboardHandler.Stats)

		aiHandler := NewAIHandler(deps.AIUC)
		protected.Post("/ai/insights", managers, aiHandler.Insights)
	}
}
