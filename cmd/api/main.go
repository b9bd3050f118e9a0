package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jobblox/crm-api/internal/application/analytics"
	"github.com/jobblox/crm-api/internal/application/auth"
	"github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/internal/application/crm"
	"github.com/jobblox/crm-api/internal/application/usecase"
	infraai "github.com/jobblox/crm-api/internal/infrastructure/ai"
	inframail "github.com/jobblox/crm-api/internal/infrastructure/mail"
	infrapdf "github.com/jobblox/crm-api/internal/infrastructure/pdf"
	"github.com/jobblox/crm-api/internal/infrastructure/postgres"
	httpRouter "github.com/jobblox/crm-api/internal/interfaces/http"
	"github.com/jobblox/crm-api/pkg/config"
	"github.com/jobblox/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
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
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	customerUC := crm.NewCustomerUseCase(customerRepo)
	jobUC := crm.NewJobUseCase(jobRepo, customerRepo, employeeRepo)

	mailer := inframail.NewSMTPSender(cfg.Mail)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	estimateUC := billing.NewEstimateUseCase(estimateRepo, invoiceRepo, customerRepo, txRunner, mailer)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, customerRepo, tenantRepo, txRunner, mailer, pdfGenerator)
	paymentUC := billing.NewPaymentUseCase(paymentRepo, invoiceRepo, txRunner)
	pdfUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, tenantRepo, pdfGenerator)

	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, userRepo, txRunner)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	aiUC := usecase.NewAIUseCase(dashboardUC, anthropicSvc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.Features.ErrorReporting,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Jobblox CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		JobUC:       jobUC,
		EstimateUC:  estimateUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		PDFUC:       pdfUC,
		EmployeeUC:  employeeUC,
		UserUC:      userUC,
		DashboardUC: dashboardUC,
		AIUC:        aiUC,
		JWTSecret:   cfg.JWT.Secret,

		EnableAnalytics: cfg.Features.Analytics,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
