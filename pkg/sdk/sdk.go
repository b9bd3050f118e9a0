// Package sdk expone servicios tipados por recurso sobre el cliente HTTP del
// API: un método por operación, rutas y query strings construidos aquí.
package sdk

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jobblox/crm-api/pkg/apiclient"
	"github.com/jobblox/crm-api/pkg/config"
)

// Options configuración del SDK.
type Options struct {
	BaseURL    string
	Version    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	CacheTTL   time.Duration

	Credentials      apiclient.CredentialStore
	OnSessionExpired func()

	// MockMode reemplaza el transporte real por fixtures locales con latencia
	// artificial. Solo para desarrollo; nunca se cablea en producción.
	MockMode bool

	// Transport transporte explícito; tiene prioridad sobre MockMode.
	Transport apiclient.Doer
}

// SDK agrupa los servicios del API. Construir con New.
type SDK struct {
	client *apiclient.Client

	Auth         *AuthService
	Customers    *CustomersService
	Jobs         *JobsService
	Estimates    *EstimatesService
	Invoices     *InvoicesService
	Payments     *PaymentsService
	Employees    *EmployeesService
	Integrations *IntegrationsService
	AI           *AIService
	Dashboard    *DashboardService
}

// NewFromConfig construye el SDK a partir de la sección CLIENT_* de la
// configuración (base URL, versión, timeout, reintentos, TTL de cache y
// modo mock).
func NewFromConfig(cfg config.ClientConfig) *SDK {
	return New(Options{
		BaseURL:  cfg.BaseURL,
		Version:  cfg.Version,
		Timeout:  cfg.Timeout,
		Retries:  cfg.Retries,
		CacheTTL: cfg.CacheTTL,
		MockMode: cfg.MockAPI,
	})
}

// New construye el SDK. En MockMode el transporte sirve fixtures locales.
func New(opts Options) *SDK {
	transport := opts.Transport
	if transport == nil {
		if opts.MockMode {
			transport = NewFixtureTransport(&http.Client{})
		} else {
			transport = &http.Client{}
		}
	}
	client := apiclient.New(apiclient.Options{
		BaseURL:          opts.BaseURL,
		Version:          opts.Version,
		Timeout:          opts.Timeout,
		Retries:          opts.Retries,
		RetryDelay:       opts.RetryDelay,
		CacheTTL:         opts.CacheTTL,
		Credentials:      opts.Credentials,
		Transport:        transport,
		OnSessionExpired: opts.OnSessionExpired,
	})
	s := &SDK{client: client}
	s.Auth = &AuthService{client: client}
	s.Customers = &CustomersService{client: client}
	s.Jobs = &JobsService{client: client}
	s.Estimates = &EstimatesService{client: client}
	s.Invoices = &InvoicesService{client: client}
	s.Payments = &PaymentsService{client: client}
	s.Employees = &EmployeesService{client: client}
	s.Integrations = &IntegrationsService{client: client}
	s.AI = &AIService{client: client}
	s.Dashboard = &DashboardService{client: client}
	return s
}

// Client acceso al cliente HTTP subyacente (cache, sesión).
func (s *SDK) Client() *apiclient.Client { return s.client }

// ── Paginación ────────────────────────────────────────────────────────────────

// PageParams parámetros comunes de listado.
type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) apply(q url.Values) {
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
