package sdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobblox/crm-api/pkg/apiclient"
	"github.com/jobblox/crm-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// recordingServer captura método, path y query de cada request recibido.
type recordingServer struct {
	*httptest.Server
	method string
	path   string
	query  string
	auth   string
}

func newRecordingServer(body string) *recordingServer {
	s := &recordingServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.method = r.Method
		s.path = r.URL.Path
		s.query = r.URL.RawQuery
		s.auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	return s
}

func newTestSDK(baseURL string) *SDK {
	return New(Options{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		Retries:    1,
		RetryDelay: time.Millisecond,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción de rutas y query strings
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: List arma la ruta versionada con filtros y paginación.
func TestCustomers_ListArmaRutaYQuery(t *testing.T) {
	server := newRecordingServer(`{"success":true,"data":[],"pagination":{"page":2,"limit":10,"total":0,"totalPages":0}}`)
	defer server.Close()

	s := newTestSDK(server.URL)
	_, pagination, err := s.Customers.List(context.Background(), CustomerListParams{
		PageParams: PageParams{Page: 2, Limit: 10},
		Status:     "active",
		Search:     "acme",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/customers", server.path)
	assert.Contains(t, server.query, "status=active")
	assert.Contains(t, server.query, "search=acme")
	assert.Contains(t, server.query, "page=2")
	assert.Contains(t, server.query, "limit=10")
	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Page)
}

// Caso 2: Las acciones de recurso usan subrutas.
func TestJobs_UpdateStatusUsaSubruta(t *testing.T) {
	server := newRecordingServer(`{"success":true,"data":{"id":"j-1","status":"scheduled"}}`)
	defer server.Close()

	s := newTestSDK(server.URL)
	job, err := s.Jobs.UpdateStatus(context.Background(), "j-1", "scheduled")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, server.method)
	assert.Equal(t, "/v1/jobs/j-1/status", server.path)
	assert.Equal(t, "scheduled", job.Status)
}

// Caso 3: Approve de estimado devuelve la factura generada.
func TestEstimates_ApproveDevuelveFactura(t *testing.T) {
	server := newRecordingServer(`{"success":true,"data":{"id":"inv-7","number":"INV-2026-0007","status":"draft"}}`)
	defer server.Close()

	s := newTestSDK(server.URL)
	invoice, err := s.Estimates.Approve(context.Background(), "est-3")
	require.NoError(t, err)

	assert.Equal(t, "/v1/estimates/est-3/approve", server.path)
	assert.Equal(t, "INV-2026-0007", invoice.Number)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: Login deja token y tenant activos para los requests siguientes.
func TestAuth_LoginDejaSesionActiva(t *testing.T) {
	server := newRecordingServer(`{
		"success": true,
		"data": {
			"token": "jwt-123",
			"expiresAt": "2099-01-01T00:00:00Z",
			"user": {"id":"u-1","tenantId":"t-1","email":"a@b.test","role":"owner"}
		}
	}`)
	defer server.Close()

	s := newTestSDK(server.URL)
	session, err := s.Auth.Login(context.Background(), "a@b.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-123", session.Token)

	_, err = s.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-123", server.auth, "el token del login viaja en los requests siguientes")
}

// Caso 5: Logout limpia las credenciales locales aunque el servidor falle.
func TestAuth_LogoutLimpiaSesionLocal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	creds := apiclient.NewMemoryStore()
	s := New(Options{
		BaseURL:     server.URL,
		Timeout:     2 * time.Second,
		Retries:     1,
		RetryDelay:  time.Millisecond,
		Credentials: creds,
	})
	s.Client().SetAuthToken("jwt-viejo")
	s.Client().SetTenantID("t-1")

	_ = s.Auth.Logout(context.Background())

	assert.Empty(t, creds.Token(), "logout limpia el token aunque el backend falle")
	assert.Empty(t, creds.TenantID())
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo mock (FixtureTransport)
// ──────────────────────────────────────────────────────────────────────────────

// newSDKWithTransport SDK de pruebas con transporte inyectado y sin backend.
func newSDKWithTransport(transport apiclient.Doer) *SDK {
	return New(Options{
		BaseURL:    "http://backend.invalid",
		Timeout:    2 * time.Second,
		Retries:    1,
		RetryDelay: time.Millisecond,
		Transport:  transport,
	})
}

// Caso 6: En modo mock el login funciona sin backend.
func TestMockMode_LoginSinBackend(t *testing.T) {
	transport := NewFixtureTransport(nil).WithLatency(0, 0)
	s := newSDKWithTransport(transport)

	session, err := s.Auth.Login(context.Background(), "demo@jobblox.test", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "mock-token", session.Token)
	assert.Equal(t, "owner", session.User.Role)
}

// Caso 7: Los listados del allow-list devuelven datos canned.
func TestMockMode_ListadosCanned(t *testing.T) {
	transport := NewFixtureTransport(nil).WithLatency(0, 0)
	s := newSDKWithTransport(transport)

	customers, pagination, err := s.Customers.List(context.Background(), CustomerListParams{})
	require.NoError(t, err)
	assert.Len(t, customers, 2)
	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Total)

	jobs, _, err := s.Jobs.List(context.Background(), JobListParams{})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, "scheduled", jobs[0].Status)
}

// Caso 8: El detalle canned respeta el ID solicitado.
func TestMockMode_DetalleRespetaID(t *testing.T) {
	transport := NewFixtureTransport(nil).WithLatency(0, 0)
	s := newSDKWithTransport(transport)

	customer, err := s.Customers.Get(context.Background(), "c-42")
	require.NoError(t, err)
	assert.Equal(t, "c-42", customer.ID)
}

// Caso 9: Endpoints fuera del allow-list sin backend responden 503 con
// envelope, no un error de red crudo.
func TestMockMode_FueraDeAllowListDevuelve503(t *testing.T) {
	transport := NewFixtureTransport(nil).WithLatency(0, 0)
	s := newSDKWithTransport(transport)

	_, _, err := s.Payments.List(context.Background(), PaymentListParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

// Caso 10: NewFromConfig traslada la sección CLIENT_* al SDK; con MockAPI
// activo el transporte sirve fixtures sin backend.
func TestNewFromConfig_RespetaModoMock(t *testing.T) {
	s := NewFromConfig(config.ClientConfig{
		BaseURL:  "http://backend.invalid",
		Version:  "v1",
		Timeout:  2 * time.Second,
		Retries:  1,
		CacheTTL: time.Minute,
		MockAPI:  true,
	})

	session, err := s.Auth.Login(context.Background(), "demo@jobblox.test", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "mock-token", session.Token)
}
