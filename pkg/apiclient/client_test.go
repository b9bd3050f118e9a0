package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// countingServer servidor de pruebas que cuenta las llamadas de red recibidas.
type countingServer struct {
	*httptest.Server
	calls atomic.Int64
}

func newCountingServer(handler func(w http.ResponseWriter, r *http.Request)) *countingServer {
	s := &countingServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		handler(w, r)
	}))
	return s
}

func okEnvelope(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"success":true,"data":` + data + `}`))
}

func newTestClient(baseURL string, opts Options) *Client {
	opts.BaseURL = baseURL
	if opts.Timeout == 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = time.Millisecond
	}
	return New(opts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Deduplicación de requests en vuelo
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: N GETs idénticos concurrentes colapsan en una sola llamada de red
// y todos los callers reciben el mismo resultado.
func TestClient_RequestsConcurrentesSeDeduplicanAUno(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		// Retener la respuesta para garantizar que los requests se solapen.
		time.Sleep(50 * time.Millisecond)
		okEnvelope(w, `{"id":"c1","firstName":"Ana"}`)
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out struct {
				ID string `json:"id"`
			}
			_, err := client.Get(context.Background(), "/customers/c1", nil, &out)
			results[i] = out.ID
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "c1", results[i], "todos los callers comparten la respuesta")
	}
	assert.Equal(t, int64(1), server.calls.Load(), "requests idénticos en vuelo = una sola llamada de red")
}

// Caso 2: Requests con distinta URL no se deduplican entre sí.
func TestClient_RequestsDistintosNoSeDeduplican(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		okEnvelope(w, `{}`)
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{})

	_, err := client.GetNoCache(context.Background(), "/customers/c1", nil, nil)
	require.NoError(t, err)
	_, err = client.GetNoCache(context.Background(), "/customers/c2", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), server.calls.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cache de GETs
// ──────────────────────────────────────────────────────────────────────────────

// Caso 3: Un segundo GET dentro del TTL se sirve del cache sin tocar la red.
func TestClient_GetRepetidoSirveDelCache(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		okEnvelope(w, `[{"id":"j1"}]`)
	})
	defer server.Close()

	clock := &fakeClock{current: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
	client := newTestClient(server.URL, Options{CacheTTL: 5 * time.Minute, Now: clock.now})

	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), "/jobs", nil, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), server.calls.Load(), "los GETs dentro del TTL no deben tocar la red")
}

// Caso 4: Pasado el TTL el GET vuelve a la red.
func TestClient_GetTrasTTLVuelveALaRed(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		okEnvelope(w, `[]`)
	})
	defer server.Close()

	clock := &fakeClock{current: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
	client := newTestClient(server.URL, Options{CacheTTL: 5 * time.Minute, Now: clock.now})

	_, err := client.Get(context.Background(), "/jobs", nil, nil)
	require.NoError(t, err)

	clock.advance(5 * time.Minute)

	_, err = client.Get(context.Background(), "/jobs", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), server.calls.Load())
}

// Caso 5: Los POST nunca se cachean.
func TestClient_PostNoSeCachea(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		okEnvelope(w, `{"id":"new"}`)
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{})

	_, err := client.Post(context.Background(), "/customers", map[string]string{"firstName": "Ana"}, nil)
	require.NoError(t, err)
	_, err = client.Post(context.Background(), "/customers", map[string]string{"firstName": "Ana"}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), server.calls.Load())
}

// Caso 6: InvalidateCache elimina las entradas que coinciden y el siguiente
// GET vuelve a la red.
func TestClient_InvalidateCachePorPatron(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		okEnvelope(w, `[]`)
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{})

	_, err := client.Get(context.Background(), "/customers", nil, nil)
	require.NoError(t, err)

	require.NoError(t, client.InvalidateCache(`/customers`))

	_, err = client.Get(context.Background(), "/customers", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), server.calls.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 7: Un 503 transitorio se reintenta hasta obtener éxito.
func TestClient_ReintentaErroresTransitorios(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"success":false,"message":"temporarily unavailable"}`))
			return
		}
		okEnvelope(w, `{"ok":true}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, Options{Retries: 3, RetryDelay: time.Millisecond})

	_, err := client.GetNoCache(context.Background(), "/jobs", nil, nil)
	require.NoError(t, err, "el cliente debe absorber fallos transitorios")
	assert.Equal(t, int64(3), calls.Load())
}

// Caso 8: Un 400 no es reintentable: una sola llamada y error inmediato.
func TestClient_NoReintentaErroresDeCliente(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid payload"}`))
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{Retries: 3, RetryDelay: time.Millisecond})

	_, err := client.Post(context.Background(), "/customers", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "400", apiErr.Code)
	assert.Equal(t, "invalid payload", apiErr.Message)
	assert.Equal(t, int64(1), server.calls.Load(), "los 4xx no deben reintentarse")
}

// Caso 9: Agotados los reintentos se devuelve el último error.
func TestClient_ReintentosAgotadosDevuelveUltimoError(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{Retries: 2, RetryDelay: time.Millisecond})

	_, err := client.GetNoCache(context.Background(), "/jobs", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.Status())
	assert.Equal(t, int64(3), server.calls.Load(), "intento inicial + 2 reintentos")
}

// Caso 10: Un contexto cancelado corta los reintentos pendientes.
func TestClient_ContextoCanceladoCortaReintentos(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{Retries: 5, RetryDelay: 200 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.GetNoCache(ctx, "/jobs", nil, nil)
	require.Error(t, err)
	assert.LessOrEqual(t, server.calls.Load(), int64(2), "la cancelación debe frenar los reintentos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión expirada (401)
// ──────────────────────────────────────────────────────────────────────────────

// Caso 11: Un 401 limpia credenciales, vacía el cache y dispara el hook
// exactamente una vez aunque lleguen varios 401 seguidos.
func TestClient_401LimpiaSesionYDisparaHookUnaVez(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"session expired"}`))
	})
	defer server.Close()

	creds := NewMemoryStore()
	var hookCalls atomic.Int64
	client := newTestClient(server.URL, Options{
		Credentials:      creds,
		OnSessionExpired: func() { hookCalls.Add(1) },
	})
	client.SetAuthToken("token-viejo")
	client.SetTenantID("t1")

	for i := 0; i < 3; i++ {
		_, err := client.GetNoCache(context.Background(), "/customers", nil, nil)
		require.Error(t, err)
	}

	assert.Empty(t, creds.Token(), "el 401 debe limpiar el token local")
	assert.Empty(t, creds.TenantID(), "el 401 debe limpiar el tenant local")
	assert.Equal(t, int64(1), hookCalls.Load(), "el hook de expiración dispara una sola vez")
}

// Caso 12: SetAuthToken rearma el disparador de sesión expirada.
func TestClient_SetAuthTokenRearmaElHook(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer server.Close()

	var hookCalls atomic.Int64
	client := newTestClient(server.URL, Options{
		OnSessionExpired: func() { hookCalls.Add(1) },
	})

	client.SetAuthToken("token-a")
	_, _ = client.GetNoCache(context.Background(), "/customers", nil, nil)

	client.SetAuthToken("token-b")
	_, _ = client.GetNoCache(context.Background(), "/customers", nil, nil)

	assert.Equal(t, int64(2), hookCalls.Load(), "cada nueva sesión puede expirar de nuevo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Headers y envelope
// ──────────────────────────────────────────────────────────────────────────────

// Caso 13: El cliente envía Authorization y X-Tenant-ID en cada request.
func TestClient_EnviaHeadersDeSesion(t *testing.T) {
	var gotAuth, gotTenant string
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTenant = r.Header.Get("X-Tenant-ID")
		okEnvelope(w, `{}`)
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{})
	client.SetAuthToken("mi-token")
	client.SetTenantID("tenant-42")

	_, err := client.GetNoCache(context.Background(), "/me", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer mi-token", gotAuth)
	assert.Equal(t, "tenant-42", gotTenant)
}

// Caso 14: La query string se codifica en la URL final.
func TestClient_CodificaQueryString(t *testing.T) {
	var gotQuery url.Values
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		okEnvelope(w, `[]`)
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{})
	query := url.Values{}
	query.Set("status", "active")
	query.Set("page", "2")

	_, err := client.GetNoCache(context.Background(), "/customers", query, nil)
	require.NoError(t, err)

	assert.Equal(t, "active", gotQuery.Get("status"))
	assert.Equal(t, "2", gotQuery.Get("page"))
}

// Caso 15: El envelope expone message y pagination al caller.
func TestClient_ExponeEnvelopeCompleto(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [{"id":"c1"}],
			"message": "Customers retrieved",
			"pagination": {"page":1,"limit":20,"total":45,"totalPages":3}
		}`))
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{})

	var out []struct {
		ID string `json:"id"`
	}
	resp, err := client.GetNoCache(context.Background(), "/customers", nil, &out)
	require.NoError(t, err)

	assert.Equal(t, "Customers retrieved", resp.Message)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 45, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	require.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].ID)
}

// Caso 16: Un 2xx con JSON malformado se normaliza como INVALID_RESPONSE.
func TestClient_JSONMalformadoEsInvalidResponse(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{not json`))
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{})

	_, err := client.GetNoCache(context.Background(), "/jobs", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeInvalidResponse, apiErr.Code)
}

// Caso 17: Un fallo de red (servidor caído) se normaliza como NETWORK_ERROR.
func TestClient_FalloDeRedEsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close() // el puerto deja de escuchar

	client := newTestClient(baseURL, Options{Retries: 1, RetryDelay: time.Millisecond})

	_, err := client.GetNoCache(context.Background(), "/jobs", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeNetwork, apiErr.Code)
	assert.True(t, IsRetryable(err), "los fallos de red son reintentables")
}

// Caso 18: Una respuesta 2xx malformada no queda en el cache: el siguiente
// GET dentro del TTL vuelve a la red y recibe la respuesta válida.
func TestClient_RespuestaMalformadaNoSeCachea(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.WriteHeader(http.StatusOK)
		if n == 1 {
			_, _ = w.Write([]byte(`{not json`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"j1"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, Options{CacheTTL: 5 * time.Minute})

	_, err := client.Get(context.Background(), "/jobs", nil, nil)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeInvalidResponse, apiErr.Code)

	var out []struct {
		ID string `json:"id"`
	}
	_, err = client.Get(context.Background(), "/jobs", nil, &out)
	require.NoError(t, err, "la segunda lectura debe ir a la red, no al cache")
	assert.Equal(t, int64(2), calls.Load())
	require.Len(t, out, 1)
	assert.Equal(t, "j1", out[0].ID)
}

// Caso 19: Un envelope con success:false tampoco se cachea.
func TestClient_EnvelopeFallidoNoSeCachea(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.WriteHeader(http.StatusOK)
		if n == 1 {
			_, _ = w.Write([]byte(`{"success":false,"message":"not ready"}`))
			return
		}
		okEnvelope(w, `[]`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, Options{CacheTTL: 5 * time.Minute})

	_, err := client.Get(context.Background(), "/jobs", nil, nil)
	require.Error(t, err)

	_, err = client.Get(context.Background(), "/jobs", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

// Caso 20: Un Get y un GetNoCache simultáneos a la misma URL no colapsan
// entre sí: el flag de cache forma parte de la clave de deduplicación.
func TestClient_GetYGetNoCacheNoSeDeduplicanEntreSi(t *testing.T) {
	server := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		okEnvelope(w, `[]`)
	})
	defer server.Close()

	client := newTestClient(server.URL, Options{CacheTTL: 5 * time.Minute})

	var wg sync.WaitGroup
	wg.Add(2)
	var errConCache, errDirecto error
	go func() {
		defer wg.Done()
		_, errConCache = client.Get(context.Background(), "/jobs", nil, nil)
	}()
	go func() {
		defer wg.Done()
		_, errDirecto = client.GetNoCache(context.Background(), "/jobs", nil, nil)
	}()
	wg.Wait()

	require.NoError(t, errConCache)
	require.NoError(t, errDirecto)
	assert.Equal(t, int64(2), server.calls.Load())
}

// Caso 21: El backoff lineal crece con el número de reintento: cada espera
// es al menos RetryDelay por el número de intento.
func TestClient_BackoffCreceEntreReintentos(t *testing.T) {
	var mu sync.Mutex
	var arrivals []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		arrivals = append(arrivals, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	const delay = 25 * time.Millisecond
	client := newTestClient(srv.URL, Options{Retries: 3, RetryDelay: delay})

	_, err := client.GetNoCache(context.Background(), "/jobs", nil, nil)
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, arrivals, 4, "intento inicial + 3 reintentos")
	for i := 1; i < len(arrivals); i++ {
		gap := arrivals[i].Sub(arrivals[i-1])
		assert.GreaterOrEqual(t, gap, time.Duration(i)*delay,
			"la espera antes del reintento %d debe ser al menos %v", i, time.Duration(i)*delay)
	}
}
