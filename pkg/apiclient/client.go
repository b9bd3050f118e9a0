package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = time.Second
	defaultCacheTTL   = 5 * time.Minute
	defaultVersion    = "v1"

	// Límite de lectura del body; respuestas mayores se truncan.
	maxBodySize = 10 << 20
)

// Options configuración del cliente. Los campos en cero toman defaults.
type Options struct {
	BaseURL    string
	Version    string // segmento de versión del API, default "v1"
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration // backoff lineal: delay × número de intento
	CacheTTL   time.Duration

	Credentials CredentialStore
	Transport   Doer

	// OnSessionExpired se invoca exactamente una vez por expiración de sesión
	// (primer 401 recibido). SetAuthToken rearma el disparador.
	OnSessionExpired func()

	// Now reloj inyectable para el cache (tests).
	Now func() time.Time
}

// Pagination metadata de paginación del envelope del servidor.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Response envelope estándar de todas las respuestas del API.
type Response struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
	Details    map[string]any  `json:"details,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Client cliente HTTP del API con deduplicación de requests en vuelo,
// cache TTL para GETs, timeout por intento y reintentos con backoff lineal.
// Todo el estado (cache, credenciales, dedup) es por instancia.
type Client struct {
	baseURL    string
	version    string
	timeout    time.Duration
	retries    int
	retryDelay time.Duration

	transport Doer
	creds     CredentialStore
	cache     *responseCache
	group     singleflight.Group

	onSessionExpired func()
	sessionExpired   atomic.Bool
}

// New construye un Client con los defaults aplicados.
func New(opts Options) *Client {
	if opts.Version == "" {
		opts.Version = defaultVersion
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Retries <= 0 {
		opts.Retries = defaultRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Transport == nil {
		opts.Transport = &http.Client{}
	}
	if opts.Credentials == nil {
		opts.Credentials = NewMemoryStore()
	}
	return &Client{
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		version:          opts.Version,
		timeout:          opts.Timeout,
		retries:          opts.Retries,
		retryDelay:       opts.RetryDelay,
		transport:        opts.Transport,
		creds:            opts.Credentials,
		cache:            newResponseCache(opts.CacheTTL, opts.Now),
		onSessionExpired: opts.OnSessionExpired,
	}
}

// ── Sesión ────────────────────────────────────────────────────────────────────

// SetAuthToken guarda el token y rearma el disparador de sesión expirada.
func (c *Client) SetAuthToken(token string) {
	c.creds.SetToken(token)
	c.sessionExpired.Store(false)
}

// SetTenantID fija el tenant activo para los headers siguientes.
func (c *Client) SetTenantID(tenantID string) {
	c.creds.SetTenantID(tenantID)
}

// ClearAuth limpia credenciales y cache (logout explícito).
func (c *Client) ClearAuth() {
	c.creds.Clear()
	c.cache.Clear()
}

// ── Cache ─────────────────────────────────────────────────────────────────────

// ClearCache vacía el cache de respuestas.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// InvalidateCache elimina las entradas que coinciden con el patrón (regexp).
// Patrón vacío vacía todo el cache.
func (c *Client) InvalidateCache(pattern string) error {
	return c.cache.Invalidate(pattern)
}

// ── Verbos ────────────────────────────────────────────────────────────────────

// Get hace GET con cache y deduplicación. out recibe el campo data del envelope.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out any) (*Response, error) {
	return c.request(ctx, http.MethodGet, endpoint, query, nil, out, true)
}

// GetNoCache hace GET saltándose el cache (deduplicación sigue activa).
func (c *Client) GetNoCache(ctx context.Context, endpoint string, query url.Values, out any) (*Response, error) {
	return c.request(ctx, http.MethodGet, endpoint, query, nil, out, false)
}

// Post hace POST con body JSON.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) (*Response, error) {
	return c.request(ctx, http.MethodPost, endpoint, nil, body, out, false)
}

// Put hace PUT con body JSON.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) (*Response, error) {
	return c.request(ctx, http.MethodPut, endpoint, nil, body, out, false)
}

// Patch hace PATCH con body JSON.
func (c *Client) Patch(ctx context.Context, endpoint string, body, out any) (*Response, error) {
	return c.request(ctx, http.MethodPatch, endpoint, nil, body, out, false)
}

// Delete hace DELETE.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) (*Response, error) {
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil, out, false)
}

// ── Núcleo ────────────────────────────────────────────────────────────────────

func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, body, out any, useCache bool) (*Response, error) {
	fullURL := c.buildURL(endpoint, query)

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, &APIError{
				Code:      CodeInvalidResponse,
				Message:   "cannot serialize request body: " + err.Error(),
				Timestamp: time.Now(),
			}
		}
	}

	// La clave identifica el request completo: método + URL + body + flag de
	// cache. Un GET con cache y uno sin cache no colapsan entre sí.
	key := fmt.Sprintf("%s %s cache=%t %s", method, fullURL, useCache, bodyBytes)

	if useCache {
		if cached, ok := c.cache.Get(key); ok {
			return decodeResponse(cached, out)
		}
	}

	// Requests idénticos concurrentes colapsan en una sola llamada de red;
	// cada caller deserializa su propia copia del resultado crudo.
	raw, err, _ := c.group.Do(key, func() (any, error) {
		return c.doWithRetry(ctx, method, fullURL, bodyBytes)
	})
	if err != nil {
		return nil, err
	}
	respBody := raw.([]byte)

	// Solo se cachean respuestas que decodifican como envelope exitoso: un
	// body malformado o un success:false no deben servirse durante el TTL.
	resp, err := decodeResponse(respBody, out)
	if err != nil {
		return nil, err
	}
	if useCache {
		c.cache.Set(key, respBody)
	}
	return resp, nil
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	full := fmt.Sprintf("%s/%s%s", c.baseURL, c.version, endpoint)
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

// doWithRetry ejecuta el request con backoff lineal. Solo errores de red y
// estados transitorios del servidor se reintentan; el resto corta de inmediato.
func (c *Client) doWithRetry(ctx context.Context, method, fullURL string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return nil, networkError(ctx.Err())
			case <-time.After(delay):
			}
		}
		respBody, err := c.doOnce(ctx, method, fullURL, body)
		if err == nil {
			return respBody, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// doOnce un intento con su propio timeout. Los headers de auth se leen en cada
// intento: un token renovado entre reintentos se usa de inmediato.
func (c *Client) doOnce(ctx context.Context, method, fullURL string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, networkError(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if tenantID := c.creds.TenantID(); tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}

	resp, err := c.transport.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message, details := parseErrorBody(respBody)
		return nil, statusError(resp.StatusCode, message, details)
	}
	return respBody, nil
}

// handleUnauthorized limpia la sesión local ante un 401. El hook de expiración
// dispara una sola vez hasta que SetAuthToken lo rearma.
func (c *Client) handleUnauthorized() {
	c.creds.Clear()
	c.cache.Clear()
	if c.sessionExpired.CompareAndSwap(false, true) && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// parseErrorBody extrae message y details del envelope de error; un body que
// no sea JSON deja ambos vacíos y statusError usa el texto del status.
func parseErrorBody(body []byte) (string, map[string]any) {
	var envelope Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", nil
	}
	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}
	return message, envelope.Details
}

// decodeResponse deserializa el envelope y, si aplica, el campo data en out.
func decodeResponse(body []byte, out any) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, invalidResponseError(err)
	}
	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = resp.Error
		}
		if message == "" {
			message = "request failed"
		}
		return nil, &APIError{
			Code:      "REQUEST_FAILED",
			Message:   message,
			Details:   resp.Details,
			Timestamp: time.Now(),
		}
	}
	if out != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return nil, invalidResponseError(err)
		}
	}
	return &resp, nil
}
