package sdk

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// allowedFixtures endpoints (primer segmento tras la versión) que el modo
// mock resuelve localmente. El resto pasa al transporte real.
var allowedFixtures = map[string]bool{
	"auth":      true,
	"customers": true,
	"jobs":      true,
	"invoices":  true,
	"users":     true,
}

// FixtureTransport transporte de desarrollo: sirve datos canned para un
// conjunto acotado de endpoints, con latencia artificial aleatoria para
// imitar una red real. Los endpoints fuera de la lista pasan al transporte
// subyacente; si ese request falla por red, se responde un 503 con envelope
// en lugar de propagar el error.
type FixtureTransport struct {
	real       apiclient.Doer
	minLatency time.Duration
	maxLatency time.Duration
}

// NewFixtureTransport construye el transporte mock con latencia 500–1500 ms.
func NewFixtureTransport(real apiclient.Doer) *FixtureTransport {
	return &FixtureTransport{
		real:       real,
		minLatency: 500 * time.Millisecond,
		maxLatency: 1500 * time.Millisecond,
	}
}

// WithLatency ajusta el rango de latencia artificial (cero la elimina).
func (t *FixtureTransport) WithLatency(min, max time.Duration) *FixtureTransport {
	t.minLatency = min
	t.maxLatency = max
	return t
}

// Do implementa apiclient.Doer.
func (t *FixtureTransport) Do(req *http.Request) (*http.Response, error) {
	resource, rest := splitEndpoint(req.URL.Path)
	if allowedFixtures[resource] {
		t.sleep()
		return t.fixtureResponse(req, resource, rest), nil
	}
	if t.real == nil {
		return unavailableResponse(req), nil
	}
	resp, err := t.real.Do(req)
	if err != nil {
		// En desarrollo un backend caído no debe romper el flujo.
		return unavailableResponse(req), nil
	}
	return resp, nil
}

func (t *FixtureTransport) sleep() {
	if t.maxLatency <= t.minLatency {
		if t.minLatency > 0 {
			time.Sleep(t.minLatency)
		}
		return
	}
	jitter := time.Duration(rand.Int63n(int64(t.maxLatency - t.minLatency)))
	time.Sleep(t.minLatency + jitter)
}

// splitEndpoint separa "/v1/customers/42" en ("customers", "42").
func splitEndpoint(path string) (resource, rest string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	// parts[0] es el segmento de versión ("v1").
	if len(parts) < 2 {
		return "", ""
	}
	resource = parts[1]
	if len(parts) > 2 {
		rest = strings.Join(parts[2:], "/")
	}
	return resource, rest
}

// fixtureResponse arma la respuesta canned según método y recurso.
func (t *FixtureTransport) fixtureResponse(req *http.Request, resource, rest string) *http.Response {
	switch {
	case resource == "auth" && rest == "login" && req.Method == http.MethodPost:
		return jsonResponse(http.StatusOK, fixtureSession)
	case resource == "auth":
		return jsonResponse(http.StatusOK, fixtureMe)
	case req.Method == http.MethodGet && rest == "":
		return jsonResponse(http.StatusOK, fixtureLists[resource])
	case req.Method == http.MethodGet:
		return jsonResponse(http.StatusOK, fixtureItem(resource, firstSegment(rest)))
	case req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch:
		// Las mutaciones devuelven el payload recibido con un ID generado.
		body, _ := io.ReadAll(req.Body)
		return jsonResponse(http.StatusOK, echoEnvelope(resource, body))
	case req.Method == http.MethodDelete:
		return jsonResponse(http.StatusOK, `{"success":true,"message":"Deleted"}`)
	default:
		return jsonResponse(http.StatusNotFound, `{"success":false,"message":"Not found"}`)
	}
}

func firstSegment(rest string) string {
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i]
	}
	return rest
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func unavailableResponse(req *http.Request) *http.Response {
	return jsonResponse(http.StatusServiceUnavailable,
		`{"success":false,"message":"Backend unavailable in development mode"}`)
}

func echoEnvelope(resource string, payload []byte) string {
	if len(payload) == 0 || payload[0] != '{' {
		payload = []byte(`{}`)
	}
	id := `"id":"mock-` + strings.TrimSuffix(resource, "s") + `-1",`
	return `{"success":true,"data":{` + id + strings.TrimPrefix(string(payload), "{")
}

// ── Datos canned ──────────────────────────────────────────────────────────────

const fixtureSession = `{
  "success": true,
  "data": {
    "token": "mock-token",
    "expiresAt": "2099-01-01T00:00:00Z",
    "user": {
      "id": "mock-user-1", "tenantId": "mock-tenant-1",
      "email": "demo@jobblox.test", "firstName": "Demo", "lastName": "Owner",
      "role": "owner", "status": "active",
      "preferences": {"theme": "system", "language": "en", "timezone": "UTC"},
      "createdAt": "2025-01-01T00:00:00Z"
    }
  },
  "message": "Login successful"
}`

const fixtureMe = `{
  "success": true,
  "data": {
    "id": "mock-user-1", "tenantId": "mock-tenant-1",
    "email": "demo@jobblox.test", "firstName": "Demo", "lastName": "Owner",
    "role": "owner", "status": "active",
    "preferences": {"theme": "system", "language": "en", "timezone": "UTC"},
    "createdAt": "2025-01-01T00:00:00Z"
  }
}`

var fixtureLists = map[string]string{
	"customers": `{
  "success": true,
  "data": [
    {"id": "mock-customer-1", "tenantId": "mock-tenant-1", "name": "Acme Roofing",
     "email": "ops@acme.test", "type": "commercial", "status": "active",
     "address": {"street": "100 Main St", "city": "Denver", "state": "CO", "zipCode": "80202", "country": "US"},
     "createdAt": "2025-03-01T00:00:00Z", "updatedAt": "2025-03-01T00:00:00Z"},
    {"id": "mock-customer-2", "tenantId": "mock-tenant-1", "name": "Rivera Household",
     "email": "rivera@home.test", "type": "residential", "status": "prospect",
     "address": {"street": "8 Oak Ave", "city": "Boulder", "state": "CO", "zipCode": "80301", "country": "US"},
     "createdAt": "2025-04-10T00:00:00Z", "updatedAt": "2025-04-10T00:00:00Z"}
  ],
  "pagination": {"page": 1, "limit": 20, "total": 2, "totalPages": 1, "hasNext": false, "hasPrev": false}
}`,
	"jobs": `{
  "success": true,
  "data": [
    {"id": "mock-job-1", "tenantId": "mock-tenant-1", "customerId": "mock-customer-1",
     "title": "Roof replacement", "type": "installation", "status": "scheduled", "priority": "high",
     "scheduledDate": "2026-09-15T09:00:00Z", "estimatedHours": 24,
     "location": {"street": "100 Main St", "city": "Denver", "state": "CO", "zipCode": "80202", "country": "US"},
     "createdAt": "2025-08-01T00:00:00Z", "updatedAt": "2025-08-01T00:00:00Z"},
    {"id": "mock-job-2", "tenantId": "mock-tenant-1", "customerId": "mock-customer-2",
     "title": "Gutter repair", "type": "repair", "status": "draft", "priority": "medium",
     "location": {"street": "8 Oak Ave", "city": "Boulder", "state": "CO", "zipCode": "80301", "country": "US"},
     "createdAt": "2025-08-12T00:00:00Z", "updatedAt": "2025-08-12T00:00:00Z"}
  ],
  "pagination": {"page": 1, "limit": 20, "total": 2, "totalPages": 1, "hasNext": false, "hasPrev": false}
}`,
	"invoices": `{
  "success": true,
  "data": [
    {"id": "mock-invoice-1", "tenantId": "mock-tenant-1", "customerId": "mock-customer-1",
     "number": "INV-2026-0001", "status": "sent",
     "items": [{"description": "Shingles", "quantity": "40", "unitPrice": "25.50", "taxable": true, "total": "1020.00"}],
     "subtotal": "1020.00", "tax": "81.60", "discount": "0", "total": "1101.60",
     "paidAmount": "0", "balanceDue": "1101.60",
     "createdAt": "2026-01-20T00:00:00Z", "updatedAt": "2026-01-20T00:00:00Z"}
  ],
  "pagination": {"page": 1, "limit": 20, "total": 1, "totalPages": 1, "hasNext": false, "hasPrev": false}
}`,
	"users": `{
  "success": true,
  "data": [
    {"id": "mock-user-1", "tenantId": "mock-tenant-1", "email": "demo@jobblox.test",
     "firstName": "Demo", "lastName": "Owner", "role": "owner", "status": "active",
     "preferences": {"theme": "system", "language": "en", "timezone": "UTC"},
     "createdAt": "2025-01-01T00:00:00Z"}
  ],
  "pagination": {"page": 1, "limit": 20, "total": 1, "totalPages": 1, "hasNext": false, "hasPrev": false}
}`,
}

// fixtureItem sirve el primer elemento de la lista con el ID pedido.
func fixtureItem(resource, id string) string {
	list, ok := fixtureLists[resource]
	if !ok {
		return `{"success":false,"message":"Not found"}`
	}
	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(list), &envelope); err != nil || len(envelope.Data) == 0 {
		return `{"success":false,"message":"Not found"}`
	}
	item := envelope.Data[0]
	if id != "" {
		item["id"] = id
	}
	out, _ := json.Marshal(map[string]any{"success": true, "data": item})
	return string(out)
}
