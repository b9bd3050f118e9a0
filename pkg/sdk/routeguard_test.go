package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func authed(role string) GuardSession {
	return GuardSession{State: StateAuthenticated, Role: role}
}

var anonymous = GuardSession{State: StateUnauthenticated}

// Caso 1: Sesión cargando → ninguna ruta protegida decide todavía.
func TestRouteGuard_SesionCargandoQuedaPendiente(t *testing.T) {
	guard := NewRouteGuard()

	decision := guard.Resolve(GuardSession{State: StateLoading}, "/customers")
	assert.Equal(t, DecisionPending, decision.Kind)
}

// Caso 2: Anónimo en ruta protegida → redirect a login conservando la ruta
// original para volver después.
func TestRouteGuard_AnonimoRedirigeALoginConFrom(t *testing.T) {
	guard := NewRouteGuard()

	decision := guard.Resolve(anonymous, "/invoices/inv-9")
	assert.Equal(t, DecisionRedirectToLogin, decision.Kind)
	assert.Equal(t, "/invoices/inv-9", decision.From)
}

// Caso 3: Autenticado en /login → redirect a home.
func TestRouteGuard_AutenticadoEnLoginVaAHome(t *testing.T) {
	guard := NewRouteGuard()

	decision := guard.Resolve(authed("owner"), "/login")
	assert.Equal(t, DecisionRedirectHome, decision.Kind)
}

// Caso 4: Anónimo en /login → permitido.
func TestRouteGuard_AnonimoEnLoginPermitido(t *testing.T) {
	guard := NewRouteGuard()

	decision := guard.Resolve(anonymous, "/login")
	assert.Equal(t, DecisionAllow, decision.Kind)
}

// Caso 5: Rol insuficiente → denegado listando roles requeridos y el actual.
func TestRouteGuard_RolInsuficienteDeniegaConDetalle(t *testing.T) {
	guard := NewRouteGuard()

	decision := guard.Resolve(authed("employee"), "/customers")
	assert.Equal(t, DecisionDenied, decision.Kind)
	assert.Equal(t, []string{"owner", "admin", "manager"}, decision.Required)
	assert.Equal(t, "employee", decision.Actual)
}

// Caso 6: Tabla de política por recurso.
func TestRouteGuard_PoliticaPorRecurso(t *testing.T) {
	guard := NewRouteGuard()

	cases := []struct {
		name string
		role string
		path string
		want DecisionKind
	}{
		{"manager accede a clientes", "manager", "/customers", DecisionAllow},
		{"manager no accede a empleados", "manager", "/employees", DecisionDenied},
		{"admin accede a empleados", "admin", "/employees/e-1", DecisionAllow},
		{"employee accede a trabajos", "employee", "/jobs/j-1", DecisionAllow},
		{"employee no accede a facturas", "employee", "/invoices", DecisionDenied},
		{"owner accede a todo", "owner", "/reports", DecisionAllow},
		{"cualquiera autenticado ve dashboard", "customer", "/dashboard", DecisionAllow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := guard.Resolve(authed(tc.role), tc.path)
			assert.Equal(t, tc.want, decision.Kind)
		})
	}
}

// Caso 7: El prefijo coincide por segmento completo, no por substring.
func TestRouteGuard_PrefijoPorSegmento(t *testing.T) {
	guard := NewRouteGuardWith([]Route{
		{Prefix: "/jobs", Protected: true, Roles: []string{"owner"}},
	})

	// "/jobsite" no es "/jobs": cae en el default (protegida, sin rol).
	decision := guard.Resolve(authed("employee"), "/jobsite")
	assert.Equal(t, DecisionAllow, decision.Kind)

	decision = guard.Resolve(authed("employee"), "/jobs/42")
	assert.Equal(t, DecisionDenied, decision.Kind)
}

// Caso 8: Rutas desconocidas se tratan como protegidas.
func TestRouteGuard_RutaDesconocidaEsProtegida(t *testing.T) {
	guard := NewRouteGuard()

	decision := guard.Resolve(anonymous, "/algo-nuevo")
	assert.Equal(t, DecisionRedirectToLogin, decision.Kind)
}
