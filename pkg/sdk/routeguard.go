package sdk

import "strings"

// Estado de autenticación conocido por el guard. Mientras la sesión se está
// resolviendo (Loading) ninguna ruta protegida se permite ni se deniega.
type AuthState int

const (
	StateLoading AuthState = iota
	StateAuthenticated
	StateUnauthenticated
)

// GuardSession entrada del guard: estado + rol del usuario (si autenticado).
type GuardSession struct {
	State AuthState
	Role  string
}

// Resultado de resolver una ruta.
type DecisionKind int

const (
	// DecisionPending la sesión aún carga; el caller debe esperar.
	DecisionPending DecisionKind = iota
	// DecisionAllow acceso permitido.
	DecisionAllow
	// DecisionRedirectToLogin no autenticado en ruta protegida; From guarda
	// la ruta original para volver tras el login.
	DecisionRedirectToLogin
	// DecisionRedirectHome autenticado en ruta solo-anónimos (/login).
	DecisionRedirectHome
	// DecisionDenied autenticado sin el rol requerido.
	DecisionDenied
)

// Decision salida pura de Resolve.
type Decision struct {
	Kind     DecisionKind
	From     string   // ruta original (RedirectToLogin)
	Required []string // roles requeridos (Denied)
	Actual   string   // rol del usuario (Denied)
}

// Route entrada de la tabla de rutas.
type Route struct {
	Prefix    string
	Protected bool
	AnonOnly  bool     // /login, /register: expulsan a usuarios autenticados
	Roles     []string // vacío = cualquier usuario autenticado
}

// defaultRoutes política de acceso por recurso: clientes, facturas y
// reportes requieren rol de gestión; empleados solo owner/admin; los
// trabajos los ve cualquier usuario autenticado.
var defaultRoutes = []Route{
	{Prefix: "/login", AnonOnly: true},
	{Prefix: "/register", AnonOnly: true},
	{Prefix: "/dashboard", Protected: true},
	{Prefix: "/customers", Protected: true, Roles: []string{"owner", "admin", "manager"}},
	{Prefix: "/invoices", Protected: true, Roles: []string{"owner", "admin", "manager"}},
	{Prefix: "/estimates", Protected: true, Roles: []string{"owner", "admin", "manager"}},
	{Prefix: "/reports", Protected: true, Roles: []string{"owner", "admin", "manager"}},
	{Prefix: "/employees", Protected: true, Roles: []string{"owner", "admin"}},
	{Prefix: "/settings", Protected: true, Roles: []string{"owner", "admin"}},
	{Prefix: "/jobs", Protected: true},
}

// RouteGuard resuelve decisiones de acceso contra una tabla de rutas.
// Resolve es una función pura: sin efectos, misma entrada misma salida.
type RouteGuard struct {
	routes []Route
}

// NewRouteGuard guard con la política por defecto.
func NewRouteGuard() *RouteGuard {
	return &RouteGuard{routes: defaultRoutes}
}

// NewRouteGuardWith guard con una tabla propia.
func NewRouteGuardWith(routes []Route) *RouteGuard {
	return &RouteGuard{routes: routes}
}

// Resolve decide el acceso a path para la sesión dada.
// Rutas sin entrada en la tabla se tratan como protegidas sin rol requerido.
func (g *RouteGuard) Resolve(session GuardSession, path string) Decision {
	route := g.match(path)

	if route != nil && route.AnonOnly {
		switch session.State {
		case StateLoading:
			return Decision{Kind: DecisionPending}
		case StateAuthenticated:
			return Decision{Kind: DecisionRedirectHome}
		default:
			return Decision{Kind: DecisionAllow}
		}
	}

	protected := route == nil || route.Protected
	if !protected {
		return Decision{Kind: DecisionAllow}
	}

	switch session.State {
	case StateLoading:
		return Decision{Kind: DecisionPending}
	case StateUnauthenticated:
		return Decision{Kind: DecisionRedirectToLogin, From: path}
	}

	if route != nil && len(route.Roles) > 0 && !contains(route.Roles, session.Role) {
		return Decision{
			Kind:     DecisionDenied,
			Required: route.Roles,
			Actual:   session.Role,
		}
	}
	return Decision{Kind: DecisionAllow}
}

// match devuelve la ruta con el prefijo más largo que cubre path.
func (g *RouteGuard) match(path string) *Route {
	var best *Route
	for i := range g.routes {
		r := &g.routes[i]
		if !matchesPrefix(path, r.Prefix) {
			continue
		}
		if best == nil || len(r.Prefix) > len(best.Prefix) {
			best = r
		}
	}
	return best
}

// matchesPrefix exige coincidencia en límite de segmento:
// "/jobs" cubre "/jobs/42" pero no "/jobsite".
func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
