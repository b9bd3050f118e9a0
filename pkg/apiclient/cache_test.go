package apiclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock reloj manual para controlar la expiración del cache en los tests.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time { return f.current }

func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func newTestCache(maxAge time.Duration) (*responseCache, *fakeClock) {
	clock := &fakeClock{current: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
	return newResponseCache(maxAge, clock.now), clock
}

// Caso 1: Una entrada fresca debe devolverse tal cual se guardó.
func TestCache_EntradaFrescaSeDevuelve(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)
	cache.Set("GET /customers", []byte(`{"success":true}`))

	body, ok := cache.Get("GET /customers")
	require.True(t, ok, "la entrada fresca debe estar en cache")
	assert.Equal(t, `{"success":true}`, string(body))
}

// Caso 2: Pasado el maxAge la entrada expira y se purga en el acceso.
func TestCache_EntradaVencidaExpira(t *testing.T) {
	cache, clock := newTestCache(5 * time.Minute)
	cache.Set("GET /customers", []byte(`{}`))

	clock.advance(5 * time.Minute)

	_, ok := cache.Get("GET /customers")
	assert.False(t, ok, "una entrada con maxAge cumplido no debe devolverse")
	assert.Equal(t, 0, cache.Len(), "la entrada vencida debe purgarse en el acceso")
}

// Caso 3: Justo antes del límite la entrada sigue viva.
func TestCache_EntradaAntesDelLimiteSigueViva(t *testing.T) {
	cache, clock := newTestCache(5 * time.Minute)
	cache.Set("GET /jobs", []byte(`{}`))

	clock.advance(5*time.Minute - time.Second)

	_, ok := cache.Get("GET /jobs")
	assert.True(t, ok)
}

// Caso 4: Clear vacía todas las entradas.
func TestCache_ClearVaciaTodo(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)
	cache.Set("GET /customers", []byte(`{}`))
	cache.Set("GET /jobs", []byte(`{}`))

	cache.Clear()

	assert.Equal(t, 0, cache.Len())
}

// Caso 5: Invalidate elimina solo las claves que coinciden con el patrón.
func TestCache_InvalidatePorPatron(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)
	cache.Set("GET https://api.test/v1/customers", []byte(`{}`))
	cache.Set("GET https://api.test/v1/customers/42", []byte(`{}`))
	cache.Set("GET https://api.test/v1/jobs", []byte(`{}`))

	err := cache.Invalidate(`/customers`)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get("GET https://api.test/v1/jobs")
	assert.True(t, ok, "las claves que no coinciden deben sobrevivir")
}

// Caso 6: Invalidate con patrón vacío equivale a Clear.
func TestCache_InvalidatePatronVacioEsClear(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)
	cache.Set("GET /customers", []byte(`{}`))

	require.NoError(t, cache.Invalidate(""))
	assert.Equal(t, 0, cache.Len())
}

// Caso 7: Un patrón regexp inválido devuelve error sin tocar el cache.
func TestCache_InvalidatePatronInvalido(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)
	cache.Set("GET /customers", []byte(`{}`))

	err := cache.Invalidate(`[`)
	assert.Error(t, err)
	assert.Equal(t, 1, cache.Len())
}
