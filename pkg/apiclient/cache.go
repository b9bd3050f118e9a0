package apiclient

import (
	"regexp"
	"sync"
	"time"
)

// cacheEntry respuesta cruda cacheada con su marca de tiempo.
type cacheEntry struct {
	body      []byte
	timestamp time.Time
}

// responseCache cache acotado por tiempo para respuestas GET.
// Es propiedad de cada Client (no hay estado a nivel de paquete) y es seguro
// para uso concurrente.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	maxAge  time.Duration
	now     func() time.Time // inyectable en tests
}

func newResponseCache(maxAge time.Duration, now func() time.Time) *responseCache {
	if now == nil {
		now = time.Now
	}
	return &responseCache{
		entries: make(map[string]cacheEntry),
		maxAge:  maxAge,
		now:     now,
	}
}

// Get devuelve la respuesta cacheada si existe y no ha superado maxAge.
// Una entrada vencida se elimina en el acceso.
func (c *responseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.timestamp) >= c.maxAge {
		delete(c.entries, key)
		return nil, false
	}
	return entry.body, true
}

// Set guarda la respuesta con la marca de tiempo actual.
func (c *responseCache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{body: body, timestamp: c.now()}
}

// Clear vacía el cache completo.
func (c *responseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Invalidate elimina las entradas cuya clave coincide con el patrón (regexp).
// Patrón vacío equivale a Clear.
func (c *responseCache) Invalidate(pattern string) error {
	if pattern == "" {
		c.Clear()
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if re.MatchString(key) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len número de entradas vivas (incluye vencidas aún no purgadas).
func (c *responseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
