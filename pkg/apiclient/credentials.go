package apiclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// CredentialStore guarda el token de sesión y el tenant activo.
// Se lee en cada request (los headers Authorization y X-Tenant-ID se derivan
// de aquí) y se limpia completo en logout o al recibir un 401.
type CredentialStore interface {
	Token() string
	TenantID() string
	SetToken(token string)
	SetTenantID(tenantID string)
	Clear()
}

// ── MemoryStore ───────────────────────────────────────────────────────────────

// MemoryStore implementación en memoria (tests y procesos efímeros).
type MemoryStore struct {
	mu       sync.RWMutex
	token    string
	tenantID string
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) TenantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenantID
}

func (s *MemoryStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryStore) SetTenantID(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenantID = tenantID
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.tenantID = ""
}

// ── FileStore ─────────────────────────────────────────────────────────────────

// persistedCredentials formato del archivo de sesión en disco.
type persistedCredentials struct {
	AuthToken string `json:"auth_token"`
	TenantID  string `json:"tenant_id"`
}

// FileStore persiste las credenciales en un archivo JSON (sesión entre procesos).
// Escrituras last-writer-wins; no hay versionado.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	creds persistedCredentials
}

// NewFileStore carga (o inicializa) el archivo de sesión en path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	// Archivo corrupto se trata como sesión vacía; se sobreescribe al guardar.
	_ = json.Unmarshal(data, &s.creds)
	return s, nil
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.AuthToken
}

func (s *FileStore) TenantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.TenantID
}

func (s *FileStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.AuthToken = token
	s.persist()
}

func (s *FileStore) SetTenantID(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.TenantID = tenantID
	s.persist()
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = persistedCredentials{}
	_ = os.Remove(s.path)
}

// persist escribe el archivo; debe llamarse con el lock tomado.
func (s *FileStore) persist() {
	data, err := json.MarshalIndent(s.creds, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o700)
	_ = os.WriteFile(s.path, data, 0o600)
}
