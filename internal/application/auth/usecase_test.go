package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobblox/crm-api/internal/application/auth"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del puerto de usuarios.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.byID[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.byID[id], nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByEmailAndTenant(email, tenantID string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email && u.TenantID == tenantID {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) ListByTenant(tenantID string, role string, _, _ int) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range r.byID {
		if u.TenantID == tenantID && (role == "" || u.Role == role) {
			out = append(out, u)
		}
	}
	return out, len(out), nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.byID[u.ID] = u; return nil }
func (r *fakeUserRepo) Delete(id string) error      { delete(r.byID, id); return nil }

type fakeBootstrapRunner struct {
	tenants map[string]*entity.Tenant
	users   *fakeUserRepo
}

func (f *fakeBootstrapRunner) RunBootstrap(_ context.Context, fn func(
	repository.TenantRepository,
	repository.UserRepository,
) error) error {
	return fn(fakeTenantRepo{f.tenants}, f.users)
}

type fakeTenantRepo struct {
	byID map[string]*entity.Tenant
}

func (r fakeTenantRepo) Create(t *entity.Tenant) error { r.byID[t.ID] = t; return nil }
func (r fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	return r.byID[id], nil
}
func (r fakeTenantRepo) GetByDomain(string) (*entity.Tenant, error) { return nil, nil }
func (r fakeTenantRepo) List(_, _ int) ([]*entity.Tenant, error)    { return nil, nil }
func (r fakeTenantRepo) Update(t *entity.Tenant) error              { r.byID[t.ID] = t; return nil }

func testJWTCfg() auth.JWTConfig {
	return auth.JWTConfig{Secret: "secret-de-pruebas", ExpMinutes: 15, Issuer: "jobblox-test"}
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Ana",
		LastName:     "Ruiz",
		Role:         entity.RoleOwner,
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, users.Create(user))
	return user
}

func newAuthUC(users *fakeUserRepo) *auth.AuthUseCase {
	tenants := map[string]*entity.Tenant{}
	runner := &fakeBootstrapRunner{tenants: tenants, users: users}
	return auth.NewAuthUseCase(users, fakeTenantRepo{tenants}, runner, testJWTCfg())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Credenciales válidas abren sesión con token y registran LastLoginAt.
func TestLogin_CredencialesValidas(t *testing.T) {
	users := newFakeUserRepo()
	user := seedUser(t, users, "ana@acme.test", "hunter2!")
	uc := newAuthUC(users)

	session, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.test", Password: "hunter2!"})
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.User.ID)

	stored, _ := users.GetByID(user.ID)
	assert.NotNil(t, stored.LastLoginAt)
}

// Caso 2: Email desconocido y contraseña incorrecta devuelven el mismo error.
// Si el error distinguiera los casos, un atacante podría enumerar qué emails
// están registrados.
func TestLogin_NoDistingueEmailDePassword(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "ana@acme.test", "hunter2!")
	uc := newAuthUC(users)

	_, errEmail := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@acme.test", Password: "hunter2!"})
	_, errPassword := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.test", Password: "incorrecta"})

	assert.ErrorIs(t, errEmail, domain.ErrUnauthorized)
	assert.ErrorIs(t, errPassword, domain.ErrUnauthorized)
	assert.Equal(t, errEmail, errPassword, "ambos fallos deben ser indistinguibles para el caller")
}

// Caso 3: El email se normaliza: mayúsculas y espacios no impiden el login.
func TestLogin_NormalizaEmail(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "ana@acme.test", "hunter2!")
	uc := newAuthUC(users)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  ANA@Acme.Test ", Password: "hunter2!"})
	require.NoError(t, err)
}

// Caso 4: Un usuario suspendido no abre sesión aunque la contraseña sea válida.
func TestLogin_UsuarioSuspendido(t *testing.T) {
	users := newFakeUserRepo()
	user := seedUser(t, users, "ana@acme.test", "hunter2!")
	user.Status = "suspended"
	uc := newAuthUC(users)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.test", Password: "hunter2!"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: Register crea tenant y owner, y la sesión retorna el rol owner.
func TestRegister_CreaTenantYOwner(t *testing.T) {
	users := newFakeUserRepo()
	uc := newAuthUC(users)

	session, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantName:      "Acme Field Services",
		Email:           "owner@acme.test",
		Password:        "hunter2!",
		ConfirmPassword: "hunter2!",
		FirstName:       "Ana",
		LastName:        "Ruiz",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleOwner, session.User.Role)
	assert.NotEmpty(t, session.User.TenantID)

	stored, _ := users.FindByEmail("owner@acme.test")
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter2!", stored.PasswordHash, "la contraseña nunca se guarda en claro")
}

// Caso 6: Un email ya registrado no puede registrarse de nuevo.
func TestRegister_EmailDuplicado(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "ana@acme.test", "hunter2!")
	uc := newAuthUC(users)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantName:      "Otra Empresa",
		Email:           "ana@acme.test",
		Password:        "otra-clave",
		ConfirmPassword: "otra-clave",
		FirstName:       "Ana",
		LastName:        "Ruiz",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
