package sdk

import (
	"context"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// AuthService autenticación y sesión.
type AuthService struct {
	client *apiclient.Client
}

// LoginRequest credenciales de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest alta de tenant + usuario owner.
type RegisterRequest struct {
	TenantName      string `json:"tenantName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// Login autentica y deja el token y el tenant activos en el cliente.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	_, err := s.client.Post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &session)
	if err != nil {
		return nil, err
	}
	s.client.SetAuthToken(session.Token)
	s.client.SetTenantID(session.User.TenantID)
	return &session, nil
}

// Register crea tenant + owner y abre sesión.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var session Session
	_, err := s.client.Post(ctx, "/auth/register", req, &session)
	if err != nil {
		return nil, err
	}
	s.client.SetAuthToken(session.Token)
	s.client.SetTenantID(session.User.TenantID)
	return &session, nil
}

// Refresh renueva el token de la sesión actual.
func (s *AuthService) Refresh(ctx context.Context) (*Session, error) {
	var session Session
	_, err := s.client.Post(ctx, "/auth/refresh", nil, &session)
	if err != nil {
		return nil, err
	}
	s.client.SetAuthToken(session.Token)
	return &session, nil
}

// Me devuelve el usuario de la sesión actual (sin cache: refleja cambios de rol).
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var user User
	_, err := s.client.GetNoCache(ctx, "/auth/me", nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout cierra sesión en el servidor y limpia credenciales y cache locales.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.client.Post(ctx, "/auth/logout", nil, nil)
	s.client.ClearAuth()
	return err
}
