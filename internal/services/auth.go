package services

import (
	"context"

	"github.com/odai307/gagoforge-client/internal/apiclient"
	"github.com/odai307/gagoforge-client/internal/models"
)

type AuthService struct {
	api *apiclient.Client
}

func NewAuthService(api *apiclient.Client) *AuthService {
	return &AuthService{api: api}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.AuthTokens, error) {
	req := models.LoginRequest{Username: username, Password: password}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var tokens models.AuthTokens
	if err := s.api.Post(ctx, "/api/auth/login/", req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp models.RegisterResponse
	if err := s.api.Post(ctx, "/api/users/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the authenticated user, confirming that stored credentials
// are still honored by the server.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.api.Get(ctx, "/api/users/me/", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Verify(ctx context.Context, token string) error {
	return s.api.Post(ctx, "/api/auth/verify/", map[string]string{"token": token}, nil)
}
