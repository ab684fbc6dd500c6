package services

import (
	"errors"

	"github.com/store-ratings/desktop/internal/auth"
	"github.com/store-ratings/desktop/internal/types"
)

// AuthService implements auth.Service on top of the API client and the
// persistent session store.
type AuthService struct {
	apiClient *ApiClient
	sessions  auth.SessionStore
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(apiClient *ApiClient, sessions auth.SessionStore) *AuthService {
	return &AuthService{
		apiClient: apiClient,
		sessions:  sessions,
	}
}

// Login authenticates a user with their email and password. On success the
// session is persisted and the token is attached to the API client, so the
// caller only has to navigate to the route for the returned role.
func (s *AuthService) Login(email, password string) (*auth.Session, *types.User, error) {
	if email == "" || password == "" {
		return nil, nil, errors.New("email and password are required")
	}

	var resp types.LoginResponse
	err := s.apiClient.Post("/auth/login", types.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, nil, err
	}

	session := &auth.Session{Token: resp.Token, Role: resp.User.Role}
	if err := s.sessions.Login(session.Token, session.Role); err != nil {
		return nil, nil, err
	}
	s.apiClient.SetToken(session.Token)

	user := resp.User
	return session, &user, nil
}

// Signup registers a new regular account. The role is always "user"; elevated
// accounts are created by an admin.
func (s *AuthService) Signup(name, email, address, password string) (string, error) {
	req := types.CreateUserRequest{
		Name:     name,
		Email:    email,
		Address:  address,
		Password: password,
		Role:     types.RoleUser,
	}

	var resp types.MessageResponse
	if err := s.apiClient.Post("/auth/signup", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout clears the persisted session and detaches the token from the API
// client, returning the application to the unauthenticated state.
func (s *AuthService) Logout() error {
	s.apiClient.ClearToken()
	return s.sessions.Logout()
}
