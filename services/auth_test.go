package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/store-ratings/desktop/internal/auth"
	"github.com/store-ratings/desktop/internal/types"
)

// memorySessionStore is an in-memory auth.SessionStore for tests.
type memorySessionStore struct {
	session *auth.Session
}

func (m *memorySessionStore) Login(token, role string) error {
	m.session = &auth.Session{Token: token, Role: role}
	return nil
}

func (m *memorySessionStore) Logout() error {
	m.session = nil
	return nil
}

func (m *memorySessionStore) Current() (*auth.Session, bool, error) {
	if m.session == nil {
		return nil, false, nil
	}
	return m.session, true, nil
}

func TestLoginPersistsSessionAndToken(t *testing.T) {
	var gotPath string
	var gotBody types.LoginRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(types.LoginResponse{
			Token: "jwt-abc",
			User:  types.User{ID: 7, Name: "Alice", Role: types.RoleAdmin},
		})
	}))
	defer server.Close()

	client := NewApiClient(server.URL, 5*time.Second)
	sessions := &memorySessionStore{}
	svc := NewAuthService(client, sessions)

	session, user, err := svc.Login("alice@example.com", "Passw0rd!")
	require.NoError(t, err)

	assert.Equal(t, "/auth/login", gotPath)
	assert.Equal(t, "alice@example.com", gotBody.Email)
	assert.Equal(t, "Passw0rd!", gotBody.Password)

	assert.Equal(t, "jwt-abc", session.Token)
	assert.Equal(t, types.RoleAdmin, session.Role)
	assert.Equal(t, types.RoleAdmin, user.Role)
	assert.Equal(t, types.RouteAdmin, types.RouteForRole(user.Role))

	// Session persisted and token attached for subsequent requests.
	stored, ok, err := sessions.Current()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "jwt-abc", stored.Token)
	assert.Equal(t, "jwt-abc", client.Token())
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer server.Close()

	client := NewApiClient(server.URL, 5*time.Second)
	sessions := &memorySessionStore{}
	svc := NewAuthService(client, sessions)

	_, _, err := svc.Login("alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", ErrorMessage(err, "Login failed"))

	_, ok, _ := sessions.Current()
	assert.False(t, ok)
	assert.Empty(t, client.Token())
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := NewAuthService(NewApiClient("http://unused", time.Second), &memorySessionStore{})

	_, _, err := svc.Login("", "password")
	assert.Error(t, err)
	_, _, err = svc.Login("user@example.com", "")
	assert.Error(t, err)
}

func TestSignupForcesUserRole(t *testing.T) {
	var gotBody types.CreateUserRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/signup", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(types.MessageResponse{Message: "User registered successfully."})
	}))
	defer server.Close()

	svc := NewAuthService(NewApiClient(server.URL, 5*time.Second), &memorySessionStore{})

	message, err := svc.Signup("Jonathan Michael Harrington", "jon@example.com", "12 Main St", "Passw0rd!")
	require.NoError(t, err)

	assert.Equal(t, "User registered successfully.", message)
	assert.Equal(t, types.RoleUser, gotBody.Role)
	assert.Equal(t, "Jonathan Michael Harrington", gotBody.Name)
}

func TestLogoutClearsSessionAndToken(t *testing.T) {
	client := NewApiClient("http://unused", time.Second)
	client.SetToken("jwt-abc")
	sessions := &memorySessionStore{session: &auth.Session{Token: "jwt-abc", Role: types.RoleUser}}
	svc := NewAuthService(client, sessions)

	require.NoError(t, svc.Logout())

	_, ok, _ := sessions.Current()
	assert.False(t, ok)
	assert.Empty(t, client.Token())
}
