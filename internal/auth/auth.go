package auth

import "github.com/store-ratings/desktop/internal/types"

// Session is the persisted authentication state: an opaque bearer token and
// the role it was issued for.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// SessionStore persists at most one session across restarts.
type SessionStore interface {
	// Login stores the credentials, replacing any previous session.
	Login(token, role string) error
	// Logout clears the stored session. Clearing an empty store is not an
	// error.
	Logout() error
	// Current returns the stored session, or ok=false when none exists.
	Current() (*Session, bool, error)
}

// Service defines the authentication operations the login and register
// screens depend on.
type Service interface {
	Login(email, password string) (*Session, *types.User, error)
	Signup(name, email, address, password string) (string, error)
	Logout() error
}
