package types

import "net/url"

// Known user roles returned by the backend.
const (
	RoleAdmin      = "admin"
	RoleUser       = "user"
	RoleStoreOwner = "store_owner"
)

// Routes the client navigates to after login, keyed by role.
const (
	RouteAdmin = "/admin"
	RouteOwner = "/owner"
	RouteUser  = "/user"
)

// User represents an account as returned by the backend. Passwords are
// write-only: sent on create, never returned.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// Store represents a rateable store. AvgRating is computed server-side.
type Store struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Address   string  `json:"address"`
	OwnerID   int     `json:"owner_id"`
	OwnerName string  `json:"owner_name,omitempty"`
	AvgRating float64 `json:"avg_rating"`
}

// Rating is one user's rating of one store.
type Rating struct {
	StoreID int `json:"store_id"`
	Rating  int `json:"rating"`
}

// DashboardStats holds the admin overview counters.
type DashboardStats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalStores  int `json:"totalStores"`
	TotalRatings int `json:"totalRatings"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the body of POST /auth/signup and POST /admin/users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateStoreRequest is the body of POST /admin/stores.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID int    `json:"owner_id"`
}

// SubmitRatingRequest is the body of POST /ratings.
type SubmitRatingRequest struct {
	StoreID int `json:"store_id"`
	Rating  int `json:"rating"`
}

// UsersResponse wraps GET /admin/users.
type UsersResponse struct {
	Users []User `json:"users"`
}

// StoresResponse wraps GET /stores and GET /admin/stores.
type StoresResponse struct {
	Stores []Store `json:"stores"`
}

// RatingsResponse wraps GET /ratings/my.
type RatingsResponse struct {
	Ratings []Rating `json:"ratings"`
}

// MessageResponse wraps mutation responses that carry a human-readable result.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserFilters narrows the admin user listing. Empty fields are not sent.
type UserFilters struct {
	Name    string
	Email   string
	Address string
	Role    string
}

// Values converts the filters to query parameters.
func (f UserFilters) Values() url.Values {
	v := url.Values{}
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.Email != "" {
		v.Set("email", f.Email)
	}
	if f.Address != "" {
		v.Set("address", f.Address)
	}
	if f.Role != "" {
		v.Set("role", f.Role)
	}
	return v
}

// StoreFilters narrows store listings. The user-facing store search only
// sets Name and Address; the admin listing may also filter by Email.
type StoreFilters struct {
	Name    string
	Email   string
	Address string
}

// Values converts the filters to query parameters.
func (f StoreFilters) Values() url.Values {
	v := url.Values{}
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.Email != "" {
		v.Set("email", f.Email)
	}
	if f.Address != "" {
		v.Set("address", f.Address)
	}
	return v
}

// RouteForRole maps a role to its post-login route. Unknown roles land on
// the regular user dashboard.
func RouteForRole(role string) string {
	switch role {
	case RoleAdmin:
		return RouteAdmin
	case RoleStoreOwner:
		return RouteOwner
	default:
		return RouteUser
	}
}

// FilterStoreOwners returns the users eligible to own a store. The admin
// store form derives its owner selector from this and must recompute it from
// the current user list on every refetch.
func FilterStoreOwners(users []User) []User {
	var owners []User
	for _, u := range users {
		if u.Role == RoleStoreOwner {
			owners = append(owners, u)
		}
	}
	return owners
}
