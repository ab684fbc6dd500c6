package services

import (
	"fmt"

	"github.com/store-ratings/desktop/internal/types"
)

// AdminService handles the admin dashboard operations: overview counters,
// user and store listings with filters, and user/store creation.
type AdminService struct {
	apiClient *ApiClient
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(apiClient *ApiClient) *AdminService {
	return &AdminService{apiClient: apiClient}
}

// Dashboard fetches the totals shown at the top of the admin dashboard.
func (s *AdminService) Dashboard() (*types.DashboardStats, error) {
	var stats types.DashboardStats
	if err := s.apiClient.Get("/admin/dashboard", nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard stats: %w", err)
	}
	return &stats, nil
}

// ListUsers fetches all users matching the given filters.
func (s *AdminService) ListUsers(filters types.UserFilters) ([]types.User, error) {
	var resp types.UsersResponse
	if err := s.apiClient.Get("/admin/users", filters.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return resp.Users, nil
}

// CreateUser creates an account with an explicit role and returns the
// server's result message.
func (s *AdminService) CreateUser(req types.CreateUserRequest) (string, error) {
	var resp types.MessageResponse
	if err := s.apiClient.Post("/admin/users", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListStores fetches all stores matching the given filters.
func (s *AdminService) ListStores(filters types.StoreFilters) ([]types.Store, error) {
	var resp types.StoresResponse
	if err := s.apiClient.Get("/admin/stores", filters.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	return resp.Stores, nil
}

// CreateStore creates a store assigned to an existing store owner and
// returns the server's result message.
func (s *AdminService) CreateStore(req types.CreateStoreRequest) (string, error) {
	var resp types.MessageResponse
	if err := s.apiClient.Post("/admin/stores", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
