package services

import (
	"fmt"

	"github.com/store-ratings/desktop/internal/types"
)

// StoreService handles the store browsing and rating operations available to
// regular users.
type StoreService struct {
	apiClient *ApiClient
}

// NewStoreService creates a new instance of StoreService.
func NewStoreService(apiClient *ApiClient) *StoreService {
	return &StoreService{apiClient: apiClient}
}

// ListStores fetches the stores visible to the current user, optionally
// filtered by name and address.
func (s *StoreService) ListStores(filters types.StoreFilters) ([]types.Store, error) {
	var resp types.StoresResponse
	if err := s.apiClient.Get("/stores", filters.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	return resp.Stores, nil
}

// MyRatings fetches the ratings the current user has already submitted.
func (s *StoreService) MyRatings() ([]types.Rating, error) {
	var resp types.RatingsResponse
	if err := s.apiClient.Get("/ratings/my", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch ratings: %w", err)
	}
	return resp.Ratings, nil
}

// SubmitRating sends a 1-5 star rating for a store and returns the server's
// result message. Rating the same store again overwrites the previous value
// server-side.
func (s *StoreService) SubmitRating(storeID, rating int) (string, error) {
	var resp types.MessageResponse
	err := s.apiClient.Post("/ratings", types.SubmitRatingRequest{StoreID: storeID, Rating: rating}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
