package core

import (
	"fmt"
	"sync"

	"github.com/store-ratings/desktop/internal/types"
)

// RatingService is the slice of the store API the rating cache needs.
type RatingService interface {
	MyRatings() ([]types.Rating, error)
	SubmitRating(storeID, rating int) (string, error)
}

// RatingManager keeps the current user's store_id -> rating map. The map is
// the local source of truth for the "Your Rating" display and is only
// mutated after the server acknowledges a change; a failed submission leaves
// the previous entry untouched. Submissions run on per-click goroutines, so
// the map is guarded by a mutex; service calls happen outside the lock.
type RatingManager struct {
	mu      sync.Mutex
	ratings map[int]int
	service RatingService
}

func NewRatingManager(service RatingService) *RatingManager {
	return &RatingManager{
		ratings: make(map[int]int),
		service: service,
	}
}

// Load replaces the cache with the ratings the server has for this user.
// The backend enforces one rating per (user, store) pair; rebuilding the map
// keyed by store ID preserves that here even if the response repeats a store.
func (rm *RatingManager) Load() error {
	ratings, err := rm.service.MyRatings()
	if err != nil {
		return err
	}

	fresh := make(map[int]int, len(ratings))
	for _, r := range ratings {
		fresh[r.StoreID] = r.Rating
	}

	rm.mu.Lock()
	rm.ratings = fresh
	rm.mu.Unlock()
	return nil
}

// Rate submits a rating and, only once the server accepts it, records it
// locally. Returns the server's result message.
func (rm *RatingManager) Rate(storeID, rating int) (string, error) {
	if rating < 1 || rating > 5 {
		return "", fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	message, err := rm.service.SubmitRating(storeID, rating)
	if err != nil {
		return "", err
	}

	rm.mu.Lock()
	rm.ratings[storeID] = rating
	rm.mu.Unlock()
	return message, nil
}

// Get returns the cached rating for a store, if the user has rated it.
func (rm *RatingManager) Get(storeID int) (int, bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rating, ok := rm.ratings[storeID]
	return rating, ok
}

// Clear empties the cache, for use on logout.
func (rm *RatingManager) Clear() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.ratings = make(map[int]int)
}
