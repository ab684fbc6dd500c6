package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Empty(t, cfg.DataDir)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_RATINGS_API_URL", "https://ratings.example.com/api")
	t.Setenv("STORE_RATINGS_DATA_DIR", "/tmp/ratings")
	t.Setenv("STORE_RATINGS_REQUEST_TIMEOUT", "30s")

	cfg := Load()

	assert.Equal(t, "https://ratings.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/ratings", cfg.DataDir)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("STORE_RATINGS_REQUEST_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
