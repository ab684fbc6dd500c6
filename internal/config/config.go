package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client settings.
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
}

// Load reads configuration from a .env file in the working directory (when
// present) and environment variables, falling back to defaults. The backend
// base URL is deliberately not hardcoded anywhere else.
func Load() *Config {
	godotenv.Load()

	return &Config{
		APIBaseURL:     getEnv("STORE_RATINGS_API_URL", "http://localhost:5000/api"),
		DataDir:        getEnv("STORE_RATINGS_DATA_DIR", ""),
		RequestTimeout: getDuration("STORE_RATINGS_REQUEST_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
