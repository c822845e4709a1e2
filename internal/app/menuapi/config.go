package menuapi

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config carries environment-driven settings for the menu API process.
type Config struct {
	Port           string
	PostgresDSN    string
	UserServiceURL string
	ClientTimeout  time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:           envDefault("PORT", "8082"),
		PostgresDSN:    strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		UserServiceURL: strings.TrimSpace(os.Getenv("USER_SERVICE_URL")),
		ClientTimeout:  5 * time.Second,
	}
	if raw := strings.TrimSpace(os.Getenv("HTTP_CLIENT_TIMEOUT_SECONDS")); raw != "" {
		var seconds int
		if _, err := fmt.Sscanf(raw, "%d", &seconds); err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("HTTP_CLIENT_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.ClientTimeout = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
