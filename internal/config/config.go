package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime configuration required by the service.
type Config struct {
	// Addr is the HTTP listen address for the metrics API.
	Addr string

	// GitHubAPIURL is the base URL of the events feed.
	GitHubAPIURL string

	// GitHubToken is an optional bearer credential. Its absence only
	// affects GitHub's rate limiting.
	GitHubToken string

	// PollInterval is the default wait between feed polls when the
	// feed sends no X-Poll-Interval hint.
	PollInterval time.Duration

	// HTTPTimeout bounds each feed fetch attempt.
	HTTPTimeout time.Duration

	// PerPage is the page size requested from the feed (max 100).
	PerPage int

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from environment variables, with defaults
// that make the service run out-of-the-box.
func Load() (Config, error) {
	cfg := Config{
		Addr:         getEnv("ADDR", ":8080"),
		GitHubAPIURL: getEnv("GITHUB_API_URL", "https://api.github.com"),
		GitHubToken:  strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		PollInterval: getEnvDuration("POLL_INTERVAL", 60*time.Second),
		HTTPTimeout:  getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		PerPage:      getEnvInt("PER_PAGE", 100),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("POLL_INTERVAL must be positive, got %s", cfg.PollInterval)
	}
	if cfg.HTTPTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}
	if cfg.PerPage < 1 || cfg.PerPage > 100 {
		return Config{}, fmt.Errorf("PER_PAGE must be in 1..100, got %d", cfg.PerPage)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
