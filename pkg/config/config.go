package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errConcurrencyOutOfRange = errors.New("config: FETCH_CONCURRENCY must be 1-32")
	errMaxURLsOutOfRange     = errors.New("config: MAX_AUDIT_URLS must be 1-500")
	errInvalidTimeout        = errors.New("config: timeouts must be positive")
	errInvalidStrategy       = errors.New("config: PAGESPEED_STRATEGY must be mobile or desktop")
	errInvalidRate           = errors.New("config: PAGESPEED_RPS must be positive")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port       string
	LogLevel   string
	LogToFile  bool
	LogDir     string
	AppVersion string

	FetchTimeout     time.Duration
	FetchConcurrency int
	MaxURLs          int
	UserAgent        string

	PageSpeedAPIKey   string
	PageSpeedStrategy string
	PageSpeedRPS      float64
	PageSpeedTimeout  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogToFile:  getEnvAsBool("LOG_TO_FILE", false),
		LogDir:     getEnv("LOG_DIR", "./logs"),
		AppVersion: getEnv("APP_VERSION", "dev"),

		FetchTimeout:     getEnvAsDuration("FETCH_TIMEOUT", 15*time.Second),
		FetchConcurrency: getEnvAsInt("FETCH_CONCURRENCY", 4),
		MaxURLs:          getEnvAsInt("MAX_AUDIT_URLS", 50),
		UserAgent:        getEnv("USER_AGENT", "SEOAuditor/1.0"),

		PageSpeedAPIKey:   os.Getenv("PAGESPEED_API_KEY"),
		PageSpeedStrategy: getEnv("PAGESPEED_STRATEGY", "mobile"),
		PageSpeedRPS:      getEnvAsFloat("PAGESPEED_RPS", 1),
		PageSpeedTimeout:  getEnvAsDuration("PAGESPEED_TIMEOUT", 60*time.Second),
	}

	return cfg, cfg.validate()
}

// PageSpeedEnabled reports whether an API key was configured.
func (c Config) PageSpeedEnabled() bool {
	return c.PageSpeedAPIKey != ""
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.FetchConcurrency < 1 || c.FetchConcurrency > 32 {
		return fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.FetchConcurrency)
	}

	if c.MaxURLs < 1 || c.MaxURLs > 500 {
		return fmt.Errorf("%w: got %d", errMaxURLsOutOfRange, c.MaxURLs)
	}

	if c.FetchTimeout <= 0 || c.PageSpeedTimeout <= 0 {
		return errInvalidTimeout
	}

	if c.PageSpeedStrategy != "mobile" && c.PageSpeedStrategy != "desktop" {
		return fmt.Errorf("%w: %q", errInvalidStrategy, c.PageSpeedStrategy)
	}

	if c.PageSpeedRPS <= 0 {
		return fmt.Errorf("%w: got %v", errInvalidRate, c.PageSpeedRPS)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return v
}
