// Package config holds the configuration of the Foodgram client.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	pkgconfig "foodgram-client/internal/pkg/config"
)

// ConfigPathEnv names the optional YAML or TOML configuration file.
const ConfigPathEnv = "FOODGRAM_CONFIG"

// ClientConfig holds the configuration of the recipe list client.
//
// Configuration sources, later ones win:
//   - Default values (DefaultConfig)
//   - The file named by FOODGRAM_CONFIG (LoadFile)
//   - Environment variables (LoadFromEnv)
type ClientConfig struct {
	// APIURL is the Foodgram API root.
	// Default: "http://localhost:8000/api"
	APIURL string `yaml:"api_url" toml:"api_url"`

	// APIToken is the DRF auth token. Empty means anonymous browsing,
	// in which case like and cart actions are rejected by the server.
	APIToken string `yaml:"api_token" toml:"api_token"`

	// Timeout bounds a single HTTP request.
	// Range: 1s-2m, Default: 10s
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`

	// RateLimit is the maximum sustained requests per second.
	// Must be positive, Default: 5
	RateLimit float64 `yaml:"rate_limit" toml:"rate_limit"`

	// RateBurst is the token bucket size.
	// Range: 1-100, Default: 10
	RateBurst int `yaml:"rate_burst" toml:"rate_burst"`

	// RetryAttempts is the number of attempts for a page request.
	// Range: 1-10, Default: 3
	RetryAttempts int `yaml:"retry_attempts" toml:"retry_attempts"`

	// StartPage is the page selected when the list opens.
	// Default: 1
	StartPage int `yaml:"start_page" toml:"start_page"`

	// RefreshSchedule is a cron expression for re-fetching the selected page
	// in watch mode. Empty disables scheduled refresh.
	RefreshSchedule string `yaml:"refresh_schedule" toml:"refresh_schedule"`

	// Watch enables scheduled refresh without the -watch flag.
	Watch bool `yaml:"watch" toml:"watch"`

	// Timezone is the IANA timezone RefreshSchedule is evaluated in.
	// Default: "Europe/Moscow"
	Timezone string `yaml:"timezone" toml:"timezone"`

	// MetricsPort serves /metrics and /health. 0 disables the server.
	// Range: 0 or 1024-65535, Default: 9091
	MetricsPort int `yaml:"metrics_port" toml:"metrics_port"`

	// LogLevel is one of debug, info, warn, error. Default: "info"
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFormat is "json" or "text". Default: "text"
	LogFormat string `yaml:"log_format" toml:"log_format"`
}

// DefaultConfig returns a ClientConfig for a local Foodgram backend.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		APIURL:        "http://localhost:8000/api",
		Timeout:       10 * time.Second,
		RateLimit:     5,
		RateBurst:     10,
		RetryAttempts: 3,
		StartPage:     1,
		Timezone:      "Europe/Moscow",
		MetricsPort:   9091,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Validate checks every field and returns all problems at once.
func (c *ClientConfig) Validate() error {
	var errs []error

	if err := pkgconfig.ValidateHTTPURL(c.APIURL); err != nil {
		errs = append(errs, fmt.Errorf("api url: %w", err))
	}
	if err := pkgconfig.ValidateDuration(c.Timeout, time.Second, 2*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	}
	if err := pkgconfig.ValidatePositiveFloat(c.RateLimit); err != nil {
		errs = append(errs, fmt.Errorf("rate limit: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.RateBurst, 1, 100); err != nil {
		errs = append(errs, fmt.Errorf("rate burst: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.RetryAttempts, 1, 10); err != nil {
		errs = append(errs, fmt.Errorf("retry attempts: %w", err))
	}
	if err := validateStartPage(c.StartPage); err != nil {
		errs = append(errs, fmt.Errorf("start page: %w", err))
	}
	if err := validateRefreshSchedule(c.RefreshSchedule); err != nil {
		errs = append(errs, fmt.Errorf("refresh schedule: %w", err))
	}
	if err := pkgconfig.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateMetricsPort(c.MetricsPort); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// Location returns the time zone for RefreshSchedule, UTC if it cannot be loaded.
func (c *ClientConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func validateStartPage(page int) error {
	if page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", page)
	}
	return nil
}

func validateRefreshSchedule(schedule string) error {
	if schedule == "" {
		return nil
	}
	return pkgconfig.ValidateCronSchedule(schedule)
}

func validateMetricsPort(port int) error {
	if port == 0 {
		return nil
	}
	return pkgconfig.ValidateIntRange(port, 1024, 65535)
}

// LoadFromEnv builds the configuration from defaults, the optional file named
// by FOODGRAM_CONFIG and environment variables.
//
// Environment variables are fail-open: an invalid value is replaced by the
// file or default value, a warning is logged and the fallback is counted.
// A file that cannot be read or holds invalid values is an error.
//
// Environment variables:
//   - FOODGRAM_API_URL, FOODGRAM_API_TOKEN
//   - FOODGRAM_TIMEOUT (e.g. "10s"), FOODGRAM_RATE_LIMIT, FOODGRAM_RATE_BURST
//   - FOODGRAM_RETRY_ATTEMPTS, FOODGRAM_START_PAGE
//   - FOODGRAM_REFRESH_SCHEDULE, FOODGRAM_WATCH, FOODGRAM_TIMEZONE
//   - METRICS_PORT, LOG_LEVEL, LOG_FORMAT
//
// metrics may be nil.
func LoadFromEnv(logger *slog.Logger, metrics *pkgconfig.ConfigMetrics) (*ClientConfig, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := DefaultConfig()
	source := "default"
	if path := os.Getenv(ConfigPathEnv); path != "" {
		fileCfg, err := LoadFile(path, cfg)
		if err != nil {
			return nil, err
		}
		cfg = *fileCfg
		source = "file"
	}

	l := &envLoader{logger: logger, metrics: metrics, source: source}

	cfg.APIURL = apply(l, "APIURL", pkgconfig.LoadEnvWithFallback("FOODGRAM_API_URL", cfg.APIURL, pkgconfig.ValidateHTTPURL))
	cfg.APIToken = pkgconfig.LoadEnvString("FOODGRAM_API_TOKEN", cfg.APIToken)
	cfg.Timeout = apply(l, "Timeout", pkgconfig.LoadEnvDuration("FOODGRAM_TIMEOUT", cfg.Timeout, func(d time.Duration) error {
		return pkgconfig.ValidateDuration(d, time.Second, 2*time.Minute)
	}))
	cfg.RateLimit = apply(l, "RateLimit", pkgconfig.LoadEnvFloat("FOODGRAM_RATE_LIMIT", cfg.RateLimit, pkgconfig.ValidatePositiveFloat))
	cfg.RateBurst = apply(l, "RateBurst", pkgconfig.LoadEnvInt("FOODGRAM_RATE_BURST", cfg.RateBurst, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 100)
	}))
	cfg.RetryAttempts = apply(l, "RetryAttempts", pkgconfig.LoadEnvInt("FOODGRAM_RETRY_ATTEMPTS", cfg.RetryAttempts, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 10)
	}))
	cfg.StartPage = apply(l, "StartPage", pkgconfig.LoadEnvInt("FOODGRAM_START_PAGE", cfg.StartPage, validateStartPage))
	cfg.RefreshSchedule = apply(l, "RefreshSchedule", pkgconfig.LoadEnvWithFallback("FOODGRAM_REFRESH_SCHEDULE", cfg.RefreshSchedule, validateRefreshSchedule))
	cfg.Watch = apply(l, "Watch", pkgconfig.LoadEnvBool("FOODGRAM_WATCH", cfg.Watch))
	cfg.Timezone = apply(l, "Timezone", pkgconfig.LoadEnvWithFallback("FOODGRAM_TIMEZONE", cfg.Timezone, pkgconfig.ValidateTimezone))
	cfg.MetricsPort = apply(l, "MetricsPort", pkgconfig.LoadEnvInt("METRICS_PORT", cfg.MetricsPort, validateMetricsPort))
	cfg.LogLevel = pkgconfig.LoadEnvString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = pkgconfig.LoadEnvString("LOG_FORMAT", cfg.LogFormat)

	if metrics != nil {
		metrics.SetFallbackActive(l.fallbackApplied)
		metrics.RecordLoadTimestamp()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigPathEnv, err)
	}
	return &cfg, nil
}

// envLoader reports fallbacks for one LoadFromEnv call.
type envLoader struct {
	logger          *slog.Logger
	metrics         *pkgconfig.ConfigMetrics
	source          string
	fallbackApplied bool
}

func apply[T any](l *envLoader, field string, res pkgconfig.LoadResult[T]) T {
	if !res.FallbackApplied {
		return res.Value
	}
	l.fallbackApplied = true
	if l.metrics != nil {
		l.metrics.RecordFallback(field, l.source)
	}
	for _, warning := range res.Warnings {
		l.logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("fallback", l.source),
			slog.String("warning", warning))
	}
	return res.Value
}
