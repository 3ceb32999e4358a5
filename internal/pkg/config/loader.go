// Package config provides fail-open environment loaders and reusable validators.
//
// Every loader returns a LoadResult: the value read from the environment when
// it parses and validates, the default otherwise. Fallbacks produce warnings,
// never errors, so a misconfigured variable degrades to the default instead of
// stopping the client.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadResult is the outcome of loading one configuration value.
//
// Fields:
//   - Value: The loaded value (the default if a fallback was applied)
//   - Warnings: One message per fallback applied
//   - FallbackApplied: True if the default replaced an invalid value
type LoadResult[T any] struct {
	Value           T
	Warnings        []string
	FallbackApplied bool
}

// fallback builds a LoadResult that replaces raw with def and records why.
func fallback[T any](envKey, raw string, def T, reason any) LoadResult[T] {
	return LoadResult[T]{
		Value:           def,
		Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, reason, def)},
		FallbackApplied: true,
	}
}

// loadEnv is the shared loading pipeline: read, parse, validate, fall back.
// An unset or empty variable yields the default without a warning.
func loadEnv[T any](envKey string, def T, parse func(string) (T, error), validator func(T) error) LoadResult[T] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult[T]{Value: def}
	}

	v, err := parse(raw)
	if err != nil {
		return fallback(envKey, raw, def, err)
	}
	if validator != nil {
		if err := validator(v); err != nil {
			return fallback(envKey, raw, def, err)
		}
	}
	return LoadResult[T]{Value: v}
}

// LoadEnvString loads a string value from an environment variable.
// If the environment variable is not set, the default value is returned.
// No validation is performed.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string value and validates it.
// Invalid values are replaced by defaultValue and reported as warnings.
//
// Example:
//
//	result := LoadEnvWithFallback("FOODGRAM_REFRESH_SCHEDULE", "*/5 * * * *", ValidateCronSchedule)
//	for _, warning := range result.Warnings {
//	    logger.Warn("Configuration fallback applied", slog.String("warning", warning))
//	}
//	schedule := result.Value
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult[string] {
	return loadEnv(envKey, defaultValue, func(s string) (string, error) { return s, nil }, validator)
}

// LoadEnvDuration loads a Go duration string ("30s", "1m30s").
// Parse and validation failures fall back to defaultValue.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult[time.Duration] {
	return loadEnv(envKey, defaultValue, time.ParseDuration, validator)
}

// LoadEnvInt loads a base-10 integer.
// Values with spaces, signs in odd places or decimals fall back to defaultValue.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult[int] {
	parse := func(s string) (int, error) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid integer format")
		}
		return v, nil
	}
	return loadEnv(envKey, defaultValue, parse, validator)
}

// LoadEnvFloat loads a floating point number, e.g. a requests-per-second rate.
func LoadEnvFloat(envKey string, defaultValue float64, validator func(float64) error) LoadResult[float64] {
	parse := func(s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number format")
		}
		return v, nil
	}
	return loadEnv(envKey, defaultValue, parse, validator)
}

// LoadEnvBool loads a boolean.
//   - True values: "1", "t", "T", "true", "TRUE", "True"
//   - False values: "0", "f", "F", "false", "FALSE", "False"
func LoadEnvBool(envKey string, defaultValue bool) LoadResult[bool] {
	parse := func(s string) (bool, error) {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("invalid boolean format, expected 'true' or 'false'")
		}
		return v, nil
	}
	return loadEnv(envKey, defaultValue, parse, nil)
}
