// Package pagination provides the page-number pagination model shared by the
// recipe API client and the list controller.
package pagination

import (
	"log/slog"
	"os"
	"strconv"
)

// RecipeListLimit is the fixed page size of the recipe list.
// The list view always builds its pagination control with this limit.
const RecipeListLimit = 6

// Config holds pagination configuration settings.
type Config struct {
	MaxLimit int // Upper bound accepted by the API
}

// DefaultConfig returns the default pagination configuration.
// Default values: max=100
func DefaultConfig() Config {
	return Config{
		MaxLimit: 100,
	}
}

// Normalized raises MaxLimit to RecipeListLimit. A lower bound would make
// every recipe list request fail validation.
func (c Config) Normalized() Config {
	if c.MaxLimit < RecipeListLimit {
		c.MaxLimit = RecipeListLimit
	}
	return c
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - FOODGRAM_MAX_LIMIT: Maximum items per page, at least RecipeListLimit
//
// The page size itself is not configurable: it is RecipeListLimit.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	cfg.MaxLimit = getEnvAsInt("FOODGRAM_MAX_LIMIT", cfg.MaxLimit)
	if cfg.MaxLimit < RecipeListLimit {
		slog.Warn("FOODGRAM_MAX_LIMIT below the recipe list page size, raising it",
			slog.Int("max_limit", cfg.MaxLimit),
			slog.Int("page_size", RecipeListLimit))
	}
	return cfg.Normalized()
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set, cannot be parsed or is not positive.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 1 {
		return defaultValue
	}
	return val
}
