package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for the API base URL.
const maxURLLength = 2048

// ValidateRecipeID checks that id can address a recipe.
func ValidateRecipeID(id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Message: "recipe id must be positive"}
	}
	return nil
}

// ValidateBaseURL validates the API base URL. Only http and https are allowed.
// Unlike crawler URLs, private hosts are fine here: the API often runs locally.
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	return nil
}
