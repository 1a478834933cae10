// Package newsapi fetches recent articles from the NewsAPI /v2/everything
// endpoint.
package newsapi

import (
	"errors"
	"os"
)

// ErrMissingAPIKey is returned when NEWS_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing NEWS_API_KEY environment variable")

// Config holds NewsAPI configuration.
type Config struct {
	APIKey  string
	BaseURL string // empty means DefaultBaseURL
}

// LoadConfig reads NewsAPI configuration from environment variables.
// Returns ErrMissingAPIKey if NEWS_API_KEY is not set.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("NEWS_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Config{APIKey: apiKey}, nil
}
